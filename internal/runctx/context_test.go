package runctx_test

import (
	"context"
	"testing"

	"delugekit/internal/runctx"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = runctx.WithRunID(ctx, "run-123")
	ctx = runctx.WithSource(ctx, "/samples/kick.wav")
	ctx = runctx.WithMode(ctx, "combined")

	if id, ok := runctx.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if src, ok := runctx.SourceFromContext(ctx); !ok || src != "/samples/kick.wav" {
		t.Fatalf("unexpected source: %v %v", src, ok)
	}
	if mode, ok := runctx.ModeFromContext(ctx); !ok || mode != "combined" {
		t.Fatalf("unexpected mode: %v %v", mode, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = runctx.WithSource(ctx, "")
	ctx = runctx.WithRunID(ctx, "")
	if _, ok := runctx.SourceFromContext(ctx); ok {
		t.Fatal("expected no source value")
	}
	if _, ok := runctx.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
}

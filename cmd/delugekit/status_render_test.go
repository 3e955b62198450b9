package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestStatusPrinterPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := newStatusPrinter(&buf)
	if p.colorize {
		t.Fatal("buffers are not terminals")
	}

	p.section(" kick.wav ")
	p.line("Skipped", statusWarn, "empty.wav has no regions")
	p.line("Regions", statusOK, "")
	p.line("Other", statusKind(42), "x")

	want := strings.Join([]string{
		"kick.wav",
		"--------",
		"  Skipped:     [WARN] empty.wav has no regions",
		"  Regions:     [OK]",
		"  Other:       [INFO] x",
		"",
	}, "\n")
	if buf.String() != want {
		t.Fatalf("output =\n%q\nwant\n%q", buf.String(), want)
	}
}

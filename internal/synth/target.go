package synth

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"delugekit/internal/kit"
	"delugekit/internal/kiterr"
	"delugekit/internal/regions"
	"delugekit/internal/textutil"
)

// KitExtension is the extension the Deluge uses for preset files.
const KitExtension = ".XML"

// Target decides where kits are written and how they refer to samples.
type Target interface {
	// Acquire prepares the target for one run. The returned release
	// function must be called when the run ends.
	Acquire(ctx context.Context) (release func(), err error)
	// KitPath returns the output path for a kit called name whose first
	// row comes from src.
	KitPath(name string, src regions.SourceFile) (string, error)
	// SampleRef returns the sample reference a kit at kitPath uses for src.
	SampleRef(kitPath string, src regions.SourceFile) (string, error)
	// Publish runs after the kit has been written.
	Publish(ctx context.Context, k *kit.Kit) ([]SampleCopy, error)
}

// SampleCopy records what happened to one sample during Publish.
type SampleCopy struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Copied      bool   `json:"copied"`
	Replaced    bool   `json:"replaced"`
	Digest      string `json:"digest,omitempty"`
}

// DirTarget writes kits beside their sources, or into OutputDir when set.
// Kits refer to samples by a path relative to the kit file.
type DirTarget struct {
	OutputDir string
}

func (DirTarget) Acquire(context.Context) (func(), error) {
	return func() {}, nil
}

func (t DirTarget) KitPath(name string, src regions.SourceFile) (string, error) {
	name = textutil.SanitizeFileName(name)
	if name == "" {
		return "", kiterr.Wrap(kiterr.ErrWrite, src.Path, "plan kit path", "kit name is empty", nil)
	}
	dir := t.OutputDir
	if dir == "" {
		dir = filepath.Dir(src.Path)
	}
	return filepath.Join(dir, name+KitExtension), nil
}

func (DirTarget) SampleRef(kitPath string, src regions.SourceFile) (string, error) {
	kitDir, err := filepath.Abs(filepath.Dir(kitPath))
	if err != nil {
		return "", kiterr.Wrap(kiterr.ErrWrite, kitPath, "resolve kit directory", "", err)
	}
	sample, err := filepath.Abs(src.Path)
	if err != nil {
		return "", kiterr.Wrap(kiterr.ErrWrite, src.Path, "resolve sample path", "", err)
	}
	rel, err := filepath.Rel(kitDir, sample)
	if err != nil {
		return filepath.ToSlash(sample), nil
	}
	return filepath.ToSlash(rel), nil
}

func (DirTarget) Publish(context.Context, *kit.Kit) ([]SampleCopy, error) {
	return nil, nil
}

// kitStem is the default-mode kit name for src.
func kitStem(src regions.SourceFile) string {
	return strings.TrimSpace(src.Stem())
}

func describeTarget(t Target) string {
	switch v := t.(type) {
	case *CardTarget:
		return fmt.Sprintf("card %s", v.Root)
	case DirTarget:
		if v.OutputDir != "" {
			return fmt.Sprintf("directory %s", v.OutputDir)
		}
		return "source directories"
	default:
		return fmt.Sprintf("%T", t)
	}
}

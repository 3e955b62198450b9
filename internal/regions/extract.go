package regions

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"delugekit/internal/kiterr"
	"delugekit/internal/textutil"
	"delugekit/internal/wav"
)

// fallbackName names a region when neither its label nor its file stem
// survives transliteration.
const fallbackName = "region"

// SourceFile identifies the audio file a region came from.
type SourceFile struct {
	Path       string
	SampleRate uint32
	Channels   uint16
	Frames     uint64
}

// Stem returns the file name without directory or extension.
func (s SourceFile) Stem() string {
	base := filepath.Base(s.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Region is a named sample range [Start, End) of a source file.
type Region struct {
	CueID uint32
	Name  string
	Start uint64
	End   uint64
	// Labeled is false when Name was derived from the file stem.
	Labeled bool
}

// Length returns the number of frames covered by the region.
func (r Region) Length() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Options tunes extraction.
type Options struct {
	// MaxNameLength caps region names. Zero leaves them uncapped.
	MaxNameLength int
}

// Extract reads the regions of the WAV file at path. The file is closed
// before Extract returns.
func Extract(path string, opts Options) (SourceFile, []Region, error) {
	src := SourceFile{Path: path}

	f, err := os.Open(path)
	if err != nil {
		return src, nil, kiterr.Wrap(nil, path, "open", "", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return src, nil, kiterr.Wrap(nil, path, "stat", "", err)
	}
	if info.IsDir() {
		return src, nil, kiterr.Wrap(nil, path, "open", "path is a directory", nil)
	}

	meta, err := wav.Read(f, info.Size())
	if err != nil {
		return src, nil, classify(path, err)
	}

	src.SampleRate = meta.Format.SampleRate
	src.Channels = meta.Format.Channels
	src.Frames = meta.Frames()

	regions, err := build(src, meta, opts)
	if err != nil {
		return src, nil, kiterr.Wrap(kiterr.ErrCorruptMetadata, path, "read markers", "", err)
	}
	return src, regions, nil
}

func classify(path string, err error) error {
	switch {
	case errors.Is(err, wav.ErrNotWave), errors.Is(err, wav.ErrUnsupportedEncoding):
		return kiterr.Wrap(kiterr.ErrUnsupportedFormat, path, "read container", "", err)
	case errors.Is(err, wav.ErrMalformed):
		return kiterr.Wrap(kiterr.ErrCorruptMetadata, path, "read markers", "", err)
	default:
		return kiterr.Wrap(nil, path, "read", "", err)
	}
}

func build(src SourceFile, meta *wav.Metadata, opts Options) ([]Region, error) {
	if len(meta.Cues) == 0 {
		return nil, nil
	}

	seen := make(map[uint32]struct{}, len(meta.Cues))
	starts := make([]uint64, 0, len(meta.Cues))
	for _, cue := range meta.Cues {
		if _, dup := seen[cue.ID]; dup {
			return nil, fmt.Errorf("duplicate cue id %d", cue.ID)
		}
		seen[cue.ID] = struct{}{}
		starts = append(starts, uint64(cue.SampleOffset))
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	regions := make([]Region, 0, len(meta.Cues))
	for _, cue := range meta.Cues {
		start := uint64(cue.SampleOffset)
		if start >= src.Frames {
			return nil, fmt.Errorf("cue %d starts at frame %d of %d", cue.ID, start, src.Frames)
		}

		var end uint64
		if lt, ok := meta.LabeledTexts[cue.ID]; ok && lt.SampleLength > 0 {
			end = start + uint64(lt.SampleLength)
		} else {
			end = nextStart(starts, start, src.Frames)
		}
		if end > src.Frames {
			return nil, fmt.Errorf("cue %d ends at frame %d of %d", cue.ID, end, src.Frames)
		}
		if end <= start {
			return nil, fmt.Errorf("cue %d has empty range %d-%d", cue.ID, start, end)
		}

		name, labeled := regionName(src, meta, cue.ID, opts.MaxNameLength)
		regions = append(regions, Region{
			CueID:   cue.ID,
			Name:    name,
			Start:   start,
			End:     end,
			Labeled: labeled,
		})
	}
	return regions, nil
}

// nextStart returns the first cue start strictly after start, or frames.
func nextStart(sorted []uint64, start, frames uint64) uint64 {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i] > start })
	if i < len(sorted) {
		return sorted[i]
	}
	return frames
}

func regionName(src SourceFile, meta *wav.Metadata, cueID uint32, maxLen int) (string, bool) {
	label := strings.TrimSpace(meta.Labels[cueID])
	if label == "" {
		label = strings.TrimSpace(meta.LabeledTexts[cueID].Text)
	}
	if label != "" {
		if name := textutil.DeviceName(label, maxLen); name != "" {
			return name, true
		}
	}
	return StemName(src, maxLen), false
}

// StemName is the device name derived from the source file stem.
func StemName(src SourceFile, maxLen int) string {
	if name := textutil.DeviceName(src.Stem(), maxLen); name != "" {
		return name
	}
	return textutil.Truncate(fallbackName, maxLen)
}

package regions_test

import (
	"errors"
	"path/filepath"
	"testing"

	"delugekit/internal/kiterr"
	"delugekit/internal/regions"
	"delugekit/internal/testsupport"
)

func TestExtractKeepsAuthoringOrder(t *testing.T) {
	path := testsupport.WriteWAV(t, t.TempDir(), "kick.wav", testsupport.WAVSpec{
		Frames: 3000,
		Markers: []testsupport.Marker{
			testsupport.Region("rim", 2000, 3000),
			testsupport.Region("tip", 0, 1000),
			testsupport.Region("mid", 1000, 2000),
		},
	})

	src, got, err := regions.Extract(path, regions.Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if src.Path != path || src.SampleRate != 44100 || src.Channels != 2 || src.Frames != 3000 {
		t.Fatalf("unexpected source %+v", src)
	}
	want := []regions.Region{
		{CueID: 1, Name: "rim", Start: 2000, End: 3000, Labeled: true},
		{CueID: 2, Name: "tip", Start: 0, End: 1000, Labeled: true},
		{CueID: 3, Name: "mid", Start: 1000, End: 2000, Labeled: true},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d regions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("region %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExtractNoMarkers(t *testing.T) {
	path := testsupport.WriteWAV(t, t.TempDir(), "pad.wav", testsupport.WAVSpec{Frames: 10})
	_, got, err := regions.Extract(path, regions.Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no regions, got %v", got)
	}
}

func TestExtractMarkerOnlyCues(t *testing.T) {
	tests := []struct {
		name    string
		markers []testsupport.Marker
		want    [][2]uint64
	}{
		{
			name: "stored out of position order",
			markers: []testsupport.Marker{
				{Offset: 600, Label: "c"},
				{Offset: 0, Label: "a"},
				{Offset: 300, Label: "b"},
			},
			want: [][2]uint64{{600, 900}, {0, 300}, {300, 600}},
		},
		{
			name: "mixed with a region",
			markers: []testsupport.Marker{
				{Offset: 500, Label: "tail"},
				{Offset: 100, Length: 50, Label: "hit"},
				{Offset: 200, Label: "body"},
			},
			want: [][2]uint64{{500, 900}, {100, 150}, {200, 500}},
		},
		{
			name: "shared start",
			markers: []testsupport.Marker{
				{Offset: 400, Label: "late"},
				{Offset: 0, Label: "first"},
				{Offset: 0, Label: "again"},
			},
			want: [][2]uint64{{400, 900}, {0, 400}, {0, 400}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testsupport.WriteWAV(t, t.TempDir(), "loop.wav", testsupport.WAVSpec{
				Frames:  900,
				Markers: tt.markers,
			})
			_, got, err := regions.Extract(path, regions.Options{})
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d regions, got %d", len(tt.want), len(got))
			}
			for i, r := range got {
				if r.Start != tt.want[i][0] || r.End != tt.want[i][1] {
					t.Fatalf("region %d (%s) range = %d-%d, want %v", i, r.Name, r.Start, r.End, tt.want[i])
				}
				if r.Name != tt.markers[i].Label {
					t.Fatalf("region %d name = %q, want %q", i, r.Name, tt.markers[i].Label)
				}
			}
		})
	}
}

func TestExtractOverlappingRegions(t *testing.T) {
	path := testsupport.WriteWAV(t, t.TempDir(), "ride.wav", testsupport.WAVSpec{
		Frames: 100,
		Markers: []testsupport.Marker{
			testsupport.Region("all", 0, 100),
			testsupport.Region("bell", 20, 60),
		},
	})
	_, got, err := regions.Extract(path, regions.Options{})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 overlapping regions, got %d", len(got))
	}
}

func TestExtractNames(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteWAV(t, dir, "Snäre Top.wav", testsupport.WAVSpec{
		Frames: 400,
		Markers: []testsupport.Marker{
			testsupport.Region("Crème   brûlée", 0, 100),
			{Offset: 100, Length: 100},
			testsupport.Region("a very long region label", 200, 300),
			testsupport.Region("✓", 300, 400),
		},
	})
	_, got, err := regions.Extract(path, regions.Options{MaxNameLength: 12})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []struct {
		name    string
		labeled bool
	}{
		{"Creme brulee", true},
		{"Snare Top", false},
		{"a very long", true},
		{"_", true},
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Labeled != w.labeled {
			t.Fatalf("region %d = %q (labeled %v), want %q (labeled %v)", i, got[i].Name, got[i].Labeled, w.name, w.labeled)
		}
	}

	_, second, err := regions.Extract(path, regions.Options{MaxNameLength: 12})
	if err != nil {
		t.Fatalf("second Extract: %v", err)
	}
	for i := range got {
		if got[i] != second[i] {
			t.Fatalf("names not deterministic: %+v vs %+v", got[i], second[i])
		}
	}
}

func TestExtractErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		spec *testsupport.WAVSpec
		raw  []byte
		want error
	}{
		{
			name: "not riff",
			raw:  []byte("ID3\x04\x00\x00\x00\x00\x00\x00mp3 data here"),
			want: kiterr.ErrUnsupportedFormat,
		},
		{
			name: "start beyond frames",
			spec: &testsupport.WAVSpec{Frames: 100, Markers: []testsupport.Marker{testsupport.Region("x", 100, 150)}},
			want: kiterr.ErrCorruptMetadata,
		},
		{
			name: "end beyond frames",
			spec: &testsupport.WAVSpec{Frames: 100, Markers: []testsupport.Marker{testsupport.Region("x", 50, 150)}},
			want: kiterr.ErrCorruptMetadata,
		},
		{
			name: "duplicate cue id",
			spec: &testsupport.WAVSpec{Frames: 100, Markers: []testsupport.Marker{
				{ID: 7, Offset: 0, Length: 10},
				{ID: 7, Offset: 10, Length: 10},
			}},
			want: kiterr.ErrCorruptMetadata,
		},
		{
			name: "truncated cue chunk",
			spec: &testsupport.WAVSpec{Frames: 100, Extra: []testsupport.Chunk{{ID: "cue ", Body: []byte{2, 0, 0, 0}}}},
			want: kiterr.ErrCorruptMetadata,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".wav")
			if tt.spec != nil {
				testsupport.WriteBytes(t, path, testsupport.BuildWAV(*tt.spec))
			} else {
				testsupport.WriteBytes(t, path, tt.raw)
			}
			_, _, err := regions.Extract(path, regions.Options{})
			if !errors.Is(err, tt.want) {
				t.Fatalf("Extract error = %v, want %v", err, tt.want)
			}
			if got, ok := kiterr.PathOf(err); !ok || got != path {
				t.Fatalf("error path = %q, want %q", got, path)
			}
		})
	}
}

func TestExtractMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.wav")
	_, _, err := regions.Extract(path, regions.Options{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if errors.Is(err, kiterr.ErrUnsupportedFormat) || errors.Is(err, kiterr.ErrCorruptMetadata) {
		t.Fatalf("missing file should not carry a format marker: %v", err)
	}
	if _, ok := kiterr.PathOf(err); !ok {
		t.Fatalf("expected path on error %v", err)
	}
}

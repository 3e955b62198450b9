package wav_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"delugekit/internal/testsupport"
	"delugekit/internal/wav"
)

func read(t *testing.T, data []byte) (*wav.Metadata, error) {
	t.Helper()
	return wav.Read(bytes.NewReader(data), int64(len(data)))
}

func TestReadFormatAndFrames(t *testing.T) {
	data := testsupport.BuildWAV(testsupport.WAVSpec{SampleRate: 48000, Channels: 1, BitsPerSample: 24, Frames: 1234})
	meta, err := read(t, data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if meta.Format.SampleRate != 48000 || meta.Format.Channels != 1 || meta.Format.BlockAlign != 3 {
		t.Fatalf("unexpected format %+v", meta.Format)
	}
	if got := meta.Frames(); got != 1234 {
		t.Fatalf("Frames = %d, want 1234", got)
	}
	if len(meta.Cues) != 0 {
		t.Fatalf("expected no cues, got %d", len(meta.Cues))
	}
}

func TestReadCuesLabelsAndLengthsInStoredOrder(t *testing.T) {
	data := testsupport.BuildWAV(testsupport.WAVSpec{
		Frames: 3000,
		Markers: []testsupport.Marker{
			testsupport.Region("rim", 2000, 3000),
			testsupport.Region("tip", 0, 1000),
			{Offset: 1000, Label: "mid"},
		},
	})
	meta, err := read(t, data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(meta.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(meta.Cues))
	}
	wantOffsets := []uint32{2000, 0, 1000}
	for i, cue := range meta.Cues {
		if cue.SampleOffset != wantOffsets[i] {
			t.Fatalf("cue %d offset = %d, want %d", i, cue.SampleOffset, wantOffsets[i])
		}
	}
	if meta.Labels[1] != "rim" || meta.Labels[2] != "tip" || meta.Labels[3] != "mid" {
		t.Fatalf("unexpected labels %v", meta.Labels)
	}
	if lt, ok := meta.LabeledTexts[1]; !ok || lt.SampleLength != 1000 || lt.Purpose != "rgn " {
		t.Fatalf("unexpected ltxt for cue 1: %+v %v", lt, ok)
	}
	if _, ok := meta.LabeledTexts[3]; ok {
		t.Fatal("marker-only cue should have no ltxt")
	}
}

func TestReadSkipsUnknownChunks(t *testing.T) {
	data := testsupport.BuildWAV(testsupport.WAVSpec{
		Frames:  100,
		Extra:   []testsupport.Chunk{{ID: "bext", Body: []byte("odd")}, {ID: "JUNK", Body: make([]byte, 28)}},
		Markers: []testsupport.Marker{testsupport.Region("a", 0, 10)},
	})
	meta, err := read(t, data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(meta.Cues) != 1 || meta.Labels[1] != "a" {
		t.Fatalf("expected cue after unknown chunks, got %+v", meta)
	}
}

func TestReadDecodesWindows1252Labels(t *testing.T) {
	var sub bytes.Buffer
	_ = binary.Write(&sub, binary.LittleEndian, uint32(1))
	sub.Write([]byte{'C', 'a', 'f', 0xE9, 0})
	list := append([]byte("adtl"), testsupport.EncodeChunk(testsupport.Chunk{ID: "labl", Body: sub.Bytes()})...)

	data := testsupport.BuildWAV(testsupport.WAVSpec{
		Frames: 10,
		Extra: []testsupport.Chunk{
			testsupport.CueChunk([]testsupport.Marker{{Offset: 0}}),
			{ID: "LIST", Body: list},
		},
	})
	meta, err := read(t, data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if meta.Labels[1] != "Café" {
		t.Fatalf("label = %q, want Café", meta.Labels[1])
	}
}

func TestReadClampsTruncatedData(t *testing.T) {
	data := testsupport.BuildWAV(testsupport.WAVSpec{Channels: 1, Frames: 100})
	truncated := data[:len(data)-50]
	meta, err := read(t, truncated)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := meta.Frames(); got != 75 {
		t.Fatalf("Frames = %d, want 75", got)
	}
}

func TestReadErrors(t *testing.T) {
	valid := testsupport.BuildWAV(testsupport.WAVSpec{Frames: 10})

	truncatedCue := testsupport.BuildWAV(testsupport.WAVSpec{
		Frames: 10,
		Extra:  []testsupport.Chunk{{ID: "cue ", Body: []byte{5, 0, 0, 0, 1, 2, 3, 4}}},
	})

	noFormat := append([]byte{}, valid[:12]...)
	noFormat = append(noFormat, testsupport.EncodeChunk(testsupport.Chunk{ID: "data", Body: make([]byte, 8)})...)

	overrunList := append([]byte{}, valid...)
	overrunList = append(overrunList, []byte("LIST\xff\x00\x00\x00adtl")...)

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"too short", []byte("RIFF"), wav.ErrNotWave},
		{"aiff", append([]byte("FORM\x00\x00\x00\x04AIFF"), make([]byte, 8)...), wav.ErrNotWave},
		{"missing fmt", noFormat, wav.ErrUnsupportedEncoding},
		{"truncated cue", truncatedCue, wav.ErrMalformed},
		{"list overruns file", overrunList, wav.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := read(t, tt.data)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Read error = %v, want %v", err, tt.want)
			}
		})
	}
}

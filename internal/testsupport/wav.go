package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// Marker describes one cue point written into a fixture.
type Marker struct {
	// ID defaults to the 1-based marker index.
	ID     uint32
	Offset uint32
	// Length > 0 writes an ltxt record, making the marker a region.
	Length uint32
	// Label writes a labl record when non-empty.
	Label string
}

// Chunk is a raw RIFF chunk inserted verbatim into a fixture.
type Chunk struct {
	ID   string
	Body []byte
}

// WAVSpec describes a fixture file. Zero values take CD-quality defaults.
type WAVSpec struct {
	SampleRate    uint32
	Channels      uint16
	BitsPerSample uint16
	Frames        uint32
	Markers       []Marker
	// Extra chunks are written between fmt and data.
	Extra []Chunk
}

// Region returns a marker with a label and an explicit length.
func Region(label string, start, end uint32) Marker {
	return Marker{Label: label, Offset: start, Length: end - start}
}

// BuildWAV renders spec into RIFF/WAVE bytes with a zeroed data chunk.
func BuildWAV(spec WAVSpec) []byte {
	if spec.SampleRate == 0 {
		spec.SampleRate = 44100
	}
	if spec.Channels == 0 {
		spec.Channels = 2
	}
	if spec.BitsPerSample == 0 {
		spec.BitsPerSample = 16
	}
	blockAlign := spec.Channels * (spec.BitsPerSample / 8)

	var fmtBody bytes.Buffer
	le(&fmtBody, uint16(1))
	le(&fmtBody, spec.Channels)
	le(&fmtBody, spec.SampleRate)
	le(&fmtBody, spec.SampleRate*uint32(blockAlign))
	le(&fmtBody, blockAlign)
	le(&fmtBody, spec.BitsPerSample)

	var body bytes.Buffer
	body.WriteString("WAVE")
	body.Write(EncodeChunk(Chunk{ID: "fmt ", Body: fmtBody.Bytes()}))
	for _, extra := range spec.Extra {
		body.Write(EncodeChunk(extra))
	}
	body.Write(EncodeChunk(Chunk{ID: "data", Body: make([]byte, int(spec.Frames)*int(blockAlign))}))
	if len(spec.Markers) > 0 {
		body.Write(EncodeChunk(CueChunk(spec.Markers)))
		if list, ok := AdtlChunk(spec.Markers); ok {
			body.Write(EncodeChunk(list))
		}
	}

	var out bytes.Buffer
	out.WriteString("RIFF")
	le(&out, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

// CueChunk encodes the cue chunk for markers.
func CueChunk(markers []Marker) Chunk {
	var buf bytes.Buffer
	le(&buf, uint32(len(markers)))
	for i, m := range markers {
		le(&buf, markerID(i, m))
		le(&buf, m.Offset)
		buf.WriteString("data")
		le(&buf, uint32(0))
		le(&buf, uint32(0))
		le(&buf, m.Offset)
	}
	return Chunk{ID: "cue ", Body: buf.Bytes()}
}

// AdtlChunk encodes the LIST/adtl chunk holding labels and region lengths.
func AdtlChunk(markers []Marker) (Chunk, bool) {
	var buf bytes.Buffer
	buf.WriteString("adtl")
	written := false
	for i, m := range markers {
		id := markerID(i, m)
		if m.Label != "" {
			var sub bytes.Buffer
			le(&sub, id)
			sub.WriteString(m.Label)
			sub.WriteByte(0)
			buf.Write(EncodeChunk(Chunk{ID: "labl", Body: sub.Bytes()}))
			written = true
		}
		if m.Length > 0 {
			var sub bytes.Buffer
			le(&sub, id)
			le(&sub, m.Length)
			sub.WriteString("rgn ")
			le(&sub, uint16(0))
			le(&sub, uint16(0))
			le(&sub, uint16(0))
			le(&sub, uint16(0))
			buf.Write(EncodeChunk(Chunk{ID: "ltxt", Body: sub.Bytes()}))
			written = true
		}
	}
	return Chunk{ID: "LIST", Body: buf.Bytes()}, written
}

// EncodeChunk renders a chunk header, body, and pad byte.
func EncodeChunk(c Chunk) []byte {
	var buf bytes.Buffer
	buf.WriteString(c.ID)
	le(&buf, uint32(len(c.Body)))
	buf.Write(c.Body)
	if len(c.Body)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// WriteWAV writes a fixture built from spec to dir/name and returns its path.
func WriteWAV(t testing.TB, dir, name string, spec WAVSpec) string {
	t.Helper()
	return WriteBytes(t, filepath.Join(dir, name), BuildWAV(spec))
}

// WriteBytes writes raw bytes to path, creating parent directories.
func WriteBytes(t testing.TB, path string, data []byte) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func markerID(index int, m Marker) uint32 {
	if m.ID != 0 {
		return m.ID
	}
	return uint32(index + 1)
}

func le(buf *bytes.Buffer, v any) {
	_ = binary.Write(buf, binary.LittleEndian, v)
}

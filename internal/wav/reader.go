package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrNotWave reports a file that is not a RIFF/WAVE container.
	ErrNotWave = errors.New("not a RIFF/WAVE file")
	// ErrUnsupportedEncoding reports a WAVE file whose format chunk is
	// missing or unusable.
	ErrUnsupportedEncoding = errors.New("unsupported WAVE encoding")
	// ErrMalformed reports structurally invalid metadata chunks.
	ErrMalformed = errors.New("malformed WAVE metadata")
)

// Format mirrors the fields of the fmt chunk.
type Format struct {
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// CuePoint is one record of the cue chunk.
type CuePoint struct {
	ID           uint32
	Position     uint32
	DataChunkID  string
	ChunkStart   uint32
	BlockStart   uint32
	SampleOffset uint32
}

// LabeledText is an ltxt record; a non-zero SampleLength turns the cue it
// references into a region.
type LabeledText struct {
	CueID        uint32
	SampleLength uint32
	Purpose      string
	Text         string
}

// Metadata is everything the reader extracts from one file.
type Metadata struct {
	Format Format
	// DataSize is the number of sample-data bytes actually present.
	DataSize     uint64
	HasData      bool
	Cues         []CuePoint
	Labels       map[uint32]string
	Notes        map[uint32]string
	LabeledTexts map[uint32]LabeledText
}

// Frames returns the number of sample frames in the data chunk.
func (m *Metadata) Frames() uint64 {
	if m.Format.BlockAlign == 0 {
		return 0
	}
	return m.DataSize / uint64(m.Format.BlockAlign)
}

// Read parses the chunk list of a WAVE file of the given size.
func Read(r io.ReaderAt, size int64) (*Metadata, error) {
	var header [12]byte
	if size < int64(len(header)) {
		return nil, fmt.Errorf("%w: file is %d bytes", ErrNotWave, size)
	}
	if _, err := r.ReadAt(header[:], 0); err != nil {
		return nil, fmt.Errorf("read RIFF header: %w", err)
	}
	if string(header[0:4]) != idRIFF || string(header[8:12]) != idWAVE {
		return nil, fmt.Errorf("%w: header %q/%q", ErrNotWave, header[0:4], header[8:12])
	}

	meta := &Metadata{
		Labels:       make(map[uint32]string),
		Notes:        make(map[uint32]string),
		LabeledTexts: make(map[uint32]LabeledText),
	}
	var haveFormat, haveCues bool

	pos := int64(len(header))
	for pos+chunkHeaderSize <= size {
		c, err := readChunkHeader(r, pos)
		if err != nil {
			return nil, err
		}
		available := size - c.Offset
		overrun := int64(c.Size) > available
		kind := kindOf(c.ID)

		switch kind {
		case kindFormat:
			if overrun {
				return nil, fmt.Errorf("%w: chunk %s overruns the file", ErrUnsupportedEncoding, c)
			}
			if haveFormat {
				break
			}
			body, err := readBody(r, c)
			if err != nil {
				return nil, err
			}
			if meta.Format, err = parseFormat(body); err != nil {
				return nil, err
			}
			haveFormat = true
		case kindData:
			if meta.HasData {
				break
			}
			meta.HasData = true
			meta.DataSize = uint64(c.Size)
			if overrun {
				meta.DataSize = uint64(available)
			}
		case kindCue:
			if overrun {
				return nil, fmt.Errorf("%w: chunk %s overruns the file", ErrMalformed, c)
			}
			if haveCues {
				break
			}
			body, err := readBody(r, c)
			if err != nil {
				return nil, err
			}
			if meta.Cues, err = parseCues(body); err != nil {
				return nil, err
			}
			haveCues = true
		case kindList:
			if overrun {
				return nil, fmt.Errorf("%w: chunk %s overruns the file", ErrMalformed, c)
			}
			body, err := readBody(r, c)
			if err != nil {
				return nil, err
			}
			if len(body) >= 4 && string(body[0:4]) == idAdtl {
				if err := parseAssociatedData(body[4:], meta); err != nil {
					return nil, err
				}
			}
		}

		// An unknown chunk that overruns the file is trailing garbage, and a
		// clamped data chunk is the last one; either way the walk ends here.
		if overrun {
			break
		}
		pos = c.Offset + paddedSize(c.Size)
	}

	if !haveFormat {
		return nil, fmt.Errorf("%w: no fmt chunk", ErrUnsupportedEncoding)
	}
	return meta, nil
}

func readChunkHeader(r io.ReaderAt, pos int64) (chunk, error) {
	var hdr [chunkHeaderSize]byte
	if _, err := r.ReadAt(hdr[:], pos); err != nil {
		return chunk{}, fmt.Errorf("read chunk header at %d: %w", pos, err)
	}
	return chunk{
		ID:     string(hdr[0:4]),
		Size:   binary.LittleEndian.Uint32(hdr[4:8]),
		Offset: pos + chunkHeaderSize,
	}, nil
}

func readBody(r io.ReaderAt, c chunk) ([]byte, error) {
	body := make([]byte, c.Size)
	if _, err := r.ReadAt(body, c.Offset); err != nil && !(errors.Is(err, io.EOF) && c.Size == 0) {
		return nil, fmt.Errorf("read chunk %s: %w", c, err)
	}
	return body, nil
}

// decodeText returns the NUL-terminated string at the start of b. Editors on
// Windows write labels in the ANSI code page, so bytes that are not valid
// UTF-8 are decoded as Windows-1252.
func decodeText(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(bytes.ToValidUTF8(b, []byte("?")))
	}
	return string(decoded)
}

package wav

import (
	"encoding/binary"
	"fmt"
)

const (
	idRIFF = "RIFF"
	idWAVE = "WAVE"
	idFmt  = "fmt "
	idData = "data"
	idCue  = "cue "
	idList = "LIST"
	idAdtl = "adtl"
	idLabl = "labl"
	idNote = "note"
	idLtxt = "ltxt"
)

const (
	chunkHeaderSize = 8
	fmtMinSize      = 16
	cuePointSize    = 24
	ltxtMinSize     = 20
)

type chunkKind int

const (
	kindUnknown chunkKind = iota
	kindFormat
	kindData
	kindCue
	kindList
)

var chunkKinds = map[string]chunkKind{
	idFmt:  kindFormat,
	idData: kindData,
	idCue:  kindCue,
	idList: kindList,
}

func kindOf(id string) chunkKind {
	return chunkKinds[id]
}

// chunk is one entry of the RIFF chunk list. Offset points at the body.
type chunk struct {
	ID     string
	Size   uint32
	Offset int64
}

func (c chunk) String() string {
	return fmt.Sprintf("%q@%d(%d bytes)", c.ID, c.Offset, c.Size)
}

// paddedSize is the on-disk size of a body, including the pad byte RIFF
// appends to odd-sized chunks.
func paddedSize(size uint32) int64 {
	return int64(size) + int64(size&1)
}

func parseFormat(body []byte) (Format, error) {
	if len(body) < fmtMinSize {
		return Format{}, fmt.Errorf("%w: fmt chunk is %d bytes, need %d", ErrUnsupportedEncoding, len(body), fmtMinSize)
	}
	f := Format{
		AudioFormat:   binary.LittleEndian.Uint16(body[0:2]),
		Channels:      binary.LittleEndian.Uint16(body[2:4]),
		SampleRate:    binary.LittleEndian.Uint32(body[4:8]),
		ByteRate:      binary.LittleEndian.Uint32(body[8:12]),
		BlockAlign:    binary.LittleEndian.Uint16(body[12:14]),
		BitsPerSample: binary.LittleEndian.Uint16(body[14:16]),
	}
	if f.BlockAlign == 0 || f.Channels == 0 {
		return Format{}, fmt.Errorf("%w: block align %d, channels %d", ErrUnsupportedEncoding, f.BlockAlign, f.Channels)
	}
	return f, nil
}

func parseCues(body []byte) ([]CuePoint, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: cue chunk is %d bytes", ErrMalformed, len(body))
	}
	count := binary.LittleEndian.Uint32(body[0:4])
	need := 4 + uint64(count)*cuePointSize
	if uint64(len(body)) < need {
		return nil, fmt.Errorf("%w: cue chunk declares %d points but holds %d bytes", ErrMalformed, count, len(body))
	}
	cues := make([]CuePoint, 0, count)
	for i := uint32(0); i < count; i++ {
		rec := body[4+i*cuePointSize : 4+(i+1)*cuePointSize]
		cues = append(cues, CuePoint{
			ID:           binary.LittleEndian.Uint32(rec[0:4]),
			Position:     binary.LittleEndian.Uint32(rec[4:8]),
			DataChunkID:  string(rec[8:12]),
			ChunkStart:   binary.LittleEndian.Uint32(rec[12:16]),
			BlockStart:   binary.LittleEndian.Uint32(rec[16:20]),
			SampleOffset: binary.LittleEndian.Uint32(rec[20:24]),
		})
	}
	return cues, nil
}

// parseAssociatedData walks the sub-chunks of a LIST/adtl body.
func parseAssociatedData(body []byte, meta *Metadata) error {
	pos := 0
	for pos+chunkHeaderSize <= len(body) {
		id := string(body[pos : pos+4])
		size := binary.LittleEndian.Uint32(body[pos+4 : pos+8])
		start := pos + chunkHeaderSize
		if uint64(start)+uint64(size) > uint64(len(body)) {
			return fmt.Errorf("%w: adtl sub-chunk %q overruns its list", ErrMalformed, id)
		}
		sub := body[start : start+int(size)]
		switch id {
		case idLabl, idNote:
			if len(sub) < 4 {
				return fmt.Errorf("%w: %s sub-chunk is %d bytes", ErrMalformed, id, len(sub))
			}
			cueID := binary.LittleEndian.Uint32(sub[0:4])
			text := decodeText(sub[4:])
			if id == idLabl {
				if _, seen := meta.Labels[cueID]; !seen {
					meta.Labels[cueID] = text
				}
			} else if _, seen := meta.Notes[cueID]; !seen {
				meta.Notes[cueID] = text
			}
		case idLtxt:
			if len(sub) < ltxtMinSize {
				return fmt.Errorf("%w: ltxt sub-chunk is %d bytes", ErrMalformed, len(sub))
			}
			lt := LabeledText{
				CueID:        binary.LittleEndian.Uint32(sub[0:4]),
				SampleLength: binary.LittleEndian.Uint32(sub[4:8]),
				Purpose:      string(sub[8:12]),
				Text:         decodeText(sub[ltxtMinSize:]),
			}
			if _, seen := meta.LabeledTexts[lt.CueID]; !seen {
				meta.LabeledTexts[lt.CueID] = lt
			}
		}
		pos = start + int(paddedSize(size))
	}
	return nil
}

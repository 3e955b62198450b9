package deluge

import (
	"bytes"
	"fmt"
	"strconv"

	"delugekit/internal/kit"
)

const (
	FirmwareVersion            = "3.1.5"
	EarliestCompatibleFirmware = "3.1.0-beta"

	xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
)

// Parameter values are signed 32-bit knob positions written as hex.
const (
	paramMin     uint32 = 0x80000000
	paramCenter  uint32 = 0x00000000
	paramMax     uint32 = 0x7FFFFFFF
	paramVolume  uint32 = 0x3C000000
	paramDecay   uint32 = 0xE6666654
	paramCompShp uint32 = 0xDC28F5B2
)

func hexParam(v uint32) string {
	return fmt.Sprintf("0x%08X", v)
}

func textElement(name, text string) *element {
	return &element{name: name, text: text}
}

// Render returns the kit XML for k. It does not touch the filesystem.
func Render(k *kit.Kit) []byte {
	root := newElement("kit",
		a("firmwareVersion", FirmwareVersion),
		a("earliestCompatibleFirmware", EarliestCompatibleFirmware),
		a("lpfMode", "24dB"),
		a("modFXType", "none"),
		a("modFXCurrentParam", "feedback"),
		a("currentFilterType", "lpf"),
	)
	root.add(
		delay(),
		compressor(),
		kitParams(),
	)

	sources := newElement("soundSources")
	for _, row := range k.Rows {
		sources.add(sound(row))
	}
	root.add(sources, textElement("selectedDrumIndex", "0"))

	var buf bytes.Buffer
	buf.WriteString(xmlDeclaration)
	root.write(&buf, 0)
	return buf.Bytes()
}

func sound(row kit.Row) *element {
	osc1 := newElement("osc1",
		a("type", "sample"),
		a("loopMode", strconv.Itoa(row.Mode.LoopMode())),
		a("reversed", "0"),
		a("timeStretchEnable", "0"),
		a("timeStretchAmount", "0"),
		a("fileName", row.SamplePath),
	).add(newElement("zone",
		a("startSamplePos", strconv.FormatUint(row.Start, 10)),
		a("endSamplePos", strconv.FormatUint(row.End, 10)),
	))

	return newElement("sound",
		a("name", row.Name),
		a("polyphonic", "auto"),
		a("voicePriority", "1"),
		a("mode", "subtractive"),
		a("lpfMode", "24dB"),
		a("modFXType", "none"),
	).add(
		osc1,
		newElement("osc2",
			a("type", "square"),
			a("transpose", "0"),
			a("cents", "0"),
			a("retrigPhase", "-1"),
		),
		newElement("lfo1", a("type", "triangle"), a("syncLevel", "0")),
		newElement("lfo2", a("type", "triangle")),
		newElement("unison", a("num", "1"), a("detune", "8")),
		delay(),
		compressor(),
		soundParams(),
	)
}

func delay() *element {
	return newElement("delay",
		a("pingPong", "1"),
		a("analog", "0"),
		a("syncLevel", "7"),
	)
}

func compressor() *element {
	return newElement("compressor",
		a("syncLevel", "6"),
		a("attack", "327244"),
		a("release", "936"),
	)
}

func kitParams() *element {
	return newElement("defaultParams",
		a("reverbAmount", hexParam(paramMin)),
		a("volume", hexParam(paramVolume)),
		a("pan", hexParam(paramCenter)),
		a("lpfFrequency", hexParam(paramMax)),
		a("lpfResonance", hexParam(paramMin)),
		a("hpfFrequency", hexParam(paramMin)),
		a("hpfResonance", hexParam(paramMin)),
		a("delayRate", hexParam(paramCenter)),
		a("delayFeedback", hexParam(paramMin)),
	)
}

func soundParams() *element {
	return newElement("defaultParams",
		a("arpeggiatorGate", hexParam(paramCenter)),
		a("portamento", hexParam(paramMin)),
		a("compressorShape", hexParam(paramCompShp)),
		a("oscAVolume", hexParam(paramMax)),
		a("oscAPulseWidth", hexParam(paramCenter)),
		a("oscBVolume", hexParam(paramMin)),
		a("oscBPulseWidth", hexParam(paramCenter)),
		a("noiseVolume", hexParam(paramMin)),
		a("volume", hexParam(paramVolume)),
		a("pan", hexParam(paramCenter)),
		a("lpfFrequency", hexParam(paramMax)),
		a("lpfResonance", hexParam(paramMin)),
		a("hpfFrequency", hexParam(paramMin)),
		a("hpfResonance", hexParam(paramMin)),
		a("reverbAmount", hexParam(paramMin)),
		a("delayRate", hexParam(paramCenter)),
		a("delayFeedback", hexParam(paramMin)),
	).add(
		newElement("envelope1",
			a("attack", hexParam(paramMin)),
			a("decay", hexParam(paramDecay)),
			a("sustain", hexParam(paramMax)),
			a("release", hexParam(paramMin)),
		),
		newElement("envelope2",
			a("attack", hexParam(paramDecay)),
			a("decay", hexParam(paramDecay)),
			a("sustain", hexParam(paramCenter)),
			a("release", hexParam(paramDecay)),
		),
	)
}

package kit

import (
	"fmt"
	"strings"
)

// PlaybackMode selects how the Deluge plays a row's sample when its pad is
// hit. The numeric value is the firmware's loopMode.
type PlaybackMode int

const (
	PlaybackCut PlaybackMode = iota
	PlaybackOnce
	PlaybackLoop
	PlaybackStretch
)

// DefaultPlaybackMode is used when no mode is configured.
const DefaultPlaybackMode = PlaybackOnce

var playbackNames = [...]string{
	PlaybackCut:     "cut",
	PlaybackOnce:    "once",
	PlaybackLoop:    "loop",
	PlaybackStretch: "stretch",
}

// ParsePlaybackMode maps a configured name to a mode. Empty selects the
// default.
func ParsePlaybackMode(value string) (PlaybackMode, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return DefaultPlaybackMode, nil
	}
	for mode, name := range playbackNames {
		if name == value {
			return PlaybackMode(mode), nil
		}
	}
	return DefaultPlaybackMode, fmt.Errorf("unknown playback mode %q (want cut, once, loop or stretch)", value)
}

func (m PlaybackMode) String() string {
	if m < 0 || int(m) >= len(playbackNames) {
		return fmt.Sprintf("PlaybackMode(%d)", int(m))
	}
	return playbackNames[m]
}

// LoopMode returns the value written to the oscillator's loopMode attribute.
func (m PlaybackMode) LoopMode() int {
	return int(m)
}

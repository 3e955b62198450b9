// Package regions turns the cue and associated-data chunks of a WAV file
// into an ordered list of named sample ranges.
//
// Regions come back in the order the cue chunk records them, which is the
// order the editor wrote them. A cue with an ltxt length is a region; a cue
// without one is a start marker that runs to the next cue start or to the end
// of the sample data. Names are transliterated to the characters the Deluge
// can display.
package regions

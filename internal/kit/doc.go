// Package kit holds the in-memory model of a Deluge kit and the row mapper
// that turns extracted regions into uniquely named rows.
//
// A Registry tracks the row names already taken in one kit. Synthesis owns
// the registry and hands it to every Map call, so the per-file and the
// combined modes share the same naming rules and differ only in how long a
// registry lives.
package kit

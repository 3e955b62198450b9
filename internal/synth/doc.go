// Package synth drives a kit generation run: it extracts the regions of
// every input file, maps them to rows, and writes the resulting kits through
// a Target.
//
// Extraction runs on a bounded worker pool. Everything after extraction
// (row naming, kit assembly, writing) happens on the calling goroutine in
// file-supply order, so naming and row order never depend on scheduling.
//
// In the default mode each file gets its own kit and registry; a file that
// fails is recorded in Result.Failures and the run moves on. In combine-all
// mode a single registry spans every file and any extraction failure aborts
// the run before anything is written.
package synth

// Package wav reads the structural metadata of RIFF/WAVE files: the sample
// format, the size of the sample data, cue points, and the associated data
// list (labl, note, ltxt) that audio editors use to store named regions.
//
// The reader walks the chunk list once and dispatches on a fixed set of
// known chunk kinds. Unknown chunks are skipped, matching the permissive
// container convention. Sample data is never read.
package wav

package synth

import (
	"log/slog"

	"delugekit/internal/kit"
)

// Options configures a Synthesize call.
type Options struct {
	// CombineAll builds one kit across all files instead of one per file.
	CombineAll bool
	// CombinedName names the kit built in combine-all mode.
	CombinedName string
	Target       Target
	Mapper       kit.Mapper
	// Workers bounds concurrent extraction. Values below 1 mean 1.
	Workers int
	Logger  *slog.Logger
}

// WrittenKit describes one kit file produced by a run.
type WrittenKit struct {
	Path    string   `json:"path"`
	Name    string   `json:"name"`
	Rows    int      `json:"rows"`
	Sources []string `json:"sources"`
	Digest  string   `json:"digest"`
	// Unchanged is true when the file on disk already matched.
	Unchanged bool         `json:"unchanged"`
	Samples   []SampleCopy `json:"samples,omitempty"`
}

// Failure is a per-file error collected in the default mode.
type Failure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Result is the aggregate outcome of a run.
type Result struct {
	Written []WrittenKit `json:"written"`
	// Skipped lists inputs that held no regions.
	Skipped  []string  `json:"skipped"`
	Failures []Failure `json:"failures"`
}

// Paths returns the written kit paths in the order they were produced.
func (r Result) Paths() []string {
	out := make([]string, 0, len(r.Written))
	for _, w := range r.Written {
		out = append(out, w.Path)
	}
	return out
}

// Failed reports whether any input failed.
func (r Result) Failed() bool {
	return len(r.Failures) > 0
}

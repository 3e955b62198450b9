package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"delugekit/internal/kiterr"
	"delugekit/internal/synth"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type failureReport struct {
	Path  string `json:"path"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

type runReport struct {
	RunID    string             `json:"run_id"`
	Written  []synth.WrittenKit `json:"written"`
	Skipped  []string           `json:"skipped"`
	Failures []failureReport    `json:"failures"`
	Error    string             `json:"error,omitempty"`
}

func newRunReport(runID string, res synth.Result, err error) runReport {
	report := runReport{
		RunID:    runID,
		Written:  res.Written,
		Skipped:  res.Skipped,
		Failures: make([]failureReport, 0, len(res.Failures)),
	}
	if report.Written == nil {
		report.Written = []synth.WrittenKit{}
	}
	if report.Skipped == nil {
		report.Skipped = []string{}
	}
	for _, f := range res.Failures {
		report.Failures = append(report.Failures, failureReport{
			Path:  f.Path,
			Kind:  kiterr.Kind(f.Err),
			Error: kiterr.Cause(f.Err),
		})
	}
	if err != nil {
		report.Error = err.Error()
	}
	return report
}

// formatDuration renders a frame count at the given sample rate as seconds.
func formatDuration(frames uint64, sampleRate uint32) string {
	if sampleRate == 0 {
		return "-"
	}
	d := time.Duration(float64(frames) / float64(sampleRate) * float64(time.Second))
	return fmt.Sprintf("%.3fs", d.Seconds())
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

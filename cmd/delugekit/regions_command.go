package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"delugekit/internal/kiterr"
	"delugekit/internal/regions"
)

type regionReport struct {
	CueID    uint32 `json:"cue_id"`
	Name     string `json:"name"`
	Start    uint64 `json:"start"`
	End      uint64 `json:"end"`
	Labeled  bool   `json:"labeled"`
	Duration string `json:"duration"`
}

type fileRegionsReport struct {
	Path       string         `json:"path"`
	SampleRate uint32         `json:"sample_rate,omitempty"`
	Channels   uint16         `json:"channels,omitempty"`
	Frames     uint64         `json:"frames,omitempty"`
	Regions    []regionReport `json:"regions"`
	Kind       string         `json:"kind,omitempty"`
	Error      string         `json:"error,omitempty"`
}

func newRegionsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "regions <files...>",
		Short: "List the regions embedded in WAV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := regions.Options{MaxNameLength: cfg.Naming.MaxLength}

			reports := make([]fileRegionsReport, 0, len(args))
			failed := 0
			for _, path := range args {
				report := collectRegions(path, opts)
				if report.Error != "" {
					failed++
				}
				reports = append(reports, report)
			}

			if asJSON {
				if err := writeJSON(cmd, reports); err != nil {
					return err
				}
			} else {
				printRegions(cmd, reports)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files could not be read", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print regions as JSON")
	return cmd
}

func collectRegions(path string, opts regions.Options) fileRegionsReport {
	src, regs, err := regions.Extract(path, opts)
	report := fileRegionsReport{
		Path:       path,
		SampleRate: src.SampleRate,
		Channels:   src.Channels,
		Frames:     src.Frames,
		Regions:    make([]regionReport, 0, len(regs)),
	}
	if err != nil {
		report.Kind = kiterr.Kind(err)
		report.Error = kiterr.Cause(err)
		return report
	}
	for _, r := range regs {
		report.Regions = append(report.Regions, regionReport{
			CueID:    r.CueID,
			Name:     r.Name,
			Start:    r.Start,
			End:      r.End,
			Labeled:  r.Labeled,
			Duration: formatDuration(r.Length(), src.SampleRate),
		})
	}
	return report
}

func printRegions(cmd *cobra.Command, reports []fileRegionsReport) {
	out := cmd.OutOrStdout()
	status := newStatusPrinter(out)
	for _, report := range reports {
		status.section(report.Path)
		if report.Error != "" {
			status.line("Error", statusError, report.Error)
			continue
		}
		status.line("Format", statusInfo, fmt.Sprintf("%d Hz, %d ch, %s frames (%s)",
			report.SampleRate, report.Channels, formatUint(report.Frames), formatDuration(report.Frames, report.SampleRate)))
		if len(report.Regions) == 0 {
			status.line("Regions", statusWarn, "none")
			continue
		}
		rows := make([][]string, 0, len(report.Regions))
		for i, r := range report.Regions {
			name := r.Name
			if !r.Labeled {
				name += " (unlabeled)"
			}
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				name,
				formatUint(r.Start),
				formatUint(r.End),
				r.Duration,
			})
		}
		fmt.Fprintln(out, renderTable(tableSpec{
			Headers: []string{"#", "Name", "Start", "End", "Length"},
			Rows:    rows,
			Aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight},
		}))
	}
}

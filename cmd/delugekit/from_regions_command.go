package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"delugekit/internal/config"
	"delugekit/internal/kit"
	"delugekit/internal/kiterr"
	"delugekit/internal/runctx"
	"delugekit/internal/synth"
)

type fromRegionsFlags struct {
	combineAll bool
	card       string
	sampleDir  string
	force      bool
	outputDir  string
	name       string
	workers    int
	json       bool
}

func newFromRegionsCommand(ctx *commandContext) *cobra.Command {
	var flags fromRegionsFlags

	cmd := &cobra.Command{
		Use:   "from-regions <files...>",
		Short: "Generate kits from the regions of WAV files",
		Long: "Generate one kit per WAV file, or a single kit with --combine-all, using the\n" +
			"region markers embedded in the files. Each region becomes a kit row.\n\n" +
			"With --card (or card.path in the config) kits are written to the card's KITS\n" +
			"folder as KITnnn.XML and the samples are copied into SAMPLES/<sample-dir>.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyFromRegionsFlags(cmd, cfg, flags); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			mode, err := kit.ParsePlaybackMode(cfg.Kit.PlaybackMode)
			if err != nil {
				return err
			}
			target, err := buildTarget(cfg, flags.outputDir, logger)
			if err != nil {
				return err
			}

			runCtx := ctx.runContext(cmd)
			runID, _ := runctx.RunIDFromContext(runCtx)
			res, runErr := synth.Synthesize(runCtx, args, synth.Options{
				CombineAll:   flags.combineAll,
				CombinedName: cfg.Kit.CombinedName,
				Target:       target,
				Mapper:       kit.Mapper{MaxNameLength: cfg.Naming.MaxLength, Mode: mode},
				Workers:      cfg.Extract.Workers,
				Logger:       logger,
			})

			if flags.json {
				if err := writeJSON(cmd, newRunReport(runID, res, runErr)); err != nil {
					return err
				}
			} else {
				printRunSummary(cmd, res)
			}

			if runErr != nil {
				return runErr
			}
			if res.Failed() {
				return fmt.Errorf("%d of %d files failed", len(res.Failures), len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&flags.combineAll, "combine-all", false, "Build a single kit from the regions of all files")
	cmd.Flags().StringVar(&flags.card, "card", "", "Root directory of the Deluge card to write kits and samples to")
	cmd.Flags().StringVarP(&flags.sampleDir, "sample-dir", "d", "", "Sample directory on the card (relative to SAMPLES, or absolute inside the card)")
	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Replace samples that already exist on the card")
	cmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "", "Directory for generated kits when not writing to a card")
	cmd.Flags().StringVar(&flags.name, "name", "", "Name of the combined kit (default from kit.combined_name)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "Number of files to read concurrently")
	cmd.Flags().BoolVar(&flags.json, "json", false, "Print the run result as JSON")
	return cmd
}

// applyFromRegionsFlags layers explicitly set flags over the loaded config
// and validates the result again.
func applyFromRegionsFlags(cmd *cobra.Command, cfg *config.Config, flags fromRegionsFlags) error {
	set := cmd.Flags().Changed
	if set("card") {
		card, err := config.ExpandPath(strings.TrimSpace(flags.card))
		if err != nil {
			return fmt.Errorf("resolve card path: %w", err)
		}
		cfg.Card.Path = card
	}
	if set("sample-dir") {
		dir := strings.TrimSpace(flags.sampleDir)
		if strings.HasPrefix(dir, "~") || filepath.IsAbs(dir) {
			expanded, err := config.ExpandPath(dir)
			if err != nil {
				return fmt.Errorf("resolve sample dir: %w", err)
			}
			dir = expanded
		}
		cfg.Card.SampleDir = filepath.Clean(dir)
	}
	if flags.force {
		cfg.Card.ReplaceSamples = true
	}
	if set("name") {
		cfg.Kit.CombinedName = strings.TrimSpace(flags.name)
	}
	if set("workers") {
		if flags.workers < 1 {
			return errors.New("--workers must be at least 1")
		}
		cfg.Extract.Workers = flags.workers
	}
	if set("output-dir") && cfg.CardMode() {
		return errors.New("--output-dir cannot be combined with a card target")
	}
	return cfg.Validate()
}

func buildTarget(cfg *config.Config, outputDir string, logger *slog.Logger) (synth.Target, error) {
	if cfg.CardMode() {
		card, err := synth.NewCardTarget(cfg.Card.Path, cfg.Card.SampleDir, cfg.Card.ReplaceSamples, logger)
		if err != nil {
			return nil, err
		}
		return card, nil
	}
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		return synth.DirTarget{}, nil
	}
	dir, err := config.ExpandPath(outputDir)
	if err != nil {
		return nil, fmt.Errorf("resolve output dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, kiterr.Wrap(kiterr.ErrWrite, dir, "create output directory", "", err)
	}
	return synth.DirTarget{OutputDir: dir}, nil
}

func printRunSummary(cmd *cobra.Command, res synth.Result) {
	out := cmd.OutOrStdout()
	status := newStatusPrinter(out)

	if len(res.Written) > 0 {
		rows := make([][]string, 0, len(res.Written))
		totalRows := 0
		for _, w := range res.Written {
			state := "written"
			if w.Unchanged {
				state = "unchanged"
			}
			rows = append(rows, []string{w.Name, w.Path, strconv.Itoa(w.Rows), strconv.Itoa(len(w.Sources)), state})
			totalRows += w.Rows
		}
		fmt.Fprintln(out, renderTable(tableSpec{
			Headers: []string{"Kit", "Path", "Rows", "Sources", "Status"},
			Rows:    rows,
			Aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			Footer:  []string{fmt.Sprintf("%d kits", len(res.Written)), "", strconv.Itoa(totalRows), "", ""},
		}))
		for _, w := range res.Written {
			for _, s := range w.Samples {
				if s.Copied {
					status.line("Sample", statusOK, fmt.Sprintf("%s (replaced: %s)", s.Destination, yesNo(s.Replaced)))
				} else {
					status.line("Sample", statusInfo, fmt.Sprintf("%s already on card", s.Destination))
				}
			}
		}
	}
	for _, path := range res.Skipped {
		status.line("Skipped", statusWarn, fmt.Sprintf("%s has no regions", path))
	}
	for _, f := range res.Failures {
		status.line("Failed", statusError, fmt.Sprintf("%s: %s", f.Path, kiterr.Cause(f.Err)))
	}
}

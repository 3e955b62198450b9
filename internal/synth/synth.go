package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"delugekit/internal/deluge"
	"delugekit/internal/kit"
	"delugekit/internal/kiterr"
	"delugekit/internal/logging"
	"delugekit/internal/regions"
	"delugekit/internal/runctx"
)

// DefaultCombinedName names the combined kit when none is configured.
const DefaultCombinedName = "combined"

const (
	modeDefault    = "per-file"
	modeCombineAll = "combine-all"
)

// Synthesize generates kits for files, in the order given.
//
// In the default mode per-file failures are collected in the result and the
// returned error is nil unless nothing at all could be generated. In
// combine-all mode any failure is returned as the error.
func Synthesize(ctx context.Context, files []string, opts Options) (Result, error) {
	if opts.Target == nil {
		opts.Target = DirTarget{}
	}
	mode := modeDefault
	if opts.CombineAll {
		mode = modeCombineAll
	}
	ctx = runctx.WithMode(ctx, mode)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "synth"))

	if len(files) == 0 {
		return Result{}, kiterr.Wrap(kiterr.ErrNothingToGenerate, "", "synthesize", "no input files", nil)
	}

	release, err := opts.Target.Acquire(ctx)
	if err != nil {
		return Result{}, err
	}
	defer release()

	logger.Debug("extracting regions",
		logging.Int("files", len(files)),
		logging.Int("workers", opts.Workers),
		logging.String("target", describeTarget(opts.Target)),
	)
	extracted := extractAll(ctx, files, opts.Workers, regions.Options{MaxNameLength: opts.Mapper.MaxNameLength})

	r := &run{opts: opts, logger: logger, planned: make(map[string]string)}
	if opts.CombineAll {
		return r.combined(ctx, extracted)
	}
	return r.perFile(ctx, extracted)
}

type run struct {
	opts   Options
	logger *slog.Logger
	// planned maps lower-cased kit paths produced in this run to their
	// first source, so kits differing only in case do not overwrite each
	// other on case-insensitive filesystems.
	planned map[string]string
	result  Result
}

func (r *run) perFile(ctx context.Context, extracted []extraction) (Result, error) {
	for _, ex := range extracted {
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		fileCtx := runctx.WithSource(ctx, ex.source.Path)
		logger := logging.WithContext(fileCtx, r.logger)

		if ex.err != nil {
			r.fail(logger, ex.source.Path, ex.err)
			continue
		}
		logger.Debug("regions extracted", logging.Int("regions", len(ex.regions)))
		if len(ex.regions) == 0 {
			logger.Info("no regions found; file skipped")
			r.result.Skipped = append(r.result.Skipped, ex.source.Path)
			continue
		}

		k, err := r.build(kitStem(ex.source), ex.source, []extraction{ex})
		if err != nil {
			r.fail(logger, ex.source.Path, err)
			continue
		}
		if err := r.write(fileCtx, logger, k); err != nil {
			r.fail(logger, ex.source.Path, err)
			continue
		}
	}

	if len(r.result.Written) == 0 && len(r.result.Failures) == 0 {
		return r.result, kiterr.Wrap(kiterr.ErrNothingToGenerate, "", "synthesize", "no regions found in any input", nil)
	}
	return r.result, nil
}

func (r *run) combined(ctx context.Context, extracted []extraction) (Result, error) {
	var withRegions []extraction
	for _, ex := range extracted {
		if ex.err != nil {
			err := ex.err
			if _, ok := kiterr.PathOf(err); !ok {
				err = kiterr.Wrap(nil, ex.source.Path, "extract regions", "", err)
			}
			r.fail(logging.WithContext(runctx.WithSource(ctx, ex.source.Path), r.logger), ex.source.Path, err)
			return r.result, fmt.Errorf("combine-all aborted: %w", err)
		}
		if len(ex.regions) == 0 {
			r.logger.Info("no regions found; file skipped", logging.String(logging.FieldSource, ex.source.Path))
			r.result.Skipped = append(r.result.Skipped, ex.source.Path)
			continue
		}
		withRegions = append(withRegions, ex)
	}
	if len(withRegions) == 0 {
		return r.result, kiterr.Wrap(kiterr.ErrNothingToGenerate, "", "synthesize", "no regions found in any input", nil)
	}

	name := strings.TrimSpace(r.opts.CombinedName)
	if name == "" {
		name = DefaultCombinedName
	}
	k, err := r.build(name, withRegions[0].source, withRegions)
	if err != nil {
		return r.result, err
	}
	if err := r.write(ctx, r.logger, k); err != nil {
		return r.result, err
	}
	return r.result, nil
}

// build maps the regions of every extraction into one kit, sharing one
// registry.
func (r *run) build(name string, first regions.SourceFile, parts []extraction) (*kit.Kit, error) {
	path, err := r.opts.Target.KitPath(name, first)
	if err != nil {
		return nil, err
	}
	key := strings.ToLower(path)
	if prev, ok := r.planned[key]; ok {
		return nil, kiterr.Wrap(kiterr.ErrWrite, first.Path, "plan kit path",
			fmt.Sprintf("%s is already produced from %s", path, prev), nil)
	}
	r.planned[key] = first.Path

	k := &kit.Kit{
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
	}
	reg := kit.NewRegistry()
	for _, part := range parts {
		ref, err := r.opts.Target.SampleRef(path, part.source)
		if err != nil {
			return nil, err
		}
		src := kit.Source{File: part.source, SamplePath: ref}
		for _, region := range part.regions {
			row, err := r.opts.Mapper.Map(reg, src, region)
			if err != nil {
				return nil, err
			}
			k.Rows = append(k.Rows, row)
		}
	}
	return k, nil
}

func (r *run) write(ctx context.Context, logger *slog.Logger, k *kit.Kit) error {
	res, err := deluge.WriteKit(k.Path, k)
	if err != nil {
		return err
	}
	samples, err := r.opts.Target.Publish(ctx, k)
	if err != nil {
		return err
	}
	r.result.Written = append(r.result.Written, WrittenKit{
		Path:      k.Path,
		Name:      k.Name,
		Rows:      len(k.Rows),
		Sources:   k.Sources(),
		Digest:    res.Digest,
		Unchanged: res.Unchanged,
		Samples:   samples,
	})
	logger.Info("kit written",
		logging.String("kit", k.Path),
		logging.Int("rows", len(k.Rows)),
		logging.Bool("unchanged", res.Unchanged),
	)
	return nil
}

func (r *run) fail(logger *slog.Logger, path string, err error) {
	if p, ok := kiterr.PathOf(err); ok && path == "" {
		path = p
	}
	r.result.Failures = append(r.result.Failures, Failure{Path: path, Err: err})
	if errors.Is(err, context.Canceled) {
		return
	}
	logging.WarnWithContext(logger, "kit generation failed", "synth_failure",
		logging.String("kind", kiterr.Kind(err)),
		logging.Error(err),
		logging.String(logging.FieldErrorHint, hintFor(err)),
	)
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, kiterr.ErrUnsupportedFormat):
		return "only RIFF/WAVE files are supported"
	case errors.Is(err, kiterr.ErrCorruptMetadata):
		return "re-export the markers from the audio editor"
	case errors.Is(err, kiterr.ErrWrite):
		return "check permissions and free space at the output location"
	default:
		return "check that the file exists and is readable"
	}
}

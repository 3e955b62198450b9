package synth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofrs/flock"

	"delugekit/internal/fileutil"
	"delugekit/internal/kit"
	"delugekit/internal/kiterr"
	"delugekit/internal/logging"
	"delugekit/internal/regions"
)

const (
	KitsDir    = "KITS"
	SamplesDir = "SAMPLES"

	lockFileName = ".delugekit.lock"
	maxKitNumber = 999
)

var kitFilePattern = regexp.MustCompile(`(?i)^KIT(\d{3})[A-Z]?\.XML$`)

// CardTarget writes kits to <Root>/KITS/KITnnn.XML and copies samples into
// the card. A relative SampleDir resolves under <Root>/SAMPLES.
type CardTarget struct {
	Root      string
	SampleDir string
	// Replace overwrites samples already present on the card.
	Replace bool
	Logger  *slog.Logger

	lock    *flock.Flock
	claimed map[string]bool
	planned map[string]string
}

// NewCardTarget checks that root looks like a card and that sampleDir
// stays inside it.
func NewCardTarget(root, sampleDir string, replace bool, logger *slog.Logger) (*CardTarget, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("open card: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("card root %s is not a directory", root)
	}
	if sampleDir == "" {
		sampleDir = KitsDir
	}
	t := &CardTarget{
		Root:      root,
		SampleDir: sampleDir,
		Replace:   replace,
		Logger:    logging.NewComponentLogger(logger, "card"),
	}
	if _, err := t.sampleDir(); err != nil {
		return nil, err
	}
	return t, nil
}

// Acquire creates KITS if needed and takes the card lock so concurrent runs
// cannot claim the same kit number.
func (t *CardTarget) Acquire(ctx context.Context) (func(), error) {
	if t.Logger == nil {
		t.Logger = logging.NewNop()
	}
	kitsDir := filepath.Join(t.Root, KitsDir)
	if err := os.MkdirAll(kitsDir, 0o755); err != nil {
		return nil, kiterr.Wrap(kiterr.ErrWrite, kitsDir, "create kits directory", "", err)
	}
	lockPath := filepath.Join(kitsDir, lockFileName)
	t.lock = flock.New(lockPath)
	ok, err := t.lock.TryLock()
	if err != nil {
		return nil, kiterr.Wrap(kiterr.ErrWrite, lockPath, "acquire card lock", "", err)
	}
	if !ok {
		return nil, kiterr.Wrap(kiterr.ErrWrite, lockPath, "acquire card lock", "another delugekit run is writing to this card", nil)
	}
	t.claimed = make(map[string]bool)
	t.planned = make(map[string]string)
	t.Logger.DebugContext(ctx, "card lock acquired", logging.String("lock", lockPath))

	// The lock file stays on the card. Unlinking it after Unlock would let a
	// waiter lock the orphaned inode while a later run locks a fresh file.
	return func() {
		if err := t.lock.Unlock(); err != nil {
			t.Logger.Warn("failed to release card lock", logging.Error(err))
		}
	}, nil
}

// KitPath returns the lowest free KITnnn.XML. The name is not used: the
// Deluge names kits by number.
func (t *CardTarget) KitPath(_ string, src regions.SourceFile) (string, error) {
	kitsDir := filepath.Join(t.Root, KitsDir)
	entries, err := os.ReadDir(kitsDir)
	if err != nil {
		return "", kiterr.Wrap(kiterr.ErrWrite, kitsDir, "list kits", "", err)
	}
	used := make(map[int]bool, len(entries))
	for _, e := range entries {
		if m := kitFilePattern.FindStringSubmatch(e.Name()); m != nil {
			n, _ := strconv.Atoi(m[1])
			used[n] = true
		}
	}
	for n := 0; n <= maxKitNumber; n++ {
		path := filepath.Join(kitsDir, fmt.Sprintf("KIT%03d%s", n, KitExtension))
		if used[n] || t.claimed[path] {
			continue
		}
		if t.claimed != nil {
			t.claimed[path] = true
		}
		return path, nil
	}
	return "", kiterr.Wrap(kiterr.ErrWrite, src.Path, "plan kit path", fmt.Sprintf("no free kit number in %s", kitsDir), nil)
}

// SampleRef returns the card-root relative path the sample will be copied
// to, which is how the firmware resolves sample references.
func (t *CardTarget) SampleRef(_ string, src regions.SourceFile) (string, error) {
	dest, err := t.destination(src)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(t.Root, dest)
	if err != nil {
		return "", kiterr.Wrap(kiterr.ErrWrite, src.Path, "plan sample path", "", err)
	}
	return filepath.ToSlash(rel), nil
}

// Publish copies the samples of k into the card. A sample already on the
// card is kept unless Replace is set.
func (t *CardTarget) Publish(ctx context.Context, k *kit.Kit) ([]SampleCopy, error) {
	var copies []SampleCopy
	for _, source := range k.Sources() {
		if err := ctx.Err(); err != nil {
			return copies, err
		}
		dest, err := t.destination(regions.SourceFile{Path: source})
		if err != nil {
			return copies, err
		}
		c := SampleCopy{Source: source, Destination: dest}

		_, statErr := os.Stat(dest)
		exists := statErr == nil
		if statErr != nil && !errors.Is(statErr, fs.ErrNotExist) {
			return copies, kiterr.Wrap(kiterr.ErrWrite, dest, "stat sample", "", statErr)
		}
		if exists && !t.Replace {
			t.Logger.InfoContext(ctx, "sample already on card", logging.String("sample", dest))
			copies = append(copies, c)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return copies, kiterr.Wrap(kiterr.ErrWrite, filepath.Dir(dest), "create sample directory", "", err)
		}
		digest, err := fileutil.CopyFileVerified(source, dest)
		if err != nil {
			return copies, kiterr.Wrap(kiterr.ErrWrite, dest, "copy sample", "", err)
		}
		c.Copied = true
		c.Replaced = exists
		c.Digest = digest
		t.Logger.InfoContext(ctx, "sample copied",
			logging.String("sample", dest),
			logging.Bool("replaced", exists),
		)
		copies = append(copies, c)
	}
	return copies, nil
}

func (t *CardTarget) sampleDir() (string, error) {
	if filepath.IsAbs(t.SampleDir) {
		rel, err := filepath.Rel(t.Root, t.SampleDir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("sample directory %s is outside the card %s", t.SampleDir, t.Root)
		}
		return filepath.Clean(t.SampleDir), nil
	}
	dir := filepath.Join(t.Root, SamplesDir, t.SampleDir)
	samplesRoot := filepath.Join(t.Root, SamplesDir)
	if rel, err := filepath.Rel(samplesRoot, dir); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("sample directory %s escapes %s", t.SampleDir, samplesRoot)
	}
	return dir, nil
}

// destination is where src lands on the card. Two different sources with
// the same file name cannot share a destination within one run. Cards are
// FAT formatted, so names differing only in case collide.
func (t *CardTarget) destination(src regions.SourceFile) (string, error) {
	dir, err := t.sampleDir()
	if err != nil {
		return "", kiterr.Wrap(kiterr.ErrWrite, src.Path, "plan sample path", "", err)
	}
	dest := filepath.Join(dir, filepath.Base(src.Path))
	if t.planned == nil {
		return dest, nil
	}
	abs, err := filepath.Abs(src.Path)
	if err != nil {
		abs = src.Path
	}
	key := strings.ToLower(dest)
	if prev, ok := t.planned[key]; ok && prev != abs {
		return "", kiterr.Wrap(kiterr.ErrWrite, src.Path, "plan sample path",
			fmt.Sprintf("%s is already used by %s", dest, prev), nil)
	}
	t.planned[key] = abs
	return dest, nil
}

package testsupport

import (
	"path/filepath"
	"testing"

	"delugekit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with defaults and a log file inside a temp
// directory, then applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.File = filepath.Join(base, "logs", "delugekit.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCard points the config at a fresh card layout under the temp dir.
func WithCard() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Card.Path = NewCard(b.t, filepath.Join(b.baseDir, "card"))
	}
}

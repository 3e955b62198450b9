package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"delugekit/internal/config"
)

func TestLoadDefaultConfigWithoutFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("DELUGEKIT_CARD", "")
	t.Setenv("DELUGEKIT_LOG_LEVEL", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "delugekit", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.CardMode() {
		t.Fatal("expected card mode off by default")
	}
	if cfg.Card.SampleDir != "KITS" {
		t.Fatalf("unexpected sample dir: %q", cfg.Card.SampleDir)
	}
	if cfg.Kit.CombinedName != "combined" || cfg.Kit.PlaybackMode != "once" {
		t.Fatalf("unexpected kit defaults: %+v", cfg.Kit)
	}
	if cfg.Naming.MaxLength != 32 || cfg.Extract.Workers != 4 {
		t.Fatalf("unexpected naming/extract defaults: %+v %+v", cfg.Naming, cfg.Extract)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "delugekit.toml")
	t.Setenv("DELUGEKIT_CARD", "")
	t.Setenv("DELUGEKIT_LOG_LEVEL", "")
	card := filepath.Join(tempDir, "card")

	type payload struct {
		Card struct {
			Path           string `toml:"path"`
			SampleDir      string `toml:"sample_dir"`
			ReplaceSamples bool   `toml:"replace_samples"`
		} `toml:"card"`
		Kit struct {
			CombinedName string `toml:"combined_name"`
			PlaybackMode string `toml:"playback_mode"`
		} `toml:"kit"`
		Extract struct {
			Workers int `toml:"workers"`
		} `toml:"extract"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Card.Path = card
	custom.Card.SampleDir = "Drums/"
	custom.Card.ReplaceSamples = true
	custom.Kit.CombinedName = " breaks "
	custom.Kit.PlaybackMode = "LOOP"
	custom.Extract.Workers = 500
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "Debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if !cfg.CardMode() || cfg.Card.Path != card {
		t.Fatalf("expected card %q, got %q", card, cfg.Card.Path)
	}
	if cfg.Card.SampleDir != "Drums" || !cfg.Card.ReplaceSamples {
		t.Fatalf("unexpected card section: %+v", cfg.Card)
	}
	if cfg.Kit.CombinedName != "breaks" || cfg.Kit.PlaybackMode != "loop" {
		t.Fatalf("unexpected kit section: %+v", cfg.Kit)
	}
	if cfg.Extract.Workers != 64 {
		t.Fatalf("expected workers clamped to 64, got %d", cfg.Extract.Workers)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging section: %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "delugekit.toml")
	if err := os.WriteFile(configPath, []byte("[kit]\nloop = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestEnvVarsFillCardAndLogLevel(t *testing.T) {
	card := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DELUGEKIT_CARD", card)
	t.Setenv("DELUGEKIT_LOG_LEVEL", "WARN")

	configPath := filepath.Join(t.TempDir(), "delugekit.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nlevel = \"debug\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Card.Path != card {
		t.Fatalf("expected card from env, got %q", cfg.Card.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level to win, got %q", cfg.Logging.Level)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "DELUGEKIT_CARD") {
		t.Fatalf("sample config missing card hint: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Kit.PlaybackMode != "once" || cfg.Naming.MaxLength != 32 {
		t.Fatalf("sample values drifted from defaults: %+v %+v", cfg.Kit, cfg.Naming)
	}

	t.Setenv("DELUGEKIT_CARD", "")
	t.Setenv("DELUGEKIT_LOG_LEVEL", "")
	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	card := t.TempDir()

	cfg := config.Default()
	cfg.Kit.PlaybackMode = "reverse"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown playback mode")
	}

	cfg = config.Default()
	cfg.Kit.CombinedName = "kits/drums"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for combined name with a path separator")
	}

	cfg = config.Default()
	cfg.Naming.MaxLength = 3
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for tiny name limit")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	cfg.Card.Path = card
	cfg.Card.SampleDir = filepath.Join(t.TempDir(), "elsewhere")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for absolute sample dir outside the card")
	}

	cfg = config.Default()
	cfg.Card.Path = card
	cfg.Card.SampleDir = filepath.Join("..", "SONGS")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for sample dir escaping SAMPLES")
	}

	cfg = config.Default()
	cfg.Card.Path = card
	cfg.Card.SampleDir = filepath.Join(card, "SAMPLES", "Drums")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("absolute sample dir inside the card should validate: %v", err)
	}
}

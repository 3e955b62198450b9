package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeCard(); err != nil {
		return err
	}
	c.normalizeKit()
	c.normalizeNaming()
	c.normalizeExtract()
	return c.normalizeLogging()
}

func (c *Config) normalizeCard() error {
	if strings.TrimSpace(c.Card.Path) == "" {
		if value, ok := os.LookupEnv(cardPathEnv); ok {
			c.Card.Path = strings.TrimSpace(value)
		}
	}
	var err error
	if c.Card.Path, err = expandPath(strings.TrimSpace(c.Card.Path)); err != nil {
		return fmt.Errorf("card.path: %w", err)
	}
	c.Card.SampleDir = strings.TrimSpace(c.Card.SampleDir)
	if c.Card.SampleDir == "" {
		c.Card.SampleDir = defaultSampleDir
	}
	if strings.HasPrefix(c.Card.SampleDir, "~") {
		if c.Card.SampleDir, err = expandPath(c.Card.SampleDir); err != nil {
			return fmt.Errorf("card.sample_dir: %w", err)
		}
	} else {
		c.Card.SampleDir = filepath.Clean(c.Card.SampleDir)
	}
	return nil
}

func (c *Config) normalizeKit() {
	c.Kit.CombinedName = strings.TrimSpace(c.Kit.CombinedName)
	if c.Kit.CombinedName == "" {
		c.Kit.CombinedName = defaultCombinedName
	}
	c.Kit.PlaybackMode = strings.ToLower(strings.TrimSpace(c.Kit.PlaybackMode))
	if c.Kit.PlaybackMode == "" {
		c.Kit.PlaybackMode = defaultPlaybackMode
	}
}

func (c *Config) normalizeNaming() {
	if c.Naming.MaxLength == 0 {
		c.Naming.MaxLength = defaultNameMaxLength
	}
}

func (c *Config) normalizeExtract() {
	if c.Extract.Workers <= 0 {
		c.Extract.Workers = defaultExtractWorkers
	}
	if c.Extract.Workers > maxExtractWorkers {
		c.Extract.Workers = maxExtractWorkers
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if value, ok := os.LookupEnv(logLevelEnv); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

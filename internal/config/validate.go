package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"delugekit/internal/kit"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateCard(); err != nil {
		return err
	}
	if err := c.validateKit(); err != nil {
		return err
	}
	if err := c.validateNaming(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateCard() error {
	if !c.CardMode() {
		return nil
	}
	if filepath.IsAbs(c.Card.SampleDir) {
		rel, err := filepath.Rel(c.Card.Path, c.Card.SampleDir)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return fmt.Errorf("card.sample_dir %q is outside the card %q", c.Card.SampleDir, c.Card.Path)
		}
		return nil
	}
	if c.Card.SampleDir == ".." || strings.HasPrefix(c.Card.SampleDir, ".."+string(filepath.Separator)) {
		return fmt.Errorf("card.sample_dir %q escapes the SAMPLES directory", c.Card.SampleDir)
	}
	return nil
}

func (c *Config) validateKit() error {
	if strings.ContainsAny(c.Kit.CombinedName, `/\`) {
		return errors.New("kit.combined_name must be a file name, not a path")
	}
	if _, err := kit.ParsePlaybackMode(c.Kit.PlaybackMode); err != nil {
		return fmt.Errorf("kit.playback_mode: %w", err)
	}
	return nil
}

func (c *Config) validateNaming() error {
	if c.Naming.MaxLength < minNameMaxLength {
		return fmt.Errorf("naming.max_length must be at least %d", minNameMaxLength)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

package config

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranslate(); err != nil {
		return err
	}
	if err := c.validateConsolidate(); err != nil {
		return err
	}
	if err := c.validateReveal(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranslate() error {
	if _, err := language.Parse(c.Translate.TargetLanguage); err != nil {
		return fmt.Errorf("translate.target_language: invalid language tag %q: %w", c.Translate.TargetLanguage, err)
	}
	if c.Translate.BatchSize > 200 {
		return errors.New("translate.batch_size must be at most 200")
	}
	if c.Translate.ContextSize > c.Translate.BatchSize {
		return errors.New("translate.context_size must not exceed translate.batch_size")
	}
	return nil
}

func (c *Config) validateConsolidate() error {
	if c.Consolidate.MaxGapMillis >= c.Consolidate.MaxDurationMillis {
		return errors.New("consolidate.max_gap_ms must be less than consolidate.max_duration_ms")
	}
	return nil
}

func (c *Config) validateReveal() error {
	if c.Reveal.ShortGraceMillis > c.Reveal.LongGraceMillis {
		return errors.New("reveal.short_grace_ms must not exceed reveal.long_grace_ms")
	}
	if c.Reveal.MinRevealFraction <= 0 || c.Reveal.MinRevealFraction > 1 {
		return errors.New("reveal.min_reveal_fraction must be in (0, 1]")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTranslate()
	c.normalizeConsolidate()
	c.normalizeReveal()
	c.normalizeRateLimit()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.SessionFile) == "" {
		c.Paths.SessionFile = defaultSessionFile
	}
	if c.Paths.SessionFile, err = expandPath(c.Paths.SessionFile); err != nil {
		return fmt.Errorf("paths.session_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeTranslate() {
	c.Translate.TargetLanguage = strings.TrimSpace(c.Translate.TargetLanguage)
	if c.Translate.TargetLanguage == "" {
		c.Translate.TargetLanguage = defaultTargetLanguage
	}
	c.Translate.Model = strings.TrimSpace(c.Translate.Model)
	if c.Translate.Model == "" {
		c.Translate.Model = defaultModel
	}
	if c.Translate.BatchSize <= 0 {
		c.Translate.BatchSize = defaultBatchSize
	}
	if c.Translate.ContextSize < 0 {
		c.Translate.ContextSize = defaultContextSize
	}
	if c.Translate.MaxRetries <= 0 {
		c.Translate.MaxRetries = defaultMaxRetries
	}
	if c.Translate.Workers <= 0 {
		c.Translate.Workers = defaultWorkers
	}
	if c.Translate.TimeoutSeconds <= 0 {
		c.Translate.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeConsolidate() {
	if c.Consolidate.MaxGapMillis <= 0 {
		c.Consolidate.MaxGapMillis = defaultMaxGapMillis
	}
	if c.Consolidate.MaxDurationMillis <= 0 {
		c.Consolidate.MaxDurationMillis = defaultMaxDurationMillis
	}
	if c.Consolidate.MaxChars <= 0 {
		c.Consolidate.MaxChars = defaultMaxChars
	}
	if strings.TrimSpace(c.Consolidate.SentenceEnders) == "" {
		c.Consolidate.SentenceEnders = defaultSentenceEnders
	}
}

func (c *Config) normalizeReveal() {
	if c.Reveal.ShortGraceMillis <= 0 {
		c.Reveal.ShortGraceMillis = defaultShortGraceMillis
	}
	if c.Reveal.LongGraceMillis <= 0 {
		c.Reveal.LongGraceMillis = defaultLongGraceMillis
	}
	if c.Reveal.MinRevealFraction <= 0 {
		c.Reveal.MinRevealFraction = defaultMinRevealFraction
	}
}

func (c *Config) normalizeRateLimit() {
	if c.RateLimit.MinIntervalMillis < 0 {
		c.RateLimit.MinIntervalMillis = defaultMinIntervalMillis
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = defaultRateWindowSeconds
	}
	if c.RateLimit.WindowBudget <= 0 {
		c.RateLimit.WindowBudget = defaultRateWindowBudget
	}
}

func (c *Config) normalizeCache() error {
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCacheFile
	}
	expanded, err := expandPath(c.Cache.Path)
	if err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	c.Cache.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

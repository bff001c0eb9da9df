package testsupport

import (
	"path/filepath"
	"testing"

	"sublate/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.SessionFile = filepath.Join(base, "chatgpt.session.json")
	cfg.Cache.Path = filepath.Join(base, "cache", "translations.db")
	cfg.Logging.Format = "json"
	cfg.Logging.Level = "debug"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithTargetLanguage overrides the target language on the test config.
func WithTargetLanguage(lang string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Translate.TargetLanguage = lang
	}
}

// WithCacheDisabled turns the translation cache off.
func WithCacheDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Cache.Enabled = false
	}
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and file location configuration.
type Paths struct {
	CacheDir    string `toml:"cache_dir"`
	LogDir      string `toml:"log_dir"`
	SessionFile string `toml:"session_file"`
}

// Translate contains translation pipeline settings.
type Translate struct {
	TargetLanguage string `toml:"target_language"`
	Model          string `toml:"model"`
	BatchSize      int    `toml:"batch_size"`
	ContextSize    int    `toml:"context_size"`
	MaxRetries     int    `toml:"max_retries"`
	Workers        int    `toml:"workers"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	SkipSameLang   bool   `toml:"skip_same_language"`
}

// Consolidate contains thresholds for merging fragmented ASR cues.
type Consolidate struct {
	MaxGapMillis      int    `toml:"max_gap_ms"`
	MaxDurationMillis int    `toml:"max_duration_ms"`
	MaxChars          int    `toml:"max_chars"`
	SentenceEnders    string `toml:"sentence_enders"`
}

// Reveal contains progressive-reveal and grace-period settings.
type Reveal struct {
	ShortGraceMillis  int     `toml:"short_grace_ms"`
	LongGraceMillis   int     `toml:"long_grace_ms"`
	MinRevealFraction float64 `toml:"min_reveal_fraction"`
}

// RateLimit contains provider request pacing settings.
type RateLimit struct {
	MinIntervalMillis int `toml:"min_interval_ms"`
	WindowSeconds     int `toml:"window_seconds"`
	WindowBudget      int `toml:"window_budget"`
}

// Cache contains the persistent translation cache settings.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sublate.
//
// Configuration sections by subsystem:
//   - Paths: cache/log directories and the session credential file
//   - Translate: target language, batching, retries, worker count
//   - Consolidate: ASR cue merge thresholds
//   - Reveal: progressive reveal timing and grace periods
//   - RateLimit: provider request pacing
//   - Cache: persistent translation cache
//   - Logging: log format and level
type Config struct {
	Paths       Paths       `toml:"paths"`
	Translate   Translate   `toml:"translate"`
	Consolidate Consolidate `toml:"consolidate"`
	Reveal      Reveal      `toml:"reveal"`
	RateLimit   RateLimit   `toml:"rate_limit"`
	Cache       Cache       `toml:"cache"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/sublate/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sublate.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the pipeline writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.CacheDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

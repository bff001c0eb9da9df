package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"log/slog"

	"sublate/internal/cache"
	"sublate/internal/config"
	"sublate/internal/logging"
	"sublate/internal/ratelimit"
	"sublate/internal/retry"
	"sublate/internal/session"
	"sublate/internal/subtitle"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolvedPath
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.New(logging.Options{
			Level:            cfg.Logging.Level,
			Format:           cfg.Logging.Format,
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
		})
	})
	return c.logger, c.loggerErr
}

// openCache opens the translation cache when enabled; a nil store disables
// caching downstream.
func (c *commandContext) openCache() (*cache.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("open translation cache: %w", err)
	}
	return store, nil
}

// loadSession loads and validates the credential file, logging a warning when
// the token is close to expiry.
func (c *commandContext) loadSession() (*session.Session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	sess, err := session.Load(cfg.Paths.SessionFile)
	if err != nil {
		return nil, err
	}
	status, err := sess.Validate(time.Now())
	if err != nil {
		return nil, err
	}
	if status.ExpiringSoon {
		if logger, logErr := c.ensureLogger(); logErr == nil {
			logger.Warn("session token expiring soon",
				logging.Duration("time_left", status.TimeLeft),
			)
		}
	}
	return sess, nil
}

func (c *commandContext) newLimiter() (*ratelimit.Limiter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	rl := cfg.RateLimit
	if rl.MinIntervalMillis <= 0 && rl.WindowBudget <= 0 {
		return nil, nil
	}
	return ratelimit.New(
		time.Duration(rl.MinIntervalMillis)*time.Millisecond,
		time.Duration(rl.WindowSeconds)*time.Second,
		rl.WindowBudget,
	), nil
}

func (c *commandContext) retryPolicy(logger *slog.Logger) retry.Policy {
	policy := retry.Default()
	if cfg, err := c.ensureConfig(); err == nil && cfg.Translate.MaxRetries > 0 {
		policy.MaxAttempts = cfg.Translate.MaxRetries
	}
	policy.Logger = logger
	return policy
}

func (c *commandContext) consolidateOptions() subtitle.ConsolidateOptions {
	cfg, err := c.ensureConfig()
	if err != nil {
		return subtitle.DefaultConsolidateOptions()
	}
	return subtitle.ConsolidateOptions{
		MaxGap:         time.Duration(cfg.Consolidate.MaxGapMillis) * time.Millisecond,
		MaxDuration:    time.Duration(cfg.Consolidate.MaxDurationMillis) * time.Millisecond,
		MaxChars:       cfg.Consolidate.MaxChars,
		SentenceEnders: cfg.Consolidate.SentenceEnders,
	}
}

func (c *commandContext) revealOptions() subtitle.RevealOptions {
	cfg, err := c.ensureConfig()
	if err != nil {
		return subtitle.DefaultRevealOptions()
	}
	return subtitle.RevealOptions{
		ShortGrace:  time.Duration(cfg.Reveal.ShortGraceMillis) * time.Millisecond,
		LongGrace:   time.Duration(cfg.Reveal.LongGraceMillis) * time.Millisecond,
		MinFraction: cfg.Reveal.MinRevealFraction,
	}
}

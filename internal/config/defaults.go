package config

const (
	defaultCacheDir            = "~/.cache/sublate"
	defaultLogDir              = "~/.local/share/sublate/logs"
	defaultSessionFile         = "~/.config/sublate/session.json"
	defaultTargetLanguage      = "zh-TW"
	defaultModel               = "gpt-5.1-codex-mini"
	defaultBatchSize           = 30
	defaultContextSize         = 2
	defaultMaxRetries          = 3
	defaultWorkers             = 2
	defaultTimeoutSeconds      = 120
	defaultMaxGapMillis        = 1200
	defaultMaxDurationMillis   = 8000
	defaultMaxChars            = 84
	defaultSentenceEnders      = ".!?…。！？"
	defaultShortGraceMillis    = 300
	defaultLongGraceMillis     = 1500
	defaultMinRevealFraction   = 0.2
	defaultMinIntervalMillis   = 250
	defaultRateWindowSeconds   = 60
	defaultRateWindowBudget    = 40
	defaultCacheFile           = "~/.cache/sublate/translations.db"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir:    defaultCacheDir,
			LogDir:      defaultLogDir,
			SessionFile: defaultSessionFile,
		},
		Translate: Translate{
			TargetLanguage: defaultTargetLanguage,
			Model:          defaultModel,
			BatchSize:      defaultBatchSize,
			ContextSize:    defaultContextSize,
			MaxRetries:     defaultMaxRetries,
			Workers:        defaultWorkers,
			TimeoutSeconds: defaultTimeoutSeconds,
			SkipSameLang:   true,
		},
		Consolidate: Consolidate{
			MaxGapMillis:      defaultMaxGapMillis,
			MaxDurationMillis: defaultMaxDurationMillis,
			MaxChars:          defaultMaxChars,
			SentenceEnders:    defaultSentenceEnders,
		},
		Reveal: Reveal{
			ShortGraceMillis:  defaultShortGraceMillis,
			LongGraceMillis:   defaultLongGraceMillis,
			MinRevealFraction: defaultMinRevealFraction,
		},
		RateLimit: RateLimit{
			MinIntervalMillis: defaultMinIntervalMillis,
			WindowSeconds:     defaultRateWindowSeconds,
			WindowBudget:      defaultRateWindowBudget,
		},
		Cache: Cache{
			Enabled: true,
			Path:    defaultCacheFile,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

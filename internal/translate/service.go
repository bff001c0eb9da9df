package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"log/slog"

	"sublate/internal/cache"
	"sublate/internal/events"
	"sublate/internal/language"
	"sublate/internal/logging"
	"sublate/internal/pool"
	"sublate/internal/ratelimit"
	"sublate/internal/retry"
	"sublate/internal/services"
	"sublate/internal/subtitle"
)

// Options control a single translation job.
type Options struct {
	TargetLanguage string
	Model          string
	BatchSize      int
	ContextSize    int
	Workers        int
	// SkipSameLanguage skips the job entirely when the document already
	// appears to be in the target language.
	SkipSameLanguage bool
}

// Stats summarizes a finished translation job.
type Stats struct {
	JobID       string
	TotalCues   int
	Translated  int
	CacheHits   int
	FailedCues  int
	Batches     int
	SkippedSame bool
	Elapsed     time.Duration
}

// JobEvent is the payload for job lifecycle topics.
type JobEvent struct {
	JobID string
	Cues  int
	Stats *Stats
	Err   error
}

// BatchEvent is the payload for batch lifecycle topics.
type BatchEvent struct {
	JobID   string
	Index   int
	Total   int
	Cues    int
	Attempt int
}

// ProgressEvent reports completed batches.
type ProgressEvent struct {
	JobID     string
	Completed int
	Total     int
}

// ServiceConfig wires the translation service's collaborators. Provider is
// required; everything else degrades gracefully when nil.
type ServiceConfig struct {
	Provider Provider
	Cache    *cache.Store
	Limiter  *ratelimit.Limiter
	Policy   retry.Policy
	Emitter  *events.Emitter
	Logger   *slog.Logger
}

// Service runs translation jobs: batching, caching, rate limiting, retries,
// and progress events around a Provider.
type Service struct {
	provider Provider
	cache    *cache.Store
	limiter  *ratelimit.Limiter
	policy   retry.Policy
	emitter  *events.Emitter
	logger   *slog.Logger
}

// NewService validates the configuration and builds a Service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Provider == nil {
		return nil, errors.New("translate: provider is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	policy := cfg.Policy
	if policy.MaxAttempts <= 0 {
		policy = retry.Default()
	}
	return &Service{
		provider: cfg.Provider,
		cache:    cfg.Cache,
		limiter:  cfg.Limiter,
		policy:   policy,
		emitter:  cfg.Emitter,
		logger:   logger,
	}, nil
}

// Translate translates the document into opts.TargetLanguage. The returned
// cues carry translations in Cue.Translated; cues whose batch failed keep an
// empty Translated so output falls back to the original text. The input slice
// is not modified.
func (s *Service) Translate(ctx context.Context, cues []subtitle.Cue, opts Options) ([]subtitle.Cue, Stats, error) {
	started := time.Now()
	jobID := services.NewRequestID()
	ctx = services.WithJobID(ctx, jobID)
	logger := s.logger.With(logging.String(logging.FieldJobID, jobID))

	stats := Stats{JobID: jobID, TotalCues: len(cues)}

	doc := make([]subtitle.Cue, len(cues))
	copy(doc, cues)

	s.emit(events.TopicJobStarted, JobEvent{JobID: jobID, Cues: len(doc)})

	if len(doc) == 0 {
		stats.Elapsed = time.Since(started)
		s.emit(events.TopicJobCompleted, JobEvent{JobID: jobID, Stats: &stats})
		return doc, stats, nil
	}

	if opts.SkipSameLanguage && documentMatchesLanguage(doc, opts.TargetLanguage) {
		logger.Info("document already in target language, skipping translation",
			logging.String("target_language", opts.TargetLanguage),
		)
		stats.SkippedSame = true
		stats.Elapsed = time.Since(started)
		s.emit(events.TopicJobCompleted, JobEvent{JobID: jobID, Stats: &stats})
		return doc, stats, nil
	}

	cached := s.applyCache(ctx, doc, opts, &stats, jobID)

	batches := CreateBatches(doc, opts.BatchSize, opts.ContextSize)
	stats.Batches = len(batches)
	logger.Info("translation job started",
		logging.Int("cues", len(doc)),
		logging.Int("batches", len(batches)),
		logging.Int("cache_hits", stats.CacheHits),
		logging.String("target_language", opts.TargetLanguage),
		logging.String("provider", s.provider.Name()),
	)

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	var completed atomic.Int64
	results, err := pool.Map(ctx, workers, batches, func(ctx context.Context, index int, batch Batch) ([]string, error) {
		translations, err := s.translateBatch(ctx, batch, opts, index, len(batches), jobID, cached)
		if err != nil {
			return nil, err
		}
		s.emit(events.TopicProgress, ProgressEvent{
			JobID:     jobID,
			Completed: int(completed.Add(1)),
			Total:     len(batches),
		})
		return translations, nil
	})
	if err != nil {
		stats.Elapsed = time.Since(started)
		s.emit(events.TopicJobFailed, JobEvent{JobID: jobID, Stats: &stats, Err: err})
		return nil, stats, err
	}

	for bi, batch := range batches {
		for i := range batch.Cues {
			pos := batch.StartIndex + i
			if cached[pos] {
				continue
			}
			translated := ""
			if results[bi] != nil && i < len(results[bi]) {
				translated = results[bi][i]
			}
			if translated == "" {
				stats.FailedCues++
				continue
			}
			doc[pos].Translated = translated
			stats.Translated++
			s.storeCache(ctx, doc[pos].Text, translated, opts)
		}
	}

	stats.Elapsed = time.Since(started)
	logger.Info("translation job completed",
		logging.Int("translated", stats.Translated),
		logging.Int("cache_hits", stats.CacheHits),
		logging.Int("failed_cues", stats.FailedCues),
		logging.Duration("elapsed", stats.Elapsed),
	)
	s.emit(events.TopicJobCompleted, JobEvent{JobID: jobID, Stats: &stats})
	return doc, stats, nil
}

// translateBatch runs one provider call with rate limiting and retries. A
// batch whose cues are fully cached short-circuits. Exhausted retries on a
// retryable error degrade to empty translations; non-retryable provider
// errors abort the job since later batches would fail the same way.
func (s *Service) translateBatch(ctx context.Context, batch Batch, opts Options, index, total int, jobID string, cached []bool) ([]string, error) {
	allCached := true
	for i := range batch.Cues {
		if !cached[batch.StartIndex+i] {
			allCached = false
			break
		}
	}
	if allCached {
		return make([]string, len(batch.Cues)), nil
	}

	ctx = services.WithBatchIndex(ctx, index)
	logger := s.logger.With(
		logging.String(logging.FieldJobID, jobID),
		logging.Int(logging.FieldBatch, index),
	)

	s.emit(events.TopicBatchStarted, BatchEvent{JobID: jobID, Index: index, Total: total, Cues: len(batch.Cues)})

	prompt := BuildPrompt(batch, opts.TargetLanguage)

	attempt := 0
	var response string
	err := s.policy.Do(ctx, fmt.Sprintf("translate batch %d", index), func(ctx context.Context) error {
		attempt++
		if attempt > 1 {
			s.emit(events.TopicBatchRetried, BatchEvent{JobID: jobID, Index: index, Total: total, Cues: len(batch.Cues), Attempt: attempt})
		}
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		var callErr error
		response, callErr = s.provider.Translate(ctx, prompt)
		if s.limiter != nil {
			s.limiter.Mark()
		}
		return callErr
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !services.IsRetryable(err) && errors.Is(err, services.ErrProvider) {
			return nil, err
		}
		logger.Error("batch translation failed, keeping original text", logging.Error(err))
		return make([]string, len(batch.Cues)), nil
	}

	translations, mismatch := ParseResponse(response, len(batch.Cues))
	if mismatch {
		logger.Warn("translation count mismatch",
			logging.Int("expected", len(batch.Cues)),
		)
	}
	s.emit(events.TopicBatchCompleted, BatchEvent{JobID: jobID, Index: index, Total: total, Cues: len(batch.Cues), Attempt: attempt})
	return translations, nil
}

// applyCache fills translations from the cache and returns a per-cue hit map.
func (s *Service) applyCache(ctx context.Context, doc []subtitle.Cue, opts Options, stats *Stats, jobID string) []bool {
	cached := make([]bool, len(doc))
	if s.cache == nil {
		return cached
	}
	for i := range doc {
		translated, ok, err := s.cache.Get(ctx, doc[i].Text, opts.TargetLanguage, opts.Model)
		if err != nil {
			s.logger.Warn("cache lookup failed", logging.Error(err))
			return cached
		}
		if ok {
			doc[i].Translated = translated
			cached[i] = true
			stats.CacheHits++
			s.emit(events.TopicCacheHit, BatchEvent{JobID: jobID, Index: i})
		}
	}
	return cached
}

func (s *Service) storeCache(ctx context.Context, sourceText, translated string, opts Options) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, sourceText, opts.TargetLanguage, opts.Model, translated); err != nil {
		s.logger.Warn("cache store failed", logging.Error(err))
	}
}

func (s *Service) emit(topic string, payload any) {
	if s.emitter != nil {
		s.emitter.Emit(topic, payload)
	}
}

// documentMatchesLanguage samples the document text and checks it against the
// target language.
func documentMatchesLanguage(doc []subtitle.Cue, targetLang string) bool {
	const sampleCues = 20
	var b strings.Builder
	for i, cue := range doc {
		if i >= sampleCues {
			break
		}
		b.WriteString(cue.Text)
		b.WriteString("\n")
	}
	return language.Matches(b.String(), targetLang)
}

package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"sublate/internal/logging"
	"sublate/internal/services"
)

// Policy controls how Do paces repeated attempts.
type Policy struct {
	// MaxAttempts is the total number of tries including the first.
	MaxAttempts int
	// InitialBackoff is the delay before the second attempt; it doubles per
	// retry up to MaxBackoff.
	InitialBackoff time.Duration
	// MaxBackoff caps the per-retry delay.
	MaxBackoff time.Duration
	// Retryable decides whether an error is worth another attempt. When nil,
	// services.IsRetryable is used.
	Retryable func(error) bool
	// Logger, when set, receives a warning per retry.
	Logger *slog.Logger
}

// Default returns the policy used by the translation pipeline when the
// configuration does not override it.
func Default() Policy {
	return Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

// Do runs op until it succeeds, the error is classified non-retryable, the
// attempt budget is exhausted, or ctx is done. The last error is returned.
func (p Policy) Do(ctx context.Context, operation string, op func(context.Context) error) error {
	if op == nil {
		return errors.New("retry: nil operation")
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = services.IsRetryable
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts || !retryable(lastErr) {
			return lastErr
		}

		backoff := p.backoffFor(attempt)
		if p.Logger != nil {
			p.Logger.Warn("operation failed, retrying",
				logging.String("operation", operation),
				logging.Int("attempt", attempt),
				logging.Int("max_attempts", attempts),
				logging.Duration("backoff", backoff),
				logging.Error(lastErr),
			)
		}
		if err := Sleep(ctx, backoff); err != nil {
			return err
		}
	}
	return lastErr
}

func (p Policy) backoffFor(attempt int) time.Duration {
	initial := p.InitialBackoff
	if initial <= 0 {
		initial = time.Second
	}
	backoff := initial
	for i := 1; i < attempt; i++ {
		// Doubling a Duration overflows once shifts get large, so stop
		// growing at the cap (or at the widest value that still doubles).
		if p.MaxBackoff > 0 && backoff >= p.MaxBackoff {
			break
		}
		if backoff > maxDuration/2 {
			backoff = maxDuration
			break
		}
		backoff *= 2
	}
	if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
		backoff = p.MaxBackoff
	}
	return backoff
}

const maxDuration = time.Duration(1<<63 - 1)

// Sleep waits for the duration or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

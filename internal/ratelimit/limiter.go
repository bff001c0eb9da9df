package ratelimit

import (
	"context"
	"sync"
	"time"

	"sublate/internal/retry"
)

// Limiter paces outbound provider calls with a minimum inter-call interval
// and a rolling window budget. Both constraints apply simultaneously.
type Limiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	window      time.Duration
	budget      int
	lastCall    time.Time
	calls       []time.Time

	now func() time.Time
}

// New constructs a limiter. A zero minInterval disables interval pacing and a
// non-positive budget disables the window constraint.
func New(minInterval, window time.Duration, budget int) *Limiter {
	return &Limiter{
		minInterval: minInterval,
		window:      window,
		budget:      budget,
		now:         time.Now,
	}
}

// Wait blocks until the next call is allowed or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	for {
		delay := l.nextDelay()
		if delay <= 0 {
			return ctx.Err()
		}
		if err := retry.Sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// Mark records that a call was made. Callers invoke it after each provider
// request regardless of outcome.
func (l *Limiter) Mark() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	l.lastCall = now
	if l.budget > 0 && l.window > 0 {
		l.calls = append(l.calls, now)
		l.prune(now)
	}
}

// nextDelay returns how long the caller must wait before the next call, or
// zero when a slot is open.
func (l *Limiter) nextDelay() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()

	var delay time.Duration
	if l.minInterval > 0 && !l.lastCall.IsZero() {
		if elapsed := now.Sub(l.lastCall); elapsed < l.minInterval {
			delay = l.minInterval - elapsed
		}
	}

	if l.budget > 0 && l.window > 0 {
		l.prune(now)
		if len(l.calls) >= l.budget {
			oldest := l.calls[0]
			if wait := oldest.Add(l.window).Sub(now); wait > delay {
				delay = wait
			}
		}
	}

	return delay
}

// prune drops call records older than the window. Callers hold l.mu.
func (l *Limiter) prune(now time.Time) {
	cutoff := now.Add(-l.window)
	idx := 0
	for idx < len(l.calls) && !l.calls[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		l.calls = append(l.calls[:0], l.calls[idx:]...)
	}
}

package sched

import (
	"sync"
	"time"
)

// Throttler admits at most one call per interval on the leading edge.
type Throttler struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time

	now func() time.Time
}

// NewThrottler constructs a throttler with the given minimum interval.
func NewThrottler(interval time.Duration) *Throttler {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Throttler{interval: interval, now: time.Now}
}

// Allow reports whether a call is admitted now, recording the admission.
func (t *Throttler) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}

// Run executes fn only if the throttle admits the call.
func (t *Throttler) Run(fn func()) bool {
	if fn == nil || !t.Allow() {
		return false
	}
	fn()
	return true
}

// Reset clears the throttle so the next call is admitted immediately.
func (t *Throttler) Reset() {
	t.mu.Lock()
	t.last = time.Time{}
	t.mu.Unlock()
}

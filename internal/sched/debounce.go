package sched

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into a single trailing-edge call.
// Each Trigger replaces any pending function and restarts the quiet timer.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	stopped bool
}

// NewDebouncer constructs a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period. A trigger arriving
// before the period elapses replaces fn and restarts the timer.
func (d *Debouncer) Trigger(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.pending = fn
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Flush runs any pending function immediately and cancels the timer.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any pending call and rejects future triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

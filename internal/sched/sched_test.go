package sched

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}

	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}
}

func TestDebouncerFlushRunsPendingImmediately(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Flush()
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1 after flush", got)
	}
	// Flush with nothing pending is a no-op.
	d.Flush()
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d after second flush", got)
	}
}

func TestDebouncerStopRejectsTriggers(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var calls atomic.Int32
	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Fatalf("calls = %d, want 0 after stop", got)
	}
}

func TestThrottlerLeadingEdge(t *testing.T) {
	now := time.Unix(100, 0)
	th := NewThrottler(time.Second)
	th.now = func() time.Time { return now }

	if !th.Allow() {
		t.Fatal("first call should be admitted")
	}
	if th.Allow() {
		t.Fatal("second immediate call should be throttled")
	}
	now = now.Add(1100 * time.Millisecond)
	if !th.Allow() {
		t.Fatal("call after interval should be admitted")
	}
}

func TestThrottlerReset(t *testing.T) {
	th := NewThrottler(time.Hour)
	if !th.Allow() {
		t.Fatal("first call should be admitted")
	}
	th.Reset()
	if !th.Allow() {
		t.Fatal("call after reset should be admitted")
	}
}

func TestThrottlerRun(t *testing.T) {
	th := NewThrottler(time.Hour)
	ran := false
	if !th.Run(func() { ran = true }) || !ran {
		t.Fatal("first Run should execute")
	}
	if th.Run(func() { t.Fatal("should not execute") }) {
		t.Fatal("second Run should be throttled")
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	if !s.ShouldEmit(0, "translate") {
		t.Fatal("first event should emit")
	}
	if s.ShouldEmit(5, "translate") {
		t.Fatal("same bucket should not emit")
	}
	if !s.ShouldEmit(12, "translate") {
		t.Fatal("new bucket should emit")
	}
	if !s.ShouldEmit(12, "consolidate") {
		t.Fatal("stage change should emit")
	}
	s.Reset()
	if !s.ShouldEmit(12, "consolidate") {
		t.Fatal("post-reset event should emit")
	}
}

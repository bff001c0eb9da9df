package events

import (
	"testing"
	"time"
)

func recvOne(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("channel closed unexpectedly")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return Event{}
}

func TestEmitDeliversToAllSubscribers(t *testing.T) {
	e := NewEmitter()
	defer e.Close()

	a := e.Subscribe()
	b := e.Subscribe()

	e.Emit(TopicProgress, 42)

	for _, ch := range []<-chan Event{a, b} {
		ev := recvOne(t, ch)
		if ev.Topic != TopicProgress {
			t.Fatalf("topic = %q", ev.Topic)
		}
		if ev.Payload.(int) != 42 {
			t.Fatalf("payload = %v", ev.Payload)
		}
	}
}

func TestSubscribeFiltersByTopic(t *testing.T) {
	e := NewEmitter()
	defer e.Close()

	ch := e.Subscribe(TopicBatchCompleted)
	e.Emit(TopicProgress, nil)
	e.Emit(TopicBatchCompleted, "batch-1")

	ev := recvOne(t, ch)
	if ev.Topic != TopicBatchCompleted {
		t.Fatalf("expected filtered topic, got %q", ev.Topic)
	}
	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra event %+v", extra)
	default:
	}
}

func TestSequenceNumbersIncrease(t *testing.T) {
	e := NewEmitter()
	defer e.Close()

	ch := e.Subscribe()
	e.Emit(TopicProgress, nil)
	e.Emit(TopicProgress, nil)

	first := recvOne(t, ch)
	second := recvOne(t, ch)
	if second.Seq <= first.Seq {
		t.Fatalf("sequence not increasing: %d then %d", first.Seq, second.Seq)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	e := NewEmitter()
	defer e.Close()

	ch := e.Subscribe()
	e.Unsubscribe(ch)
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel")
	}
	if e.SubscriberCount() != 0 {
		t.Fatalf("subscriber count = %d", e.SubscriberCount())
	}
	// Emitting after unsubscribe must not panic.
	e.Emit(TopicProgress, nil)
}

func TestCloseClosesAllAndRejectsEmit(t *testing.T) {
	e := NewEmitter()
	ch := e.Subscribe()
	e.Close()
	if _, ok := <-ch; ok {
		t.Fatal("expected closed channel after Close")
	}
	e.Emit(TopicProgress, nil) // no-op, no panic
	if sub := e.Subscribe(); sub == nil {
		t.Fatal("Subscribe after Close should return a closed channel")
	} else if _, ok := <-sub; ok {
		t.Fatal("expected closed channel from post-Close Subscribe")
	}
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	e := NewEmitter()
	defer e.Close()

	ch := e.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			e.Emit(TopicProgress, i)
		}
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked on slow subscriber")
	}
	// Buffered portion is still readable.
	recvOne(t, ch)
}

package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// Event is a single pipeline notification delivered to subscribers.
type Event struct {
	Seq       uint64
	Timestamp time.Time
	Topic     string
	Payload   any
}

// Topics used by the translation pipeline.
const (
	TopicJobStarted     = "job.started"
	TopicJobCompleted   = "job.completed"
	TopicJobFailed      = "job.failed"
	TopicBatchStarted   = "batch.started"
	TopicBatchCompleted = "batch.completed"
	TopicBatchRetried   = "batch.retried"
	TopicCacheHit       = "cache.hit"
	TopicProgress       = "progress"
)

type subscriber struct {
	ch     chan Event
	topics map[string]struct{}
}

// Emitter dispatches events to subscribers. Channels are buffered and a slow
// subscriber drops events rather than blocking emitters.
type Emitter struct {
	mu     sync.RWMutex
	subs   []*subscriber
	seq    atomic.Uint64
	closed bool
}

// NewEmitter constructs an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Subscribe returns a channel receiving events whose topic matches one of the
// given topics. With no topics, every event is delivered. The channel is
// closed by Unsubscribe or Close.
func (e *Emitter) Subscribe(topics ...string) <-chan Event {
	sub := &subscriber{ch: make(chan Event, 64)}
	if len(topics) > 0 {
		sub.topics = make(map[string]struct{}, len(topics))
		for _, t := range topics {
			sub.topics[t] = struct{}{}
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		close(sub.ch)
		return sub.ch
	}
	e.subs = append(e.subs, sub)
	return sub.ch
}

// Unsubscribe removes a subscriber channel and closes it.
func (e *Emitter) Unsubscribe(ch <-chan Event) {
	if ch == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, sub := range e.subs {
		if sub.ch == ch {
			e.subs = append(e.subs[:i], e.subs[i+1:]...)
			close(sub.ch)
			return
		}
	}
}

// Emit delivers an event to all matching subscribers. Safe for concurrent use.
func (e *Emitter) Emit(topic string, payload any) {
	event := Event{
		Seq:       e.seq.Add(1),
		Timestamp: time.Now(),
		Topic:     topic,
		Payload:   payload,
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}
	for _, sub := range e.subs {
		if sub.topics != nil {
			if _, ok := sub.topics[topic]; !ok {
				continue
			}
		}
		select {
		case sub.ch <- event:
		default: // drop when the subscriber lags
		}
	}
}

// Close shuts down the emitter and closes all subscriber channels.
func (e *Emitter) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for _, sub := range e.subs {
		close(sub.ch)
	}
	e.subs = nil
}

// SubscriberCount reports how many subscribers are attached.
func (e *Emitter) SubscriberCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}

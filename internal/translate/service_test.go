package translate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"sublate/internal/cache"
	"sublate/internal/events"
	"sublate/internal/retry"
	"sublate/internal/services"
	"sublate/internal/subtitle"
)

// scriptedProvider answers prompts by translating each numbered line with a
// marker prefix, and records calls.
type scriptedProvider struct {
	mu       sync.Mutex
	calls    int
	failures int
	failWith error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Translate(_ context.Context, prompt string) (string, error) {
	p.mu.Lock()
	p.calls++
	if p.failures > 0 {
		p.failures--
		err := p.failWith
		p.mu.Unlock()
		return "", err
	}
	p.mu.Unlock()

	var out []string
	inBody := false
	n := 0
	for _, line := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(line, "【需要翻譯的內容】") {
			inBody = true
			continue
		}
		if inBody && strings.HasPrefix(line, "【") {
			break
		}
		if !inBody {
			continue
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		n++
		text := line[strings.Index(line, ". ")+2:]
		out = append(out, fmt.Sprintf("%d. tx:%s", n, text))
	}
	return strings.Join(out, "\n"), nil
}

func docCues(texts ...string) []subtitle.Cue {
	cues := make([]subtitle.Cue, len(texts))
	for i, text := range texts {
		cues[i] = subtitle.Cue{
			Index: i + 1,
			Start: time.Duration(i) * time.Second,
			End:   time.Duration(i)*time.Second + 900*time.Millisecond,
			Text:  text,
		}
	}
	return cues
}

func testOptions() Options {
	return Options{
		TargetLanguage: "zh-TW",
		Model:          "test-model",
		BatchSize:      2,
		ContextSize:    1,
		Workers:        2,
	}
}

func TestServiceTranslatesDocument(t *testing.T) {
	provider := &scriptedProvider{}
	svc, err := NewService(ServiceConfig{Provider: provider})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	doc, stats, err := svc.Translate(context.Background(), docCues("one", "two", "three"), testOptions())
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if stats.Translated != 3 || stats.FailedCues != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Batches != 2 {
		t.Fatalf("expected 2 batches, got %d", stats.Batches)
	}
	for i, want := range []string{"tx:one", "tx:two", "tx:three"} {
		if doc[i].Translated != want {
			t.Fatalf("cue %d translated %q, want %q", i, doc[i].Translated, want)
		}
	}
}

func TestServiceLeavesInputUnchanged(t *testing.T) {
	provider := &scriptedProvider{}
	svc, _ := NewService(ServiceConfig{Provider: provider})

	input := docCues("one")
	if _, _, err := svc.Translate(context.Background(), input, testOptions()); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if input[0].Translated != "" {
		t.Fatalf("input slice was modified: %+v", input[0])
	}
}

func TestServiceRetriesTransientFailures(t *testing.T) {
	provider := &scriptedProvider{
		failures: 1,
		failWith: services.Wrap(services.ErrTransient, "translate", "test", "flaky", nil),
	}
	svc, _ := NewService(ServiceConfig{
		Provider: provider,
		Policy:   retry.Policy{MaxAttempts: 3, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond},
	})

	opts := testOptions()
	opts.BatchSize = 10
	doc, stats, err := svc.Translate(context.Background(), docCues("one", "two"), opts)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if stats.FailedCues != 0 || doc[0].Translated != "tx:one" {
		t.Fatalf("expected retry to recover: %+v / %+v", stats, doc)
	}
	if provider.calls != 2 {
		t.Fatalf("expected 2 provider calls, got %d", provider.calls)
	}
}

func TestServiceDegradesOnExhaustedRetries(t *testing.T) {
	provider := &scriptedProvider{
		failures: 10,
		failWith: services.Wrap(services.ErrTransient, "translate", "test", "always down", nil),
	}
	svc, _ := NewService(ServiceConfig{
		Provider: provider,
		Policy:   retry.Policy{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond},
	})

	opts := testOptions()
	opts.BatchSize = 10
	doc, stats, err := svc.Translate(context.Background(), docCues("one", "two"), opts)
	if err != nil {
		t.Fatalf("expected degraded success, got %v", err)
	}
	if stats.FailedCues != 2 {
		t.Fatalf("expected 2 failed cues, got %+v", stats)
	}
	if doc[0].Translated != "" || doc[0].DisplayText() != "one" {
		t.Fatalf("failed cue should fall back to original text: %+v", doc[0])
	}
}

func TestServiceAbortsOnProviderError(t *testing.T) {
	provider := &scriptedProvider{
		failures: 10,
		failWith: services.Wrap(services.ErrProvider, "translate", "test", "bad credentials", nil),
	}
	svc, _ := NewService(ServiceConfig{
		Provider: provider,
		Policy:   retry.Policy{MaxAttempts: 2, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond},
	})

	_, _, err := svc.Translate(context.Background(), docCues("one", "two"), testOptions())
	if !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error to abort the job, got %v", err)
	}
}

func TestServiceUsesCache(t *testing.T) {
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	defer store.Close()

	provider := &scriptedProvider{}
	svc, _ := NewService(ServiceConfig{Provider: provider, Cache: store})

	opts := testOptions()
	opts.BatchSize = 10

	if _, _, err := svc.Translate(context.Background(), docCues("one", "two"), opts); err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstCalls := provider.calls

	doc, stats, err := svc.Translate(context.Background(), docCues("one", "two"), opts)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if stats.CacheHits != 2 {
		t.Fatalf("expected 2 cache hits, got %+v", stats)
	}
	if provider.calls != firstCalls {
		t.Fatalf("expected no provider calls on fully cached run, got %d extra", provider.calls-firstCalls)
	}
	if doc[0].Translated != "tx:one" {
		t.Fatalf("cached translation missing: %+v", doc[0])
	}
}

func TestServiceSkipsMatchingLanguage(t *testing.T) {
	provider := &scriptedProvider{}
	svc, _ := NewService(ServiceConfig{Provider: provider})

	opts := testOptions()
	opts.SkipSameLanguage = true
	opts.TargetLanguage = "en"

	doc := docCues(
		"This is clearly an English sentence with plenty of words.",
		"Another English sentence follows here for good measure.",
		"And a third one to give the detector enough material.",
	)
	_, stats, err := svc.Translate(context.Background(), doc, opts)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !stats.SkippedSame {
		t.Fatal("expected same-language skip")
	}
	if provider.calls != 0 {
		t.Fatalf("expected no provider calls, got %d", provider.calls)
	}
}

func TestServiceEmitsLifecycleEvents(t *testing.T) {
	emitter := events.NewEmitter()
	defer emitter.Close()
	ch := emitter.Subscribe(events.TopicJobStarted, events.TopicJobCompleted, events.TopicBatchCompleted)

	provider := &scriptedProvider{}
	svc, _ := NewService(ServiceConfig{Provider: provider, Emitter: emitter})

	opts := testOptions()
	opts.BatchSize = 10
	if _, _, err := svc.Translate(context.Background(), docCues("one"), opts); err != nil {
		t.Fatalf("Translate: %v", err)
	}

	topics := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(topics) < 3 {
		select {
		case ev := <-ch:
			topics[ev.Topic] = true
		case <-timeout:
			t.Fatalf("timed out waiting for events, saw %v", topics)
		}
	}
}

func TestServiceEmptyDocument(t *testing.T) {
	svc, _ := NewService(ServiceConfig{Provider: &scriptedProvider{}})
	doc, stats, err := svc.Translate(context.Background(), nil, testOptions())
	if err != nil || len(doc) != 0 || stats.TotalCues != 0 {
		t.Fatalf("unexpected result: %v %+v %+v", err, doc, stats)
	}
}

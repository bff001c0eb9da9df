package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap(ErrProvider, "translate", "send batch", "request failed", inner)
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider marker, got %v", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
	if !strings.Contains(err.Error(), "translate: send batch: request failed") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected generic detail, got %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", Wrap(ErrTimeout, "session", "refresh", "", nil), true},
		{"rate limited", Wrap(ErrRateLimited, "translate", "send", "", nil), true},
		{"transient", Wrap(ErrTransient, "cache", "open", "", nil), true},
		{"validation", Wrap(ErrValidation, "subtitle", "parse", "", nil), false},
		{"configuration", Wrap(ErrConfiguration, "config", "load", "", nil), false},
		{"not found", Wrap(ErrNotFound, "session", "load", "", nil), false},
		{"untagged", errors.New("plain"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsRetryable(tc.err); got != tc.want {
				t.Fatalf("IsRetryable(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestContextCarriers(t *testing.T) {
	ctx := t.Context()
	ctx = WithJobID(ctx, "job-1")
	ctx = WithStage(ctx, "consolidate")
	ctx = WithBatchIndex(ctx, 3)
	ctx = WithRequestID(ctx, "req-9")

	if id, ok := JobIDFromContext(ctx); !ok || id != "job-1" {
		t.Fatalf("job id = %q, %v", id, ok)
	}
	if stage, ok := StageFromContext(ctx); !ok || stage != "consolidate" {
		t.Fatalf("stage = %q, %v", stage, ok)
	}
	if idx, ok := BatchIndexFromContext(ctx); !ok || idx != 3 {
		t.Fatalf("batch index = %d, %v", idx, ok)
	}
	if rid, ok := RequestIDFromContext(ctx); !ok || rid != "req-9" {
		t.Fatalf("request id = %q, %v", rid, ok)
	}
}

func TestContextCarriersIgnoreEmpty(t *testing.T) {
	ctx := t.Context()
	if next := WithJobID(ctx, ""); next != ctx {
		t.Fatal("empty job id should not annotate context")
	}
	if _, ok := StageFromContext(ctx); ok {
		t.Fatal("expected no stage on bare context")
	}
}

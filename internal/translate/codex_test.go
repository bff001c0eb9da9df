package translate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sublate/internal/services"
)

func newTestCodex(t *testing.T, handler http.HandlerFunc) *Codex {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider, err := NewCodex(CodexConfig{
		AccessToken: "test-token",
		AccountID:   "acct-1",
		Model:       "test-model",
		BaseURL:     server.URL,
		HTTPClient:  server.Client(),
	})
	if err != nil {
		t.Fatalf("NewCodex: %v", err)
	}
	return provider
}

func TestCodexTranslateAssemblesDeltas(t *testing.T) {
	provider := newTestCodex(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("ChatGPT-Account-Id"); got != "acct-1" {
			t.Errorf("ChatGPT-Account-Id = %q", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(
			"data: {\"type\":\"response.created\"}\n\n" +
				"data: {\"type\":\"response.output_text.delta\",\"delta\":\"1. 你\"}\n\n" +
				"data: {\"type\":\"response.output_text.delta\",\"delta\":\"好\"}\n\n" +
				"data: [DONE]\n",
		))
	})

	text, err := provider.Translate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if text != "1. 你好" {
		t.Fatalf("Translate = %q", text)
	}
}

func TestCodexTranslateErrorEvent(t *testing.T) {
	provider := newTestCodex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data: {\"type\":\"error\",\"message\":\"model overloaded\"}\n"))
	})

	_, err := provider.Translate(context.Background(), "prompt")
	if !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestCodexTranslateEmptyStream(t *testing.T) {
	provider := newTestCodex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("data: [DONE]\n"))
	})

	_, err := provider.Translate(context.Background(), "prompt")
	if !errors.Is(err, services.ErrProvider) {
		t.Fatalf("expected provider error for empty stream, got %v", err)
	}
}

func TestCodexTranslateStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		marker error
	}{
		{http.StatusTooManyRequests, services.ErrRateLimited},
		{http.StatusBadGateway, services.ErrTransient},
		{http.StatusUnauthorized, services.ErrProvider},
	}

	for _, tc := range cases {
		provider := newTestCodex(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tc.status)
		})
		_, err := provider.Translate(context.Background(), "prompt")
		if !errors.Is(err, tc.marker) {
			t.Errorf("status %d: expected %v classification, got %v", tc.status, tc.marker, err)
		}
	}
}

func TestNewCodexValidation(t *testing.T) {
	if _, err := NewCodex(CodexConfig{Model: "m"}); err == nil {
		t.Fatal("expected error without access token")
	}
	if _, err := NewCodex(CodexConfig{AccessToken: "t"}); err == nil {
		t.Fatal("expected error without model")
	}
}

package translate

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sublate/internal/services"
)

const (
	defaultCodexBaseURL = "https://chatgpt.com/backend-api/codex/responses"
	defaultHTTPTimeout  = 120 * time.Second

	codexInstructions = "You are a professional subtitle translator. Translate accurately and naturally."
)

// CodexConfig describes the Codex provider configuration.
type CodexConfig struct {
	AccessToken string
	AccountID   string
	Model       string
	BaseURL     string
	HTTPClient  *http.Client
}

// Codex calls the ChatGPT Codex responses endpoint with an OAuth access
// token. The endpoint only answers streaming requests, so responses are
// consumed as server-sent events.
type Codex struct {
	accessToken string
	accountID   string
	model       string
	baseURL     string
	http        *http.Client
}

// NewCodex creates a Codex provider from the supplied configuration.
func NewCodex(cfg CodexConfig) (*Codex, error) {
	token := strings.TrimSpace(cfg.AccessToken)
	if token == "" {
		return nil, errors.New("codex: access token is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, errors.New("codex: model is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultCodexBaseURL
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &Codex{
		accessToken: token,
		accountID:   strings.TrimSpace(cfg.AccountID),
		model:       model,
		baseURL:     baseURL,
		http:        client,
	}, nil
}

// Name identifies the provider in logs and events.
func (c *Codex) Name() string {
	return "codex"
}

type codexMessageContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type codexMessage struct {
	Type    string                `json:"type"`
	Role    string                `json:"role"`
	Content []codexMessageContent `json:"content"`
}

type codexRequest struct {
	Model        string         `json:"model"`
	Instructions string         `json:"instructions"`
	Input        []codexMessage `json:"input"`
	Stream       bool           `json:"stream"`
	Store        bool           `json:"store"`
}

type codexEvent struct {
	Type    string `json:"type"`
	Delta   string `json:"delta"`
	Message string `json:"message"`
}

// Translate sends the prompt and assembles the streamed output text.
func (c *Codex) Translate(ctx context.Context, prompt string) (string, error) {
	payload := codexRequest{
		Model:        c.model,
		Instructions: codexInstructions,
		Input: []codexMessage{{
			Type:    "message",
			Role:    "user",
			Content: []codexMessageContent{{Type: "input_text", Text: prompt}},
		}},
		Stream: true,
		Store:  false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("codex: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("codex: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if c.accountID != "" {
		req.Header.Set("ChatGPT-Account-Id", c.accountID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "translate", "codex request", "request timed out", err)
		}
		return "", services.Wrap(services.ErrTransient, "translate", "codex request", "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", classifyStatus(resp)
	}

	text, err := collectStreamText(resp.Body)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", services.Wrap(services.ErrProvider, "translate", "codex response", "empty response from provider", nil)
	}
	return text, nil
}

func classifyStatus(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := strings.TrimSpace(string(snippet))
	message := fmt.Sprintf("provider returned %s: %s", resp.Status, detail)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return services.Wrap(services.ErrRateLimited, "translate", "codex request", message, nil)
	case resp.StatusCode >= 500:
		return services.Wrap(services.ErrTransient, "translate", "codex request", message, nil)
	default:
		return services.Wrap(services.ErrProvider, "translate", "codex request", message, nil)
	}
}

// collectStreamText concatenates output_text deltas from an SSE stream.
func collectStreamText(r io.Reader) (string, error) {
	var text strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var event codexEvent
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			continue
		}
		switch event.Type {
		case "response.output_text.delta":
			text.WriteString(event.Delta)
		case "error":
			message := event.Message
			if message == "" {
				message = data
			}
			return "", services.Wrap(services.ErrProvider, "translate", "codex stream", message, nil)
		}
	}
	if err := scanner.Err(); err != nil {
		return "", services.Wrap(services.ErrTransient, "translate", "codex stream", "stream read failed", err)
	}

	return strings.TrimSpace(text.String()), nil
}

// Package assistant talks to the external text-completion service that
// powers the in-app career assistant.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"whitekola/internal/domain/chat"
)

// DefaultEndpoint is used when no endpoint is configured.
const DefaultEndpoint = "https://toolkit.rork.com/text/llm/"

// Completer produces an assistant reply for a conversation transcript.
type Completer interface {
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}

// HTTPCompleter calls the completion endpoint over HTTP. The endpoint takes
// the full transcript and returns a single completion string.
type HTTPCompleter struct {
	endpoint string
	client   *http.Client
}

func NewHTTPCompleter(endpoint string, timeout time.Duration) *HTTPCompleter {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPCompleter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Messages []wireMessage `json:"messages"`
}

type completionResponse struct {
	Completion string `json:"completion"`
}

func (c *HTTPCompleter) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("completer is not initialized")
	}

	req := completionRequest{Messages: make([]wireMessage, 0, len(messages))}
	for _, m := range messages {
		req.Messages = append(req.Messages, wireMessage{Role: string(m.Role), Content: m.Content})
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call completion endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completion endpoint returned %d", resp.StatusCode)
	}

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if out.Completion == "" {
		return "", fmt.Errorf("completion endpoint returned an empty completion")
	}
	return out.Completion, nil
}

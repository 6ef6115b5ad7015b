package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/moodjournal/mood-api/internal/pkg/httpretry"
)

// ErrNoAPIKey is returned by ChatClient when no bearer token is configured.
var ErrNoAPIKey = errors.New("no API key configured")

const systemPrompt = "You are an empathetic assistant inside a personal mood journal app. Keep answers short, kind and practical."

// ChatClient calls an OpenAI-compatible chat completions endpoint.
type ChatClient struct {
	endpoint string
	apiKey   string
	referer  string
	title    string
	http     httpretry.HTTPDoer
}

// NewChatClient creates a client for endpoint (the full .../chat/completions URL).
func NewChatClient(endpoint, apiKey string, doer httpretry.HTTPDoer) *ChatClient {
	if doer == nil {
		doer = httpretry.NewRetryClient(nil, 0)
	}
	return &ChatClient{endpoint: endpoint, apiKey: apiKey, http: doer}
}

// WithAttribution sets the optional HTTP-Referer / X-Title headers some
// gateways use to attribute traffic.
func (c *ChatClient) WithAttribution(referer, title string) *ChatClient {
	c.referer = referer
	c.title = title
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat request and returns choices[0].message.content.
// Anything other than HTTP 200 with non-empty content is an error.
func (c *ChatClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat endpoint error (status %d): %s", resp.StatusCode, truncate(string(respBody), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no choices in chat response")
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty content in chat response")
	}
	return content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

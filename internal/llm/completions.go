package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"vtt-release/internal/config"
	"vtt-release/internal/prompt"
)

// Completions is a minimal HTTP client for an OpenAI-style /v1/completions
// endpoint, as served by Ollama.
type Completions struct {
	endpoint    string
	model       string
	apiKey      string
	instruction string
	temperature float32
	maxTokens   int
	httpClient  *http.Client
}

// NewCompletions builds a client. A zero cfg.Timeout leaves the request
// unbounded.
func NewCompletions(cfg config.SummarizerConfig) *Completions {
	return &Completions{
		endpoint:    cfg.Endpoint,
		model:       cfg.Model,
		apiKey:      cfg.APIKey,
		instruction: cfg.Instruction,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

// Summarize sends the prompt and returns the first choice's trimmed text.
func (c *Completions) Summarize(ctx context.Context, messages []string) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoMessages
	}

	body, err := json.Marshal(completionRequest{
		Model:       c.model,
		Prompt:      prompt.BuildSummaryPrompt(c.instruction, messages),
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("completion endpoint responded with status %s", resp.Status)
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion endpoint returned no choices")
	}

	text := strings.TrimSpace(parsed.Choices[0].Text)
	if text == "" {
		return "", ErrEmptySummary
	}
	return text, nil
}

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"vtt-release/internal/config"
	"vtt-release/internal/prompt"
)

// placeholderKey satisfies OpenAI-compatible servers that ignore auth.
const placeholderKey = "ollama"

// Chat sends the same prompt through an OpenAI-compatible chat model.
type Chat struct {
	model       model.BaseChatModel
	instruction string
}

// NewChat points an eino OpenAI chat model at the configured server. The
// endpoint may be given as the completions URL; its base is derived.
func NewChat(ctx context.Context, cfg config.SummarizerConfig) (*Chat, error) {
	key := cfg.APIKey
	if key == "" {
		key = placeholderKey
	}
	maxTokens := cfg.MaxTokens
	temperature := cfg.Temperature

	m, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      key,
		BaseURL:     baseURL(cfg.Endpoint),
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}
	return &Chat{model: m, instruction: cfg.Instruction}, nil
}

func (c *Chat) Summarize(ctx context.Context, messages []string) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoMessages
	}

	out, err := c.model.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt.BuildSummaryPrompt(c.instruction, messages)),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if out == nil {
		return "", ErrEmptySummary
	}

	text := strings.TrimSpace(out.Content)
	if text == "" {
		return "", ErrEmptySummary
	}
	return text, nil
}

func baseURL(endpoint string) string {
	base := strings.TrimRight(endpoint, "/")
	base = strings.TrimSuffix(base, "/completions")
	base = strings.TrimSuffix(base, "/chat")
	return base
}

// Package llm talks to the local text-generation server that turns commit
// subjects into a release summary.
package llm

import (
	"context"
	"errors"
	"fmt"

	"vtt-release/internal/config"
)

// Summarizer condenses commit messages into prose. Implementations make a
// single attempt; callers own any fallback.
type Summarizer interface {
	Summarize(ctx context.Context, messages []string) (string, error)
}

var (
	// ErrNoMessages is returned when there is nothing to summarize.
	ErrNoMessages = errors.New("no commit messages to summarize")
	// ErrDisabled is returned by the "none" backend.
	ErrDisabled = errors.New("summarizer disabled")
	// ErrEmptySummary is returned when the model answers with blank text.
	ErrEmptySummary = errors.New("model returned an empty summary")
)

// New builds the summarizer selected by cfg.Backend.
func New(ctx context.Context, cfg config.SummarizerConfig) (Summarizer, error) {
	switch cfg.Backend {
	case "", "completions":
		return NewCompletions(cfg), nil
	case "chat":
		return NewChat(ctx, cfg)
	case "none":
		return Disabled{}, nil
	}
	return nil, fmt.Errorf("unknown summarizer backend %q", cfg.Backend)
}

// Disabled never summarizes, which forces the bullet-list notes.
type Disabled struct{}

func (Disabled) Summarize(context.Context, []string) (string, error) {
	return "", ErrDisabled
}

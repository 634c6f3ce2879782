// Package notes turns commit history into Markdown release notes. A model
// summary is attempted once; any failure falls back to a bullet list built
// from the commit subjects.
package notes

import (
	"context"
	"regexp"
	"strings"

	"vtt-release/internal/llm"
	"vtt-release/internal/logging"
	"vtt-release/internal/model"
	"vtt-release/internal/vcs"
)

const (
	// NoChanges is returned when the range has no relevant commits.
	NoChanges = "## Release Notes\n\nNo significant changes in this release."

	summaryHeading = "## Release Notes"
	changesHeading = "## What's Changed"

	// DefaultReleasePrefix marks the commits the release tool itself creates.
	DefaultReleasePrefix = "Release v"
)

// Generator produces release notes for a commit range.
type Generator struct {
	History    vcs.History
	Summarizer llm.Summarizer
	Log        logging.Logger
	// Limit caps history when the range has no starting ref.
	Limit int
	// ReleasePrefix overrides DefaultReleasePrefix.
	ReleasePrefix string
}

// Generate always returns non-empty Markdown.
func (g Generator) Generate(ctx context.Context, r model.Range) string {
	log := g.Log
	if log == nil {
		log = logging.Discard()
	}

	subjects, err := g.History.Subjects(ctx, r, g.Limit)
	if err != nil {
		log.Error("read commit history", "range", r.String(), "err", err)
		log.Info("falling back to generating release notes from commit messages")
		return Bulletize(nil)
	}

	messages := FilterReleaseCommits(subjects, g.prefix())
	if len(messages) == 0 {
		log.Info("no new commits found since the last tag", "range", r.String())
		return NoChanges
	}
	log.Debug("collected commit messages", "count", len(messages), "range", r.String())

	if g.Summarizer != nil {
		summary, err := g.Summarizer.Summarize(ctx, messages)
		if err == nil {
			summary = sanitizeSummary(summary)
		}
		switch {
		case err != nil:
			log.Warn("summarizer failed", "err", err)
		case summary == "":
			log.Warn("summarizer did not return a valid summary")
		default:
			log.Info("release notes generated by summarizer")
			return summaryHeading + "\n\n" + summary
		}
	}

	log.Info("falling back to generating release notes from commit messages")
	return Bulletize(messages)
}

func (g Generator) prefix() string {
	if g.ReleasePrefix == "" {
		return DefaultReleasePrefix
	}
	return g.ReleasePrefix
}

// FilterReleaseCommits drops the commits a previous release created.
func FilterReleaseCommits(subjects []string, prefix string) []string {
	var filtered []string
	for _, s := range subjects {
		if strings.HasPrefix(s, prefix) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// Bulletize renders one "- " bullet per message in input order.
func Bulletize(messages []string) string {
	if len(messages) == 0 {
		return NoChanges
	}
	var b strings.Builder
	b.WriteString(changesHeading)
	b.WriteString("\n")
	for _, m := range messages {
		b.WriteString("\n- ")
		b.WriteString(m)
	}
	return b.String()
}

var (
	fencePattern   = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n(.*?)\\n?```$")
	headingPattern = regexp.MustCompile(`(?i)^#{1,6}\s*release notes\s*(\n+|$)`)
)

// sanitizeSummary unwraps code fences and drops a leading "Release Notes"
// heading, since Generate adds its own.
func sanitizeSummary(s string) string {
	s = strings.TrimSpace(s)
	if m := fencePattern.FindStringSubmatch(s); len(m) > 1 {
		s = strings.TrimSpace(m[1])
	}
	s = headingPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

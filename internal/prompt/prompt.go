package prompt

import (
	"strings"
)

// DefaultInstruction heads the prompt when none is configured.
const DefaultInstruction = "Summarize the following commit messages in a concise paragraph:"

// BuildSummaryPrompt formats commit subjects for the summarization model:
// the instruction, a blank line, then one subject per line.
func BuildSummaryPrompt(instruction string, messages []string) string {
	var b strings.Builder
	b.WriteString(valueOr(instruction, DefaultInstruction))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(messages, "\n"))
	return b.String()
}

func valueOr(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"vtt-release/internal/model"
)

// GitHub publishes releases through the GitHub CLI.
type GitHub struct {
	RepoPath string
	// Bin overrides the gh executable; defaults to "gh".
	Bin string
}

// Create runs `gh release create` with the notes file and returns whatever
// gh printed on success (normally the release URL).
func (g GitHub) Create(ctx context.Context, rel model.Release) (string, error) {
	if rel.Tag == "" || rel.NotesPath == "" {
		return "", errors.New("release needs a tag and a notes file")
	}

	// gh runs inside RepoPath; a relative notes path is meant relative to us.
	notesPath, err := filepath.Abs(rel.NotesPath)
	if err != nil {
		return "", fmt.Errorf("resolve notes file: %w", err)
	}
	rel.NotesPath = notesPath

	bin := g.Bin
	if bin == "" {
		bin = "gh"
	}
	cmd := exec.CommandContext(ctx, bin, createArgs(rel)...)
	cmd.Dir = g.RepoPath
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("gh release create %s: %w: %s", rel.Tag, err, msg)
		}
		return "", fmt.Errorf("gh release create %s: %w", rel.Tag, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func createArgs(rel model.Release) []string {
	return []string{
		"release", "create", rel.Tag,
		"--title", rel.Title,
		"--notes-file", rel.NotesPath,
	}
}

package gitlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"vtt-release/internal/model"
	"vtt-release/internal/vcs"
)

// Collector wraps git operations by shelling out to the git binary.
type Collector struct {
	RepoPath string
	// Bin overrides the git executable; defaults to "git".
	Bin string
}

var _ vcs.Repository = Collector{}

// Subjects lists commit subjects for a ref range, newest first.
func (c Collector) Subjects(ctx context.Context, r model.Range, limit int) ([]string, error) {
	out, err := c.run(ctx, logArgs(r, limit)...)
	if err != nil {
		return nil, err
	}
	return parseSubjects(out), nil
}

// LatestTag runs git describe for the closest tag, skipping exclude.
func (c Collector) LatestTag(ctx context.Context, exclude string) (string, error) {
	out, err := c.run(ctx, describeArgs(exclude)...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %v", vcs.ErrNoTag, err)
		}
		return "", err
	}
	tag := strings.TrimSpace(string(out))
	if tag == "" {
		return "", vcs.ErrNoTag
	}
	return tag, nil
}

func (c Collector) AddAll(ctx context.Context) error {
	_, err := c.run(ctx, "add", ".")
	return err
}

func (c Collector) Commit(ctx context.Context, message string) error {
	_, err := c.run(ctx, "commit", "-m", message)
	return err
}

func (c Collector) Tag(ctx context.Context, name, message string) error {
	_, err := c.run(ctx, "tag", "-a", name, "-m", message)
	return err
}

func (c Collector) Push(ctx context.Context, remote, ref string) error {
	_, err := c.run(ctx, "push", remote, ref)
	return err
}

func (c Collector) run(ctx context.Context, args ...string) ([]byte, error) {
	bin := c.Bin
	if bin == "" {
		bin = "git"
	}
	full := args
	if c.RepoPath != "" {
		full = append([]string{"-C", c.RepoPath}, args...)
	}

	cmd := exec.CommandContext(ctx, bin, full...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return out, nil
}

func logArgs(r model.Range, limit int) []string {
	args := []string{"log", "--pretty=format:%s"}
	if r.From != "" {
		return append(args, r.String())
	}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	return append(args, r.Head())
}

func describeArgs(exclude string) []string {
	args := []string{"describe", "--tags", "--abbrev=0"}
	if exclude != "" {
		args = append(args, "--exclude", exclude)
	}
	return args
}

func parseSubjects(out []byte) []string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	var subjects []string
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			subjects = append(subjects, s)
		}
	}
	return subjects
}

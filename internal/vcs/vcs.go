// Package vcs declares the source-control operations a release needs.
// Implementations live in gitlog (git subprocesses) and gitnative (go-git).
package vcs

import (
	"context"
	"errors"

	"vtt-release/internal/model"
)

// ErrNoTag reports that no tag is reachable from HEAD.
var ErrNoTag = errors.New("no previous tag found")

// History reads commit subjects. It is all note generation needs.
type History interface {
	// Subjects returns commit subjects in the range, newest first. When the
	// range has no From, at most limit commits are returned.
	Subjects(ctx context.Context, r model.Range, limit int) ([]string, error)
}

// Repository is the full set of operations a release performs.
type Repository interface {
	History
	// LatestTag returns the nearest tag reachable from HEAD, ignoring exclude.
	LatestTag(ctx context.Context, exclude string) (string, error)
	// AddAll stages every working-tree change.
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string) error
	// Tag creates an annotated tag on HEAD.
	Tag(ctx context.Context, name, message string) error
	// Push sends a branch or tag to the named remote.
	Push(ctx context.Context, remote, ref string) error
}

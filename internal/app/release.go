package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vtt-release/internal/config"
	"vtt-release/internal/logging"
	"vtt-release/internal/manifest"
	"vtt-release/internal/model"
	"vtt-release/internal/notes"
	"vtt-release/internal/vcs"
	"vtt-release/internal/version"
)

// NoteWriter produces release notes for a range.
type NoteWriter interface {
	Generate(ctx context.Context, r model.Range) string
}

// Publisher creates the hosted release.
type Publisher interface {
	Create(ctx context.Context, rel model.Release) (string, error)
}

// App holds every collaborator a release needs. Nothing is global.
type App struct {
	Config    config.Config
	RepoPath  string
	Repo      vcs.Repository
	Notes     NoteWriter
	Publisher Publisher
	Log       logging.Logger
	// Out receives operator-facing messages.
	Out io.Writer
}

// ReleaseOptions are the inputs of one release run.
type ReleaseOptions struct {
	Bump   string
	DryRun bool
}

// Release bumps the version, commits, tags and pushes, then publishes notes.
// Steps run strictly in order. Nothing is rolled back: once the push
// succeeds, a failed publish is reported and left for the operator.
func (a *App) Release(ctx context.Context, opts ReleaseOptions) (string, error) {
	kind, err := version.ParseKind(opts.Bump)
	if err != nil {
		return "", err
	}

	docs, err := manifest.LoadSet(a.path(a.Config.PackageFile), a.path(a.Config.ModuleFile))
	if err != nil {
		return "", err
	}

	current := docs.Version()
	next, fellBack, err := version.Next(current, kind)
	if err != nil {
		return "", err
	}
	if fellBack {
		a.log().Warn(fmt.Sprintf("invalid version format %q, using %s as base", current, version.Fallback), "file", docs.Package.Path)
	}
	tag := model.TagFor(next)

	if opts.DryRun {
		a.printf("Next version would be %s (tag %s); dry run, nothing written\n", next, tag)
		return next, nil
	}

	if err := docs.WriteVersion(next); err != nil {
		return "", err
	}
	a.log().Info("updated version", "from", current, "to", next)

	if err := a.commitAndTag(ctx, next, tag); err != nil {
		return "", err
	}

	rng := model.Range{}
	previous, err := a.Repo.LatestTag(ctx, tag)
	switch {
	case errors.Is(err, vcs.ErrNoTag):
		a.log().Info("no previous tag found")
	case err != nil:
		a.log().Warn("could not determine previous tag", "err", err)
	default:
		rng.From = previous
		a.log().Debug("previous tag", "tag", previous)
	}

	body := a.Notes.Generate(ctx, rng)

	notesPath := a.path(a.Config.NotesFile)
	if err := os.WriteFile(notesPath, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write release notes: %w", err)
	}

	rel := model.Release{
		Version:     next,
		Tag:         tag,
		Title:       fmt.Sprintf(a.Config.Publish.TitleFormat, next),
		PreviousTag: previous,
		NotesPath:   notesPath,
	}
	if url, err := a.Publisher.Create(ctx, rel); err != nil {
		a.log().Error("create release", "tag", tag, "err", err)
		a.printf("Could not create the release for %s. You may need to install GitHub CLI (gh) or authenticate it.\n", tag)
		a.printManualPublish(rel, body)
	} else {
		a.printf("GitHub release created for %s %s\n", tag, url)
	}

	if err := os.Remove(notesPath); err != nil {
		a.log().Error("remove temporary release notes file", "path", notesPath, "err", err)
	}

	a.printf("Released version %s\n", next)
	return next, nil
}

func (a *App) commitAndTag(ctx context.Context, next, tag string) error {
	if err := a.Repo.AddAll(ctx); err != nil {
		return err
	}
	if err := a.Repo.Commit(ctx, a.releaseCommitMessage(next)); err != nil {
		return err
	}
	if err := a.Repo.Tag(ctx, tag, "Release version "+next); err != nil {
		return err
	}
	if err := a.Repo.Push(ctx, a.Config.Remote, a.Config.Branch); err != nil {
		return err
	}
	if err := a.Repo.Push(ctx, a.Config.Remote, tag); err != nil {
		return err
	}
	a.log().Info("pushed release commit and tag", "remote", a.Config.Remote, "branch", a.Config.Branch, "tag", tag)
	return nil
}

// releaseCommitMessage starts with the prefix the notes generator drops, so
// the tool's own commits never show up in later notes.
func (a *App) releaseCommitMessage(next string) string {
	prefix := a.Config.Git.ReleasePrefix
	if prefix == "" {
		prefix = notes.DefaultReleasePrefix
	}
	return prefix + next
}

// printManualPublish tells the operator how to finish a release whose notes
// file is about to be removed.
func (a *App) printManualPublish(rel model.Release, text string) {
	file := a.Config.NotesFile
	if rel.PreviousTag != "" {
		a.printf("Publish manually from %s with:\n", a.RepoPath)
		a.printf("  release notes --from-tag %s --to-tag %s -o %s\n", rel.PreviousTag, rel.Tag, file)
		a.printf("  gh release create %s --title %q --notes-file %s\n", rel.Tag, rel.Title, file)
		return
	}
	a.printf("Release notes:\n\n%s\n\n", text)
	a.printf("Publish manually from %s with: gh release create %s --title %q --notes-file <file with the notes above>\n", a.RepoPath, rel.Tag, rel.Title)
}

// Next reports the version a bump would produce without changing anything.
func (a *App) Next(ctx context.Context, bump string) (string, error) {
	kind, err := version.ParseKind(bump)
	if err != nil {
		return "", err
	}
	docs, err := manifest.LoadSet(a.path(a.Config.PackageFile), a.path(a.Config.ModuleFile))
	if err != nil {
		return "", err
	}
	next, fellBack, err := version.Next(docs.Version(), kind)
	if err != nil {
		return "", err
	}
	if fellBack {
		a.log().Warn(fmt.Sprintf("invalid version format %q, using %s as base", docs.Version(), version.Fallback))
	}
	return next, nil
}

// WriteNotes generates notes for opts' range, or since the latest tag when
// no range was given, and writes them to opts.OutputPath or Out.
func (a *App) WriteNotes(ctx context.Context, opts Options) error {
	rng := opts.Range()
	if !opts.Explicit() {
		prev, err := a.Repo.LatestTag(ctx, "")
		switch {
		case errors.Is(err, vcs.ErrNoTag):
			a.log().Info("no previous tag found, using recent history", "limit", a.Config.Git.HistoryLimit)
		case err != nil:
			a.log().Warn("could not determine previous tag", "err", err)
		default:
			rng.From = prev
		}
	}

	body := a.Notes.Generate(ctx, rng)

	if opts.OutputPath == "" || opts.OutputPath == "-" {
		_, err := fmt.Fprintln(a.out(), body)
		return err
	}
	if err := os.WriteFile(opts.OutputPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write release notes: %w", err)
	}
	return nil
}

func (a *App) path(p string) string {
	if filepath.IsAbs(p) || a.RepoPath == "" {
		return p
	}
	return filepath.Join(a.RepoPath, p)
}

func (a *App) log() logging.Logger {
	if a.Log == nil {
		return logging.Discard()
	}
	return a.Log
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return io.Discard
	}
	return a.Out
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out(), format, args...)
}

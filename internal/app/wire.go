package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vtt-release/internal/config"
	"vtt-release/internal/gitlog"
	"vtt-release/internal/gitnative"
	"vtt-release/internal/llm"
	"vtt-release/internal/logging"
	"vtt-release/internal/notes"
	"vtt-release/internal/publish"
	"vtt-release/internal/vcs"
)

// Setup carries the process-level inputs resolved by the CLI.
type Setup struct {
	RepoPath   string
	ConfigPath string
	// LogLevel overrides the configured level when set.
	LogLevel string
	Out      io.Writer
	Err      io.Writer
}

// Build loads configuration and wires every collaborator: config file ->
// env overrides -> logger -> repository -> summarizer -> notes -> publisher.
func Build(ctx context.Context, s Setup) (*App, error) {
	repoPath := s.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	// git and gh run with the repository as their working directory, so
	// every path handed to them must not depend on the caller's.
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve repository path: %w", err)
	}
	cfgPath := s.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(repoPath, config.DefaultPath)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := config.LoadEnv(&cfg, filepath.Join(repoPath, ".env")); err != nil {
		return nil, err
	}
	if s.LogLevel != "" {
		cfg.Log.Level = s.LogLevel
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	errOut := s.Err
	if errOut == nil {
		errOut = os.Stderr
	}
	log := logging.New(errOut, level, cfg.Log.Format)

	repo, err := OpenRepository(cfg.Git, repoPath)
	if err != nil {
		return nil, err
	}

	summarizer, err := llm.New(ctx, cfg.Summarizer)
	if err != nil {
		return nil, err
	}

	generator := notes.Generator{
		History:       repo,
		Summarizer:    summarizer,
		Log:           logging.Component(log, "notes"),
		Limit:         cfg.Git.HistoryLimit,
		ReleasePrefix: cfg.Git.ReleasePrefix,
	}

	return &App{
		Config:    cfg,
		RepoPath:  repoPath,
		Repo:      repo,
		Notes:     generator,
		Publisher: publish.GitHub{RepoPath: repoPath, Bin: cfg.Publish.Bin},
		Log:       logging.Component(log, "release"),
		Out:       s.Out,
	}, nil
}

// OpenRepository selects the git backend named in cfg.
func OpenRepository(cfg config.GitConfig, path string) (vcs.Repository, error) {
	switch cfg.Backend {
	case "", "cli":
		return gitlog.Collector{RepoPath: path}, nil
	case "native":
		repo, err := gitnative.Open(path)
		if err != nil {
			return nil, err
		}
		if cfg.AuthorName != "" {
			repo.SignAs(cfg.AuthorName, cfg.AuthorEmail)
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown git backend %q", cfg.Backend)
}

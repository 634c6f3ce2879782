package main

import (
	"errors"

	"github.com/spf13/cobra"

	"vtt-release/internal/app"
	"vtt-release/internal/version"
)

// buildVersion is set at build time via -ldflags.
var buildVersion = "dev"

type globalFlags struct {
	repoPath   string
	configPath string
	logLevel   string
}

func (g *globalFlags) setup(cmd *cobra.Command) app.Setup {
	return app.Setup{
		RepoPath:   g.repoPath,
		ConfigPath: g.configPath,
		LogLevel:   g.logLevel,
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	var dryRun bool

	root := &cobra.Command{
		Use:   "release <major|minor|patch>",
		Short: "Bump the module version, tag it and publish release notes",
		Long: `release updates the version in package.json and module.json, commits and
tags the change, pushes both to origin, then publishes a GitHub release whose
notes are summarized from the commit log (or listed, if summarizing fails).

Pushed commits and tags are never rolled back; if publishing fails the
command prints what to run by hand.`,
		Args:          bumpArg,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := app.Build(cmd.Context(), g.setup(cmd))
			if err != nil {
				return err
			}
			_, err = a.Release(cmd.Context(), app.ReleaseOptions{Bump: args[0], DryRun: dryRun})
			return err
		},
	}
	root.Version = buildVersion

	root.PersistentFlags().StringVar(&g.repoPath, "repo", ".", "path to the module repository")
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "config file (default <repo>/.release.yaml)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "error, warn, info, debug or verbose (overrides config)")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "compute the next version without writing, committing or publishing")

	root.AddCommand(newNextCmd(g), newNotesCmd(g))
	return root
}

func bumpArg(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("please provide a version argument (major, minor, patch)")
	}
	_, err := version.ParseKind(args[0])
	return err
}

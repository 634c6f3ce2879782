package main

import (
	"github.com/spf13/cobra"

	"vtt-release/internal/app"
)

func newNotesCmd(g *globalFlags) *cobra.Command {
	var f app.FlagValues

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Generate release notes without releasing",
		Long: `Generate Markdown release notes for a tag or commit range. Without a range
the notes cover everything since the latest tag.

Examples:
  release notes
  release notes --from-tag v1.2.0 -o NOTES.md
  release notes --from-commit 1a2b3c --to-commit main`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.OptionsFromFlags(f)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			a, err := app.Build(cmd.Context(), g.setup(cmd))
			if err != nil {
				return err
			}
			return a.WriteNotes(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&f.FromTag, "from-tag", "", "start of the range (exclusive)")
	cmd.Flags().StringVar(&f.ToTag, "to-tag", "", "end of the range (default HEAD)")
	cmd.Flags().StringVar(&f.FromCommit, "from-commit", "", "start commit of the range (exclusive)")
	cmd.Flags().StringVar(&f.ToCommit, "to-commit", "", "end commit of the range (default HEAD)")
	cmd.Flags().StringVarP(&f.OutputPath, "output", "o", "-", "output file, - for stdout")
	return cmd
}

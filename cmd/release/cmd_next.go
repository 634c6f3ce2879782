package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vtt-release/internal/app"
)

func newNextCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "next <major|minor|patch>",
		Short: "Print the version a bump would produce",
		Args:  bumpArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			a, err := app.Build(cmd.Context(), g.setup(cmd))
			if err != nil {
				return err
			}
			next, err := a.Next(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

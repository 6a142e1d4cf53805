// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/benchopt/results/internal/site"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the output directory",
	Long: `Remove the output directory and everything the runner rendered into it.

Cleaning when the output directory does not exist is a successful no-op.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := site.Output{Dir: cfg.OutputDir}
		if err := out.Clean(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" Removed "+CmdStyle.Render(cfg.OutputDir))
		return nil
	},
}

// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/benchopt/results/internal/site"

	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Render and push the results site to the gh-pages branch",
	Long: `Render the results, then import the output directory as a fresh
single-commit history on the site branch and push it to the remote.

The remote, branch, and commit message are fixed by configuration, not
per invocation. Publishing rewrites the site branch history and force
pushes it. There is no confirmation and no rollback: if the push fails
after the import, the local branch stays rewritten and unpushed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Publish depends on render having produced output; rendering first
		// keeps the precondition satisfied the same way the render-then-
		// publish task ordering always has.
		if err := renderOnce(cmd.Context()); err != nil {
			return err
		}

		publisher := &site.Publisher{
			Remote:  cfg.Publish.Remote,
			Branch:  cfg.Publish.Branch,
			Message: cfg.Publish.CommitMessage,
		}
		out := site.Output{Dir: cfg.OutputDir}

		if err := publisher.Publish(cmd.Context(), out); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓")+" Published "+
			CmdStyle.Render(cfg.OutputDir)+" to "+
			CmdStyle.Render(cfg.Publish.Remote+"/"+cfg.Publish.Branch))
		return nil
	},
}

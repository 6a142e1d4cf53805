// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benchopt/results/internal/issue"
	"github.com/benchopt/results/internal/watch"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render whenever benchmark definitions change",
	Long: `Watch the benchmark root and re-run render after changes settle.

Rapid successive changes coalesce into a single render. The rendered
output directory itself is ignored so a render never re-triggers itself.
Interrupt with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		watcher, err := watch.New(watch.Config{
			BaseDir:  cfg.BenchmarkRoot,
			Debounce: watchDebounce,
			OnChange: func(ctx context.Context, changed []string) error {
				log.Info("benchmark definitions changed", "files", len(changed))
				if err := renderOnce(ctx); err != nil {
					// Keep watching after a failed render; the next change
					// gets another chance.
					fmt.Fprintln(cmd.ErrOrStderr(), ErrorStyle.Render("render failed: ")+err.Error())
				}
				return nil
			},
		})
		if err != nil {
			return issue.WrapWithOperation(err, "watch benchmark root")
		}

		fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("Watching ")+CmdStyle.Render(cfg.BenchmarkRoot)+SubtitleStyle.Render(" for changes..."))

		if err := watcher.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before re-rendering (default 500ms)")
}

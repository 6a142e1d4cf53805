// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/benchopt/results/internal/runner"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Generate the results site with the external benchmark runner",
	Long: `Invoke the external benchmark runner against the benchmark root.

The runner scans the benchmark definitions and writes the rendered HTML
into the output directory. benchsite does not validate arguments, retry,
or parse results: a runner failure propagates as the exit code, and the
runner's own output is the only diagnostic signal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return renderOnce(cmd.Context())
	},
}

// renderOnce runs the pre-render hook, the external benchmark runner, and
// the post-render hook. The first failure aborts with its exit code.
func renderOnce(ctx context.Context) error {
	if err := runHook(ctx, "pre_render", cfg.Hooks.PreRender); err != nil {
		return err
	}

	result := runner.Run(ctx, runner.Invocation{
		Command: cfg.Runner.Command,
		Args:    cfg.Runner.Args,
		Root:    cfg.BenchmarkRoot,
	})
	if err := exitErrorFromResult("benchmark runner", result); err != nil {
		return err
	}

	return runHook(ctx, "post_render", cfg.Hooks.PostRender)
}

// runHook executes a configured hook snippet in the embedded shell.
func runHook(ctx context.Context, name, script string) error {
	result := runner.RunHook(ctx, runner.Hook{
		Name:   name,
		Script: script,
	})
	return exitErrorFromResult(fmt.Sprintf("%s hook", name), result)
}

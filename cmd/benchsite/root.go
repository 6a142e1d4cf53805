// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/benchopt/results/internal/config"
	"github.com/benchopt/results/internal/issue"
	"github.com/benchopt/results/internal/site"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the configuration loaded by initRootConfig. Never nil after
	// initialization; falls back to defaults when loading fails.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "benchsite",
		Short: "Benchmark results site orchestrator",
		Long: TitleStyle.Render("benchsite") + SubtitleStyle.Render(" - Benchmark results site orchestrator") + `

benchsite drives the external benchmark runner over a directory of
benchmark definitions and publishes the rendered HTML results as a
static site. All benchmark execution and HTML generation is delegated
to the runner; benchsite owns only the orchestration around it.

` + SubtitleStyle.Render("Typical flow:") + `
  1. benchsite render     Generate the results site into the output directory
  2. benchsite report     Inspect what the runner produced
  3. benchsite publish    Push the output directory to the gh-pages branch

` + SubtitleStyle.Render("Examples:") + `
  benchsite render          Run the benchmark runner against the benchmark root
  benchsite clean           Remove the output directory
  benchsite watch           Re-render whenever benchmark definitions change
  benchsite config show     Show the effective configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is the platform config dir or ./benchsite.cue)")

	// Add subcommands
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		var gitErr *site.GitError
		if errors.As(err, &gitErr) {
			os.Exit(gitErr.ExitCode)
		}
		os.Exit(1)
	}
}

// initRootConfig loads the configuration and wires global output settings.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Surface config errors but keep running on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
	}

	if !verbose {
		verbose = cfg.UI.Verbose
	}
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

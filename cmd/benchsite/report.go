// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/benchopt/results/internal/issue"
	"github.com/benchopt/results/internal/site"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize what the runner rendered into the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := site.Output{Dir: cfg.OutputDir}
		if !out.Exists() {
			return issue.NewErrorContext().
				WithOperation("report on results site").
				WithResource(cfg.OutputDir).
				WithSuggestion("Run 'benchsite render' to generate the output directory").
				Wrap(fmt.Errorf("output directory does not exist")).
				BuildError()
		}

		sum, err := out.Summarize()
		if err != nil {
			return err
		}

		rendered, err := renderMarkdown(reportMarkdown(cfg.OutputDir, sum))
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
		return nil
	},
}

// reportMarkdown builds the markdown summary of the output directory.
func reportMarkdown(dir string, sum site.Summary) string {
	var sb strings.Builder

	sb.WriteString("# Results site report\n\n")
	fmt.Fprintf(&sb, "Output directory: `%s`\n\n", dir)
	fmt.Fprintf(&sb, "| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Files | %d |\n", sum.Files)
	fmt.Fprintf(&sb, "| Directories | %d |\n", sum.Dirs)
	fmt.Fprintf(&sb, "| Total size | %d bytes |\n", sum.TotalBytes)
	if !sum.Newest.IsZero() {
		fmt.Fprintf(&sb, "| Last rendered | %s |\n", sum.Newest.Format("2006-01-02 15:04:05"))
	}

	if sum.HasMarker {
		sb.WriteString("\nThe `" + site.MarkerFileName + "` marker is present; the site publishes as-is.\n")
	} else {
		sb.WriteString("\nNo `" + site.MarkerFileName + "` marker yet; it is created during publish.\n")
	}

	return sb.String()
}

// renderMarkdown renders markdown for the terminal.
func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}

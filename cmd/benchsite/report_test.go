// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/benchopt/results/internal/site"
)

func TestReportMarkdown(t *testing.T) {
	sum := site.Summary{
		Files:      12,
		Dirs:       3,
		TotalBytes: 4096,
		HasMarker:  true,
		Newest:     time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	got := reportMarkdown("outputs", sum)

	for _, want := range []string{
		"`outputs`",
		"| Files | 12 |",
		"| Directories | 3 |",
		"| Total size | 4096 bytes |",
		"2026-08-30 10:00:00",
		site.MarkerFileName + "` marker is present",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("reportMarkdown() missing %q:\n%s", want, got)
		}
	}
}

func TestReportMarkdown_NoMarker(t *testing.T) {
	got := reportMarkdown("outputs", site.Summary{Files: 1})

	if !strings.Contains(got, "created during publish") {
		t.Errorf("reportMarkdown() without marker should mention publish:\n%s", got)
	}
	if strings.Contains(got, "Last rendered") {
		t.Errorf("reportMarkdown() with zero Newest should omit the timestamp row:\n%s", got)
	}
}

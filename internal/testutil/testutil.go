// SPDX-License-Identifier: MPL-2.0

// Package testutil provides shared helpers for tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteExecutable writes an executable POSIX shell script into a temp
// directory and returns its path. Tests use these as stand-ins for the
// external benchmark runner.
func WriteExecutable(t *testing.T, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts require a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), name)
	content := "#!/bin/sh\n" + script + "\n"
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("failed to write stub script %s: %v", name, err)
	}
	return path
}

// MustRemoveAll removes a path and fails the test on error.
func MustRemoveAll(t *testing.T, path string) {
	t.Helper()
	if err := os.RemoveAll(path); err != nil {
		t.Fatalf("failed to remove %s: %v", path, err)
	}
}

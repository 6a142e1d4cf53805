// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/benchopt/results/internal/config"
	"github.com/benchopt/results/internal/testutil"
)

// swapConfig installs a test configuration and restores the previous one
// on cleanup.
func swapConfig(t *testing.T, c *config.Config) {
	t.Helper()
	prev := cfg
	cfg = c
	t.Cleanup(func() { cfg = prev })
}

func TestRenderOnce_RunnerExitCodePropagates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	stub := testutil.WriteExecutable(t, "fake-benchopt", "exit 9")

	c := config.DefaultConfig()
	c.Runner.Command = stub
	c.Runner.Args = nil
	swapConfig(t, c)

	err := renderOnce(context.Background())
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("renderOnce() error type = %T, want *ExitError", err)
	}
	if exitErr.Code != 9 {
		t.Errorf("exit code = %d, want 9", exitErr.Code)
	}
}

func TestRenderOnce_HooksBracketTheRunner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	trace := filepath.Join(dir, "trace")

	// The stub runner and both hooks append to the same trace file, so the
	// file records the execution order.
	stub := testutil.WriteExecutable(t, "fake-benchopt", "echo run >> "+trace)

	c := config.DefaultConfig()
	c.Runner.Command = stub
	c.Runner.Args = nil
	c.Hooks.PreRender = "echo pre >> " + trace
	c.Hooks.PostRender = "echo post >> " + trace
	swapConfig(t, c)

	if err := renderOnce(context.Background()); err != nil {
		t.Fatalf("renderOnce() = %v", err)
	}

	data, err := os.ReadFile(trace)
	if err != nil {
		t.Fatalf("trace file missing: %v", err)
	}
	want := "pre\nrun\npost\n"
	if string(data) != want {
		t.Errorf("execution order = %q, want %q", data, want)
	}
}

func TestRenderOnce_FailingPreHookSkipsRunner(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	trace := filepath.Join(dir, "trace")
	stub := testutil.WriteExecutable(t, "fake-benchopt", "echo run >> "+trace)

	c := config.DefaultConfig()
	c.Runner.Command = stub
	c.Runner.Args = nil
	c.Hooks.PreRender = "exit 4"
	swapConfig(t, c)

	err := renderOnce(context.Background())
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("renderOnce() error type = %T, want *ExitError", err)
	}
	if exitErr.Code != 4 {
		t.Errorf("exit code = %d, want 4", exitErr.Code)
	}
	if _, statErr := os.Stat(trace); !os.IsNotExist(statErr) {
		t.Errorf("runner ran despite failing pre_render hook")
	}
}

// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

type (
	// Invocation describes one call to the external benchmark runner.
	Invocation struct {
		// Command is the runner executable (looked up on PATH when relative).
		Command string

		// Args are the subcommand and fixed arguments passed before the
		// benchmark root (e.g. ["generate-results"]).
		Args []string

		// Root is the benchmark root directory, passed as --root. Empty
		// means the runner's own default.
		Root string

		// WorkDir is the working directory for the runner process. Empty
		// means the current directory.
		WorkDir string

		// ExtraEnv is appended to the inherited environment as KEY=VALUE.
		ExtraEnv map[string]string

		// Stdin, Stdout, Stderr are the process IO streams. Nil values
		// default to the benchsite process's own streams.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// Run invokes the external benchmark runner and waits for it to finish.
// The runner's exit code is propagated untranslated; whatever it printed to
// stderr is the only diagnostic signal.
func Run(ctx context.Context, inv Invocation) *Result {
	cmd, err := inv.command(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}

	cmd.Stdin = inv.stdin()
	cmd.Stdout = inv.stdout()
	cmd.Stderr = inv.stderr()

	log.Debug("starting benchmark runner", "command", cmd.String(), "dir", cmd.Dir)

	return waitResult(cmd.Run(), nil, nil)
}

// RunCapture invokes the external benchmark runner with stdout and stderr
// captured into the Result instead of streamed.
func RunCapture(ctx context.Context, inv Invocation) *Result {
	cmd, err := inv.command(ctx)
	if err != nil {
		return NewErrorResult(1, err)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdin = inv.stdin()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("starting benchmark runner (captured)", "command", cmd.String(), "dir", cmd.Dir)

	return waitResult(cmd.Run(), &stdout, &stderr)
}

// command builds the exec.Cmd for this invocation.
func (inv Invocation) command(ctx context.Context) (*exec.Cmd, error) {
	if inv.Command == "" {
		return nil, fmt.Errorf("benchmark runner command is not configured")
	}

	args := make([]string, 0, len(inv.Args)+2)
	args = append(args, inv.Args...)
	if inv.Root != "" {
		args = append(args, "--root", inv.Root)
	}

	cmd := exec.CommandContext(ctx, inv.Command, args...)
	cmd.Dir = inv.WorkDir
	cmd.Env = append(os.Environ(), EnvToSlice(inv.ExtraEnv)...)
	return cmd, nil
}

func (inv Invocation) stdin() io.Reader {
	if inv.Stdin != nil {
		return inv.Stdin
	}
	return os.Stdin
}

func (inv Invocation) stdout() io.Writer {
	if inv.Stdout != nil {
		return inv.Stdout
	}
	return os.Stdout
}

func (inv Invocation) stderr() io.Writer {
	if inv.Stderr != nil {
		return inv.Stderr
	}
	return os.Stderr
}

// waitResult translates an exec.Cmd Run error into a Result. Non-zero exits
// of a process that ran are normal terminations, not infrastructure errors.
func waitResult(err error, stdout, stderr *bytes.Buffer) *Result {
	result := &Result{}
	if stdout != nil {
		result.Output = stdout.String()
	}
	if stderr != nil {
		result.ErrOutput = stderr.String()
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = 1
			result.Error = fmt.Errorf("failed to execute benchmark runner: %w", err)
		}
	}

	return result
}

// EnvToSlice converts an environment map to KEY=VALUE form.
func EnvToSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(env))
	for k, v := range env {
		pairs = append(pairs, k+"="+v)
	}
	return pairs
}

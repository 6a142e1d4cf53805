// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

type (
	// Hook is a user-defined shell snippet run before or after an
	// operation, executed in the embedded POSIX interpreter rather than the
	// host shell so behavior is identical across platforms.
	Hook struct {
		// Name identifies the hook in logs and errors (e.g. "pre_render").
		Name string

		// Script is the inline shell snippet. An empty script is a no-op.
		Script string

		// WorkDir is the working directory for the hook. Empty means the
		// current directory.
		WorkDir string

		// ExtraEnv is appended to the inherited environment.
		ExtraEnv map[string]string

		// Stdout and Stderr receive the hook's output. Nil values default
		// to the benchsite process's own streams.
		Stdout io.Writer
		Stderr io.Writer
	}
)

// RunHook executes the hook script in the embedded shell. A hook that exits
// non-zero aborts the surrounding operation with that code.
func RunHook(ctx context.Context, h Hook) *Result {
	if strings.TrimSpace(h.Script) == "" {
		return NewSuccessResult()
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(h.Script), h.Name)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to parse %s hook: %w", h.Name, err))
	}

	stdout := h.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := h.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	env := append(os.Environ(), EnvToSlice(h.ExtraEnv)...)

	sh, err := interp.New(
		interp.Dir(h.WorkDir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, stdout, stderr),
	)
	if err != nil {
		return NewErrorResult(1, fmt.Errorf("failed to create shell interpreter: %w", err))
	}

	log.Debug("running hook", "hook", h.Name, "dir", h.WorkDir)

	if err := sh.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return NewExitCodeResult(ExitCode(exitStatus))
		}
		return NewErrorResult(1, fmt.Errorf("%s hook failed: %w", h.Name, err))
	}

	return NewSuccessResult()
}

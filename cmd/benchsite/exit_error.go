// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/benchopt/results/internal/runner"
)

// ExitError carries the exit code of a failed external process so Execute
// can propagate it as the benchsite exit code. No custom codes exist; the
// code is always the one the external tool produced.
type ExitError struct {
	// Code is the process exit code (non-zero).
	Code int
	// Err is the underlying error (must not be nil).
	Err error
}

// newExitError creates an ExitError with a nil-Err panic guard.
// All construction sites must use this instead of struct literals.
func newExitError(code int, err error) *ExitError {
	if err == nil {
		panic("ExitError: Err must not be nil")
	}
	return &ExitError{Code: code, Err: err}
}

// Error implements the error interface.
func (e *ExitError) Error() string { return e.Err.Error() }

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *ExitError) Unwrap() error { return e.Err }

// exitErrorFromResult translates a failed Result into an ExitError naming
// what ran. Returns nil when the result succeeded.
func exitErrorFromResult(what string, result *runner.Result) error {
	if !result.Failed() {
		return nil
	}
	if result.Error != nil {
		return newExitError(int(result.ExitCode), result.Error)
	}
	return newExitError(int(result.ExitCode), fmt.Errorf("%s exited with code %s", what, result.ExitCode))
}

// SPDX-License-Identifier: MPL-2.0

package runner

type (
	// Result is the outcome of a single subprocess or hook invocation.
	Result struct {
		// ExitCode is the process exit status. Zero means success.
		ExitCode ExitCode

		// Output holds captured stdout when the invocation captures IO.
		Output string

		// ErrOutput holds captured stderr when the invocation captures IO.
		ErrOutput string

		// Error is set only for infrastructure failures (process could not
		// be started, script could not be parsed). A non-zero ExitCode from
		// a process that ran to completion is not an Error.
		Error error
	}
)

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code ExitCode) *Result {
	return &Result{ExitCode: code}
}

// Failed returns true when the invocation did not succeed, either because
// the process exited non-zero or because it could not be run at all.
func (r *Result) Failed() bool {
	return r.Error != nil || !r.ExitCode.IsSuccess()
}

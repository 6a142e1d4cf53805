// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	// SourceEnvVar overrides where the external benchmark runner is
	// installed from, formatted "owner:branch".
	SourceEnvVar = "BENCHOPT_BRANCH"

	// DefaultSourceOwner is the GitHub owner the runner is installed from
	// when no override is set.
	DefaultSourceOwner = "benchopt"

	// DefaultSourceBranch is the branch the runner is installed from when
	// no override is set.
	DefaultSourceBranch = "main"

	// runnerRepoName is the repository name of the external benchmark runner.
	runnerRepoName = "benchopt"
)

// ErrInvalidInstallSource is the sentinel error wrapped by InvalidInstallSourceError.
var ErrInvalidInstallSource = errors.New("invalid install source")

type (
	// InstallSource identifies the repository fork and branch the external
	// benchmark runner is installed from in CI.
	InstallSource struct {
		Owner  string
		Branch string
	}

	// InvalidInstallSourceError is returned when an override value cannot
	// be split into a non-empty owner and branch.
	InvalidInstallSourceError struct {
		Value string
	}
)

// Error implements the error interface.
func (e *InvalidInstallSourceError) Error() string {
	return fmt.Sprintf("invalid install source %q (expected \"owner:branch\")", e.Value)
}

// Unwrap returns ErrInvalidInstallSource for errors.Is() compatibility.
func (e *InvalidInstallSourceError) Unwrap() error { return ErrInvalidInstallSource }

// DefaultInstallSource returns the fixed upstream owner and default branch.
func DefaultInstallSource() InstallSource {
	return InstallSource{Owner: DefaultSourceOwner, Branch: DefaultSourceBranch}
}

// ParseInstallSource splits an "owner:branch" override value.
//
// The split is on the LAST colon: GitHub owner names cannot contain colons,
// while nothing forbids a colon inside a ref name on every hosting scheme.
// Splitting from the right keeps any such branch intact on the branch side.
func ParseInstallSource(value string) (InstallSource, error) {
	idx := strings.LastIndex(value, ":")
	if idx < 0 {
		return InstallSource{}, &InvalidInstallSourceError{Value: value}
	}

	src := InstallSource{
		Owner:  strings.TrimSpace(value[:idx]),
		Branch: strings.TrimSpace(value[idx+1:]),
	}
	if src.Owner == "" || src.Branch == "" {
		return InstallSource{}, &InvalidInstallSourceError{Value: value}
	}
	return src, nil
}

// InstallSourceFromEnv resolves the install source from SourceEnvVar,
// falling back to the default when the variable is unset or empty.
// A malformed override is an error rather than a silent fallback.
func InstallSourceFromEnv() (InstallSource, error) {
	value := os.Getenv(SourceEnvVar)
	if value == "" {
		return DefaultInstallSource(), nil
	}
	return ParseInstallSource(value)
}

// InstallCommand returns the argv that installs the external benchmark
// runner from this source. The command is constructed, never executed, by
// this package; CI runs it, and tests assert on the string form.
func (s InstallSource) InstallCommand() []string {
	return []string{
		"pip", "install", "-U",
		fmt.Sprintf("git+https://github.com/%s/%s.git@%s", s.Owner, runnerRepoName, s.Branch),
	}
}

// String returns the "owner:branch" form of the source.
func (s InstallSource) String() string {
	return s.Owner + ":" + s.Branch
}

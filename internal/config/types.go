// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRunnerConfig is the sentinel error wrapped by InvalidRunnerConfigError.
	ErrInvalidRunnerConfig = errors.New("invalid runner config")
	// ErrInvalidPublishConfig is the sentinel error wrapped by InvalidPublishConfigError.
	ErrInvalidPublishConfig = errors.New("invalid publish config")
)

type (
	// Config is the full benchsite configuration.
	Config struct {
		// BenchmarkRoot is the directory holding benchmark definitions,
		// passed to the external runner as --root. Never mutated by benchsite.
		BenchmarkRoot string `mapstructure:"benchmark_root"`

		// OutputDir is where the external runner writes rendered results.
		OutputDir string `mapstructure:"output_dir"`

		Runner  RunnerConfig  `mapstructure:"runner"`
		Publish PublishConfig `mapstructure:"publish"`
		Hooks   HooksConfig   `mapstructure:"hooks"`
		UI      UIConfig      `mapstructure:"ui"`
	}

	// RunnerConfig selects the external benchmark runner command line.
	RunnerConfig struct {
		// Command is the runner executable.
		Command string `mapstructure:"command"`

		// Args are the fixed arguments placed before the benchmark root.
		Args []string `mapstructure:"args"`
	}

	// PublishConfig fixes where the rendered site is pushed. These are not
	// redirectable per invocation; publish always targets this remote and
	// branch.
	PublishConfig struct {
		Remote        string `mapstructure:"remote"`
		Branch        string `mapstructure:"branch"`
		CommitMessage string `mapstructure:"commit_message"`
	}

	// HooksConfig holds optional shell snippets run around render in the
	// embedded POSIX interpreter.
	HooksConfig struct {
		PreRender  string `mapstructure:"pre_render"`
		PostRender string `mapstructure:"post_render"`
	}

	// UIConfig holds terminal output preferences.
	UIConfig struct {
		Verbose bool `mapstructure:"verbose"`
	}

	// InvalidRunnerConfigError is returned when the runner section fails
	// validation. It wraps ErrInvalidRunnerConfig for errors.Is() compatibility.
	InvalidRunnerConfigError struct {
		Reason string
	}

	// InvalidPublishConfigError is returned when the publish section fails
	// validation. It wraps ErrInvalidPublishConfig for errors.Is() compatibility.
	InvalidPublishConfigError struct {
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidRunnerConfigError) Error() string {
	return fmt.Sprintf("invalid runner config: %s", e.Reason)
}

// Unwrap returns ErrInvalidRunnerConfig for errors.Is() compatibility.
func (e *InvalidRunnerConfigError) Unwrap() error { return ErrInvalidRunnerConfig }

// Error implements the error interface.
func (e *InvalidPublishConfigError) Error() string {
	return fmt.Sprintf("invalid publish config: %s", e.Reason)
}

// Unwrap returns ErrInvalidPublishConfig for errors.Is() compatibility.
func (e *InvalidPublishConfigError) Unwrap() error { return ErrInvalidPublishConfig }

// DefaultConfig returns the built-in defaults, matching the fixed values the
// original orchestration used.
func DefaultConfig() *Config {
	return &Config{
		BenchmarkRoot: ".",
		OutputDir:     "outputs",
		Runner: RunnerConfig{
			Command: "benchopt",
			Args:    []string{"generate-results"},
		},
		Publish: PublishConfig{
			Remote:        "origin",
			Branch:        "gh-pages",
			CommitMessage: "Update benchmark results site",
		},
	}
}

// Validate checks constraints the CUE schema cannot express.
func (c *Config) Validate() error {
	if err := c.Runner.Validate(); err != nil {
		return err
	}
	return c.Publish.Validate()
}

// Validate checks that a runner command is set.
func (r RunnerConfig) Validate() error {
	if strings.TrimSpace(r.Command) == "" {
		return &InvalidRunnerConfigError{Reason: "command must not be empty"}
	}
	return nil
}

// Validate checks that the publish target is well-formed: non-empty remote
// and branch names with no embedded whitespace.
func (p PublishConfig) Validate() error {
	for field, value := range map[string]string{"remote": p.Remote, "branch": p.Branch} {
		if strings.TrimSpace(value) == "" {
			return &InvalidPublishConfigError{Reason: field + " must not be empty"}
		}
		if strings.ContainsAny(value, " \t\n") {
			return &InvalidPublishConfigError{Reason: fmt.Sprintf("%s %q must not contain whitespace", field, value)}
		}
	}
	if p.CommitMessage == "" {
		return &InvalidPublishConfigError{Reason: "commit_message must not be empty"}
	}
	return nil
}

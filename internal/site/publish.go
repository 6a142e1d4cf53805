// SPDX-License-Identifier: MPL-2.0

package site

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/benchopt/results/internal/issue"
	"github.com/charmbracelet/log"
)

type (
	// Publisher imports the output directory into a fresh single-commit
	// history on the site branch and pushes it to the remote. The branch
	// history is rewritten on every publish; a push that fails after the
	// import leaves the local branch rewritten and unpushed, which is
	// reported only through the propagated git error.
	Publisher struct {
		// RepoDir is the git repository root. Empty means the current
		// directory.
		RepoDir string

		// Remote is the remote name pushed to.
		Remote string

		// Branch is the site branch name.
		Branch string

		// Message is the commit message for the import commit.
		Message string

		// GitPath overrides the git executable. Empty means "git" on PATH.
		GitPath string
	}

	// GitError is a git subprocess that exited non-zero. It carries the
	// exit code so the CLI can propagate it as its own.
	GitError struct {
		Args     []string
		ExitCode int
		Stderr   string
	}
)

// Error implements the error interface.
func (e *GitError) Error() string {
	msg := fmt.Sprintf("git %s exited with code %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + strings.TrimSpace(e.Stderr)
	}
	return msg
}

// Publish imports the output directory onto the site branch and pushes it.
// The output directory must already exist; run render first.
func (p *Publisher) Publish(ctx context.Context, out Output) error {
	if !out.Exists() {
		return issue.NewErrorContext().
			WithOperation("publish results site").
			WithResource(out.Dir).
			WithSuggestion("Run 'benchsite render' to generate the output directory").
			Wrap(fmt.Errorf("output directory does not exist")).
			BuildError()
	}

	if err := out.WriteMarker(); err != nil {
		return issue.WrapWithOperation(err, "publish results site")
	}

	commit, err := p.importTree(ctx, out)
	if err != nil {
		return err
	}

	log.Info("imported results", "branch", p.Branch, "commit", commit)

	// Force push: every import rewrites the branch history from scratch.
	if _, err := p.git(ctx, nil, "push", p.Remote, p.Branch, "--force"); err != nil {
		return err
	}

	log.Info("published results site", "remote", p.Remote, "branch", p.Branch)
	return nil
}

// importTree stages the output directory into a throwaway index, writes it
// as a root tree, commits it with no parent, and points the site branch at
// the commit. Returns the commit hash.
func (p *Publisher) importTree(ctx context.Context, out Output) (string, error) {
	absOut, err := filepath.Abs(out.Dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}

	repoDir := p.RepoDir
	if repoDir == "" {
		repoDir = "."
	}
	absRepo, err := filepath.Abs(repoDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve repository directory: %w", err)
	}

	indexDir, err := os.MkdirTemp("", "benchsite-index-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary index: %w", err)
	}
	defer os.RemoveAll(indexDir)

	// The add step runs from inside the output directory with the repository
	// located via GIT_DIR, so the staged paths are relative to the output
	// root and become the root of the published tree.
	env := []string{
		"GIT_DIR=" + filepath.Join(absRepo, ".git"),
		"GIT_WORK_TREE=" + absOut,
		"GIT_INDEX_FILE=" + filepath.Join(indexDir, "index"),
	}

	if _, err := p.gitIn(ctx, absOut, env, "add", "-A", "."); err != nil {
		return "", err
	}

	tree, err := p.gitIn(ctx, absOut, env, "write-tree")
	if err != nil {
		return "", err
	}

	commit, err := p.git(ctx, nil, "commit-tree", tree, "-m", p.Message)
	if err != nil {
		return "", err
	}

	if _, err := p.git(ctx, nil, "update-ref", "refs/heads/"+p.Branch, commit); err != nil {
		return "", err
	}

	return commit, nil
}

// git runs a single git command in the repository directory and returns its
// trimmed stdout. extraEnv entries are appended to the inherited environment.
func (p *Publisher) git(ctx context.Context, extraEnv []string, args ...string) (string, error) {
	return p.gitIn(ctx, p.RepoDir, extraEnv, args...)
}

// gitIn runs a git command with an explicit working directory.
func (p *Publisher) gitIn(ctx context.Context, dir string, extraEnv []string, args ...string) (string, error) {
	gitPath := p.GitPath
	if gitPath == "" {
		gitPath = "git"
	}

	cmd := exec.CommandContext(ctx, gitPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), extraEnv...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("running git", "args", strings.Join(args, " "), "dir", cmd.Dir)

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", &GitError{
				Args:     args,
				ExitCode: exitErr.ExitCode(),
				Stderr:   stderr.String(),
			}
		}
		return "", fmt.Errorf("failed to run git %s: %w", strings.Join(args, " "), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

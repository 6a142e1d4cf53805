// SPDX-License-Identifier: MPL-2.0

// Package watch provides file-watching with debounced re-rendering.
//
// It monitors the benchmark root for changed definitions and invokes a
// callback after a quiet period. Events inside the debounce window coalesce
// so a burst of writes triggers a single re-render.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the delay before firing the callback after the last
// filesystem event, long enough for an editor's write-then-rename dance to
// land as one change.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores are always excluded, on top of user-supplied ignores.
// They cover VCS metadata, caches, and editor noise, plus the rendered
// output itself, which would otherwise re-trigger the render that wrote it.
var defaultIgnores = []string{
	"**/.git/**",
	"**/__pycache__/**",
	"**/outputs/**",
	"**/*.swp",
	"**/*~",
	"**/.DS_Store",
}

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Patterns are doublestar glob patterns selecting which files
		// trigger the callback. Empty means every non-ignored file.
		Patterns []string

		// Ignore are additional glob patterns for paths that never trigger
		// the callback, merged with the built-in defaults.
		Ignore []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero or negative falls back to defaultDebounce.
		Debounce time.Duration

		// BaseDir is the root directory to watch. Empty means the current
		// working directory.
		BaseDir string

		// OnChange is called after the debounce window closes with the
		// deduplicated changed paths (relative to BaseDir). A nil callback
		// is a no-op.
		OnChange func(ctx context.Context, changed []string) error
	}

	// Watcher monitors the benchmark root and fires a debounced callback
	// when matching files change. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		debounce time.Duration
		baseDir  string
		started  atomic.Bool
	}
)

// New creates a Watcher from the given Config. It resolves BaseDir to an
// absolute path, validates all glob patterns eagerly, and registers every
// non-ignored directory under BaseDir for monitoring.
func New(cfg Config) (*Watcher, error) {
	baseDir := cfg.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("watch: determine working directory: %w", err)
		}
		baseDir = wd
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve base directory: %w", err)
	}

	if err := validatePatterns(cfg.Patterns, "watch"); err != nil {
		return nil, err
	}
	if err := validatePatterns(cfg.Ignore, "ignore"); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		debounce: debounce,
		baseDir:  absBase,
	}

	if err := w.addDirs(absBase); err != nil {
		fsw.Close() //nolint:errcheck // best-effort cleanup
		return nil, err
	}

	return w, nil
}

// Run processes filesystem events until ctx is canceled. It returns the
// context error on cancellation, or the first fatal watcher error.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called twice")
	}
	defer w.fsw.Close() //nolint:errcheck // watcher is single-use

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
		pending = map[string]struct{}{}
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			rel, match := w.matches(event)
			if !match {
				continue
			}
			pending[rel] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			log.Warn("filesystem watch error", "error", err)

		case <-timerCh:
			changed := make([]string, 0, len(pending))
			for path := range pending {
				changed = append(changed, path)
			}
			clear(pending)
			timerCh = nil

			if w.cfg.OnChange != nil {
				if err := w.cfg.OnChange(ctx, changed); err != nil {
					log.Error("change callback failed", "error", err)
				}
			}
		}
	}
}

// matches reports whether an event should trigger the callback, returning
// the path relative to the base directory.
func (w *Watcher) matches(event fsnotify.Event) (string, bool) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return "", false
	}

	rel, err := filepath.Rel(w.baseDir, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)

	if w.ignored(rel) {
		return "", false
	}

	// New directories must be registered so files created inside them are
	// seen; the event itself does not trigger the callback.
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addDirs(event.Name); err != nil {
				log.Warn("failed to watch new directory", "path", rel, "error", err)
			}
			return "", false
		}
	}

	if len(w.cfg.Patterns) == 0 {
		return rel, true
	}
	for _, pattern := range w.cfg.Patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return rel, true
		}
	}
	return "", false
}

// ignored reports whether a base-relative slash path matches any ignore pattern.
func (w *Watcher) ignored(rel string) bool {
	for _, pattern := range w.ignores {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// addDirs registers root and all non-ignored directories under it.
func (w *Watcher) addDirs(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		// Probe with a synthetic child so directory-scoped patterns like
		// **/.git/** apply to the directory itself.
		rel, relErr := filepath.Rel(w.baseDir, path)
		if relErr == nil && rel != "." && w.ignored(filepath.ToSlash(rel)+"/_") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add %s: %w", path, err)
		}
		return nil
	})
}

// validatePatterns rejects malformed globs at construction time rather than
// letting them silently never match.
func validatePatterns(patterns []string, kind string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("watch: invalid %s pattern %q", kind, pattern)
		}
	}
	return nil
}

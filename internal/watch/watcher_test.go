// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestNew_RejectsInvalidPatterns(t *testing.T) {
	_, err := New(Config{
		BaseDir:  t.TempDir(),
		Patterns: []string{"[invalid"},
	})
	if err == nil {
		t.Fatalf("New() with invalid pattern: error = nil, want error")
	}

	_, err = New(Config{
		BaseDir: t.TempDir(),
		Ignore:  []string{"[also-invalid"},
	})
	if err == nil {
		t.Fatalf("New() with invalid ignore pattern: error = nil, want error")
	}
}

func TestWatcher_Matches(t *testing.T) {
	base := t.TempDir()
	w, err := New(Config{
		BaseDir:  base,
		Patterns: []string{"**/*.yml"},
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { w.fsw.Close() })

	tests := []struct {
		name  string
		event fsnotify.Event
		want  string
		match bool
	}{
		{
			name:  "matching write",
			event: fsnotify.Event{Name: filepath.Join(base, "bench_a", "objective.yml"), Op: fsnotify.Write},
			want:  "bench_a/objective.yml",
			match: true,
		},
		{
			name:  "non-matching extension",
			event: fsnotify.Event{Name: filepath.Join(base, "notes.txt"), Op: fsnotify.Write},
			match: false,
		},
		{
			name:  "ignored vcs path",
			event: fsnotify.Event{Name: filepath.Join(base, ".git", "index.yml"), Op: fsnotify.Write},
			match: false,
		},
		{
			name:  "ignored rendered output",
			event: fsnotify.Event{Name: filepath.Join(base, "outputs", "page.yml"), Op: fsnotify.Write},
			match: false,
		},
		{
			name:  "chmod is not a change",
			event: fsnotify.Event{Name: filepath.Join(base, "bench.yml"), Op: fsnotify.Chmod},
			match: false,
		},
		{
			name:  "outside base directory",
			event: fsnotify.Event{Name: "/elsewhere/bench.yml", Op: fsnotify.Write},
			match: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, match := w.matches(tt.event)
			if match != tt.match {
				t.Errorf("matches() = %v, want %v", match, tt.match)
			}
			if match && got != tt.want {
				t.Errorf("matches() path = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	w, err := New(Config{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = w.Run(ctx)

	if err := w.Run(context.Background()); err == nil {
		t.Errorf("Run() second call = nil, want error")
	}
}

func TestWatcher_DebouncedCallback(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping timing-dependent test in short mode")
	}

	base := t.TempDir()

	var (
		mu    sync.Mutex
		calls [][]string
	)
	w, err := New(Config{
		BaseDir:  base,
		Debounce: 50 * time.Millisecond,
		OnChange: func(_ context.Context, changed []string) error {
			mu.Lock()
			calls = append(calls, changed)
			mu.Unlock()
			return nil
		},
	})
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// Two quick writes should coalesce into one callback.
	if err := os.WriteFile(filepath.Join(base, "a.yml"), []byte("a"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, "b.yml"), []byte("b"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		mu.Lock()
		n := len(calls)
		mu.Unlock()
		if n > 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("callback never fired")
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Errorf("callback fired %d times, want 1 (debounced)", len(calls))
	}
	if len(calls[0]) == 0 {
		t.Errorf("callback received no changed paths")
	}
}

// SPDX-License-Identifier: MPL-2.0

package site

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// MarkerFileName is the empty file touched inside the output directory so
// the hosting platform serves the rendered HTML as-is instead of running it
// through its default preprocessor.
const MarkerFileName = ".nojekyll"

type (
	// Output is the directory the external benchmark runner renders into.
	Output struct {
		// Dir is the output directory path.
		Dir string
	}

	// Summary describes the current contents of the output directory.
	Summary struct {
		Files      int
		Dirs       int
		TotalBytes int64
		HasMarker  bool
		Newest     time.Time
	}
)

// Exists reports whether the output directory is present.
func (o Output) Exists() bool {
	info, err := os.Stat(o.Dir)
	return err == nil && info.IsDir()
}

// Clean removes the output directory and everything under it.
// Removing an absent directory is a successful no-op.
func (o Output) Clean() error {
	if err := os.RemoveAll(o.Dir); err != nil {
		return fmt.Errorf("failed to remove output directory %s: %w", o.Dir, err)
	}
	return nil
}

// WriteMarker creates the empty marker file inside the output directory,
// truncating any existing one. The marker carries no content.
func (o Output) WriteMarker() error {
	path := filepath.Join(o.Dir, MarkerFileName)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", MarkerFileName, err)
	}
	return nil
}

// MarkerPath returns the path the marker file lives at.
func (o Output) MarkerPath() string {
	return filepath.Join(o.Dir, MarkerFileName)
}

// Summarize walks the output directory and reports what the runner produced.
func (o Output) Summarize() (Summary, error) {
	var sum Summary

	err := filepath.WalkDir(o.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != o.Dir {
				sum.Dirs++
			}
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		sum.Files++
		sum.TotalBytes += info.Size()
		if info.ModTime().After(sum.Newest) {
			sum.Newest = info.ModTime()
		}
		if d.Name() == MarkerFileName && filepath.Dir(path) == filepath.Clean(o.Dir) {
			sum.HasMarker = true
		}
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to summarize output directory %s: %w", o.Dir, err)
	}

	return sum, nil
}

// SPDX-License-Identifier: MPL-2.0

// Package site manages the rendered results directory and publishes it as a
// static site branch.
//
// The output directory is created and populated entirely by the external
// benchmark runner; this package only observes it, removes it on clean, and
// imports it into a fresh single-commit gh-pages history on publish.
package site

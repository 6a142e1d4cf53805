// SPDX-License-Identifier: MPL-2.0

// Package issue provides structured, user-facing errors for the benchsite CLI.
//
// Orchestration failures here are almost always environmental (a missing
// output directory, a runner binary not on PATH, a git push rejected), so
// errors carry the failed operation, the resource involved, and concrete
// suggestions for the user alongside the underlying cause.
package issue

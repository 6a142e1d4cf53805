// SPDX-License-Identifier: MPL-2.0

// Package runner invokes the external benchmark runner as a subprocess and
// runs user-defined hook scripts in an embedded POSIX shell.
//
// The external runner is an opaque collaborator: this package builds its
// command line, wires standard IO through, and propagates its exit code
// untranslated. No retries, no output parsing, no result interpretation.
package runner

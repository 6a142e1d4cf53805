// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for benchsite.
//
// This package implements the Cobra command hierarchy: the root command,
// the render/clean/publish orchestration commands, the report and watch
// conveniences, and configuration inspection.
package cmd

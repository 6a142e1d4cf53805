// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates benchsite configuration.
//
// Configuration lives in a CUE file (config.cue in the platform config
// directory, or benchsite.cue in the working directory), validated against
// the embedded schema and merged into Viper over the built-in defaults.
// Every value has a working default; a missing config file is not an error.
package config

// SPDX-License-Identifier: MPL-2.0

package config

var (
	// configDirOverride allows tests to override the config directory.
	// os.UserHomeDir() does not reliably respect the HOME environment
	// variable on all platforms (e.g., macOS in CI), so tests set this
	// instead of manipulating HOME.
	configDirOverride string

	// configFilePathOverride is a config file path set via the --config flag.
	configFilePathOverride string
)

// Reset clears overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
	configFilePathOverride = ""
}

// SetConfigDirOverride sets a custom config directory path, primarily for tests.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetConfigFilePathOverride sets an explicit config file path (--config flag).
// When set, that file is loaded exclusively and must exist.
func SetConfigFilePathOverride(path string) {
	configFilePathOverride = path
}

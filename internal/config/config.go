// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/benchopt/results/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "benchsite"
	// ConfigFileName is the config file name inside the config directory.
	ConfigFileName = "config.cue"
	// LocalConfigFileName is the per-project config file looked up in the
	// working directory.
	LocalConfigFileName = "benchsite.cue"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the benchsite configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// Load reads configuration from defaults, the config file (if any), and
// BENCHSITE_* environment variables, then validates the result.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("benchmark_root", defaults.BenchmarkRoot)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("runner.command", defaults.Runner.Command)
	v.SetDefault("runner.args", defaults.Runner.Args)
	v.SetDefault("publish.remote", defaults.Publish.Remote)
	v.SetDefault("publish.branch", defaults.Publish.Branch)
	v.SetDefault("publish.commit_message", defaults.Publish.CommitMessage)
	v.SetDefault("hooks.pre_render", defaults.Hooks.PreRender)
	v.SetDefault("hooks.post_render", defaults.Hooks.PostRender)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix("BENCHSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// An explicit --config path is used exclusively and must exist.
	if configFilePathOverride != "" {
		if !fileExists(configFilePathOverride) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFilePathOverride).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'benchsite config init' to create a config file").
				Wrap(fmt.Errorf("config file not found")).
				BuildError()
		}
		if err := loadCUEIntoViper(v, configFilePathOverride); err != nil {
			return nil, wrapConfigParseError(err, configFilePathOverride)
		}
	} else if path, err := findConfigFile(); err != nil {
		return nil, err
	} else if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, wrapConfigParseError(err, path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Run 'benchsite config show' to inspect the effective configuration").
			Wrap(err).
			BuildError()
	}

	return &cfg, nil
}

// findConfigFile returns the first existing config file: the one in the
// platform config directory, then the per-project file in the working
// directory. An empty path with a nil error means no config file exists.
func findConfigFile() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	dirPath := filepath.Join(cfgDir, ConfigFileName)
	if fileExists(dirPath) {
		return dirPath, nil
	}
	if fileExists(LocalConfigFileName) {
		return LocalConfigFileName, nil
	}
	return "", nil
}

func wrapConfigParseError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the values match the expected schema").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper.
//
// The decode target is map[string]any rather than Config so the values merge
// over Viper's defaults and stay overridable by environment variables.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	cuectx := cuecontext.New()

	schemaValue := cuectx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := cuectx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("failed to parse %s: %w", path, userValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	// Concrete(false) because all config fields are optional.
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file into the config
// directory unless one already exists. Returns the file path.
func CreateDefaultConfig() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// benchsite configuration file\n\n")

	sb.WriteString(fmt.Sprintf("benchmark_root: %q\n", cfg.BenchmarkRoot))
	sb.WriteString(fmt.Sprintf("output_dir: %q\n", cfg.OutputDir))

	sb.WriteString("\nrunner: {\n")
	sb.WriteString(fmt.Sprintf("\tcommand: %q\n", cfg.Runner.Command))
	if len(cfg.Runner.Args) > 0 {
		sb.WriteString("\targs: [")
		for i, arg := range cfg.Runner.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%q", arg))
		}
		sb.WriteString("]\n")
	}
	sb.WriteString("}\n")

	sb.WriteString("\npublish: {\n")
	sb.WriteString(fmt.Sprintf("\tremote: %q\n", cfg.Publish.Remote))
	sb.WriteString(fmt.Sprintf("\tbranch: %q\n", cfg.Publish.Branch))
	sb.WriteString(fmt.Sprintf("\tcommit_message: %q\n", cfg.Publish.CommitMessage))
	sb.WriteString("}\n")

	if cfg.Hooks.PreRender != "" || cfg.Hooks.PostRender != "" {
		sb.WriteString("\nhooks: {\n")
		if cfg.Hooks.PreRender != "" {
			sb.WriteString(fmt.Sprintf("\tpre_render: %q\n", cfg.Hooks.PreRender))
		}
		if cfg.Hooks.PostRender != "" {
			sb.WriteString(fmt.Sprintf("\tpost_render: %q\n", cfg.Hooks.PostRender))
		}
		sb.WriteString("}\n")
	}

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}

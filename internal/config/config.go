// Package config loads workspace settings from abl.toml.
package config

import "path/filepath"

// Config is the workspace configuration. Propath and Dumpfile accept either
// a single string or an array in the file.
type Config struct {
	Propath     []string          `mapstructure:"propath"`
	Dumpfile    []string          `mapstructure:"dumpfile"`
	Completion  CompletionConfig  `mapstructure:"completion"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
}

// CompletionConfig toggles the completion surface.
type CompletionConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DiagnosticsConfig toggles the diagnostics engine and its individual checks.
type DiagnosticsConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	UnknownVariables FeatureConfig `mapstructure:"unknown_variables"`
	UnknownFunctions FeatureConfig `mapstructure:"unknown_functions"`
	TypeChecks       FeatureConfig `mapstructure:"type_checks"`
}

// FeatureConfig configures one diagnostic check. Exclude holds glob patterns
// matched against file paths; Ignore holds symbol names never flagged.
type FeatureConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Exclude []string `mapstructure:"exclude"`
	Ignore  []string `mapstructure:"ignore"`
}

// Default returns the configuration used when abl.toml is absent: everything
// enabled, no propath beyond the workspace root, no schema dumps.
func Default() *Config {
	return &Config{
		Completion: CompletionConfig{Enabled: true},
		Diagnostics: DiagnosticsConfig{
			Enabled:          true,
			UnknownVariables: FeatureConfig{Enabled: true},
			UnknownFunctions: FeatureConfig{Enabled: true},
			TypeChecks:       FeatureConfig{Enabled: true},
		},
	}
}

// ResolvePath interprets a configured path against the workspace root.
// Absolute paths pass through unchanged.
func ResolvePath(workspaceRoot, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspaceRoot, path)
}

// ResolvedPropath returns the propath entries resolved against the root.
func (c *Config) ResolvedPropath(workspaceRoot string) []string {
	out := make([]string, 0, len(c.Propath))
	for _, entry := range c.Propath {
		out = append(out, ResolvePath(workspaceRoot, entry))
	}
	return out
}

// ResolvedDumpfiles returns the schema dump paths resolved against the root.
func (c *Config) ResolvedDumpfiles(workspaceRoot string) []string {
	out := make([]string, 0, len(c.Dumpfile))
	for _, entry := range c.Dumpfile {
		out = append(out, ResolvePath(workspaceRoot, entry))
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from abl.toml and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	workspaceRoot string
}

// NewLoader creates a configuration loader for the given workspace root.
func NewLoader(workspaceRoot string) Loader {
	return &loader{workspaceRoot: workspaceRoot}
}

func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configFile := filepath.Join(l.workspaceRoot, "abl.toml")
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")

	v.SetEnvPrefix("ABL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.BindEnv("propath")
	v.BindEnv("dumpfile")
	v.BindEnv("completion.enabled")
	v.BindEnv("diagnostics.enabled")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing abl.toml is fine; the workspace just runs on defaults.
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(stringToSliceHook())); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("completion.enabled", defaults.Completion.Enabled)
	v.SetDefault("diagnostics.enabled", defaults.Diagnostics.Enabled)
	v.SetDefault("diagnostics.unknown_variables.enabled", defaults.Diagnostics.UnknownVariables.Enabled)
	v.SetDefault("diagnostics.unknown_functions.enabled", defaults.Diagnostics.UnknownFunctions.Enabled)
	v.SetDefault("diagnostics.type_checks.enabled", defaults.Diagnostics.TypeChecks.Enabled)
}

// stringToSliceHook lets propath and dumpfile be written as either a single
// string or an array in abl.toml.
func stringToSliceHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
			return data, nil
		}
		if to.Elem().Kind() != reflect.String {
			return data, nil
		}
		s, ok := data.(string)
		if !ok || s == "" {
			return []string{}, nil
		}
		return []string{s}, nil
	}
}

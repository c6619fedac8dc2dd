package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (RUBYSCOPE_*)
// 2. Config file (.rubyscope/config.yml or .rubyscope/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".rubyscope")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Enable environment variable overrides
	v.SetEnvPrefix("RUBYSCOPE")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., RUBYSCOPE_ENGINE_MAX_NODES)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("engine.max_nodes")
	v.BindEnv("engine.sort_verify")
	v.BindEnv("cache.enabled")
	v.BindEnv("cache.capacity")
	v.BindEnv("cache.ttl_seconds")
	v.BindEnv("output.format")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.ruby", defaults.Paths.Ruby)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)

	v.SetDefault("engine.max_nodes", defaults.Engine.MaxNodes)
	v.SetDefault("engine.sort_verify", defaults.Engine.SortVerify)

	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.capacity", defaults.Cache.Capacity)
	v.SetDefault("cache.ttl_seconds", defaults.Cache.TTLSeconds)

	v.SetDefault("output.format", defaults.Output.Format)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

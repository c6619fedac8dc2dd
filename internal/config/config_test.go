package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Defaults load without any config file
// - Config file values override defaults
// - Environment variables override the config file
// - Validation rejects bad budgets, cache settings, and output formats

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Contains(t, cfg.Paths.Ruby, "**/*.rb")
	assert.Contains(t, cfg.Paths.Ignore, "vendor/**")
	assert.Equal(t, 500000, cfg.Engine.MaxNodes)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	configDir := filepath.Join(root, ".rubyscope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	yaml := `engine:
  max_nodes: 1000
cache:
  enabled: false
output:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(yaml), 0o644))

	cfg, err := NewLoader(root).Load()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Engine.MaxNodes)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Contains(t, cfg.Paths.Ruby, "**/*.rb", "unset sections keep defaults")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("RUBYSCOPE_ENGINE_MAX_NODES", "42")
	t.Setenv("RUBYSCOPE_OUTPUT_FORMAT", "json")

	cfg, err := NewLoader(t.TempDir()).Load()
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Engine.MaxNodes)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Engine.MaxNodes = -1
	assert.ErrorIs(t, Validate(cfg), ErrInvalidMaxNodes)

	cfg = Default()
	cfg.Cache.Capacity = 0
	assert.ErrorIs(t, Validate(cfg), ErrInvalidCacheSettings)

	cfg = Default()
	cfg.Output.Format = "xml"
	assert.ErrorIs(t, Validate(cfg), ErrInvalidFormat)

	cfg = Default()
	cfg.Paths.Ruby = nil
	assert.ErrorIs(t, Validate(cfg), ErrNoRubyPatterns)
}

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Engine.MaxNodes = -1
	cfg.Output.Format = "xml"

	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_nodes")
	assert.Contains(t, err.Error(), "output format")
}

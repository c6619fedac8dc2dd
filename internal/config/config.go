package config

// Config represents the complete rubyscope configuration.
// It can be loaded from .rubyscope/config.yml with environment variable overrides.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Engine EngineConfig `yaml:"engine" mapstructure:"engine"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// PathsConfig defines which files to outline and which to ignore.
type PathsConfig struct {
	Ruby   []string `yaml:"ruby" mapstructure:"ruby"`     // glob patterns for Ruby files
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to ignore
}

// EngineConfig tunes the extraction engine.
type EngineConfig struct {
	MaxNodes   int  `yaml:"max_nodes" mapstructure:"max_nodes"`     // node budget per file, 0 = unbounded
	SortVerify bool `yaml:"sort_verify" mapstructure:"sort_verify"` // log containment violations
}

// CacheConfig defines outline caching behavior for the MCP server.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int  `yaml:"capacity" mapstructure:"capacity"`       // max cached outlines
	TTLSeconds int  `yaml:"ttl_seconds" mapstructure:"ttl_seconds"` // entry lifetime
}

// OutputConfig controls CLI output rendering.
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"` // "text" or "json"
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Ruby: []string{
				"**/*.rb",
				"**/*.rake",
				"**/Rakefile",
				"**/Gemfile",
			},
			Ignore: []string{
				"vendor/**",
				"node_modules/**",
				".git/**",
				"tmp/**",
				"log/**",
				"coverage/**",
			},
		},
		Engine: EngineConfig{
			MaxNodes:   500000,
			SortVerify: false,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Capacity:   1024,
			TTLSeconds: 300,
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

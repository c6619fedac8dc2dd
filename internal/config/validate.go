package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMaxNodes indicates a negative node budget
	ErrInvalidMaxNodes = errors.New("invalid max_nodes")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrNoRubyPatterns indicates an empty ruby pattern list
	ErrNoRubyPatterns = errors.New("no ruby patterns")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}
	if err := validateEngine(&cfg.Engine); err != nil {
		errs = append(errs, err)
	}
	if err := validateCache(&cfg.Cache); err != nil {
		errs = append(errs, err)
	}
	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	if len(cfg.Ruby) == 0 {
		return fmt.Errorf("%w: at least one pattern required", ErrNoRubyPatterns)
	}
	return nil
}

func validateEngine(cfg *EngineConfig) error {
	// Zero means unbounded; only negative budgets are invalid.
	if cfg.MaxNodes < 0 {
		return fmt.Errorf("%w: max_nodes cannot be negative, got %d", ErrInvalidMaxNodes, cfg.MaxNodes)
	}
	return nil
}

func validateCache(cfg *CacheConfig) error {
	var errs []error

	if cfg.Enabled && cfg.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("%w: capacity must be positive when enabled, got %d", ErrInvalidCacheSettings, cfg.Capacity))
	}
	if cfg.TTLSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: ttl_seconds cannot be negative, got %d", ErrInvalidCacheSettings, cfg.TTLSeconds))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}
	return nil
}

func validateOutput(cfg *OutputConfig) error {
	format := strings.ToLower(cfg.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("%w: must be 'text' or 'json', got '%s'", ErrInvalidFormat, cfg.Format)
	}
	return nil
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

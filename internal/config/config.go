// Package config loads project-level planscope settings from a TOML file at
// the discovery root. Every field is optional; accessors are nil-safe and
// return defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file looked up at the discovery root.
const FileName = ".planscope.toml"

// DefaultDebounce is the watch debounce applied when none is configured.
const DefaultDebounce = 250 * time.Millisecond

// WatchConfig tunes live-reload behavior.
type WatchConfig struct {
	// Debounce is a Go duration string ("250ms"). Collapses editor
	// write bursts into one reload.
	Debounce string `toml:"debounce,omitempty"`
}

// Config is the project configuration.
type Config struct {
	// Patterns are base-name globs that identify checklist files.
	// Default: PLAN.md, TODO.md, *.plan.md.
	Patterns []string `toml:"patterns,omitempty"`

	// Exclude lists directory names and path globs skipped during
	// discovery. Default: .git, node_modules, vendor.
	Exclude []string `toml:"exclude,omitempty"`

	// MaxDepth limits directory recursion. nil/absent = default (0,
	// unlimited). Explicit values below zero are rejected by Load.
	MaxDepth *int `toml:"max_depth,omitempty"`

	Watch WatchConfig `toml:"watch,omitempty"`
}

// Default returns a Config with stock settings.
func Default() *Config {
	return &Config{
		Patterns: []string{"PLAN.md", "TODO.md", "*.plan.md"},
		Exclude:  []string{".git", "node_modules", "vendor"},
	}
}

// GetPatterns returns the configured patterns or the defaults if unset.
func (c *Config) GetPatterns() []string {
	if c == nil || len(c.Patterns) == 0 {
		return Default().Patterns
	}
	return c.Patterns
}

// GetExclude returns the configured exclusions or the defaults if unset.
func (c *Config) GetExclude() []string {
	if c == nil || len(c.Exclude) == 0 {
		return Default().Exclude
	}
	return c.Exclude
}

// GetMaxDepth returns MaxDepth or 0 (unlimited) if unset.
func (c *Config) GetMaxDepth() int {
	if c == nil || c.MaxDepth == nil {
		return 0
	}
	return *c.MaxDepth
}

// GetDebounce returns the watch debounce as a duration, defaulting to 250ms.
func (c *Config) GetDebounce() time.Duration {
	if c == nil || c.Watch.Debounce == "" {
		return DefaultDebounce
	}
	return ParseDurationOrDefault(c.Watch.Debounce, DefaultDebounce)
}

// ParseDurationOrDefault parses a Go duration string, returning fallback on
// error or empty input.
func ParseDurationOrDefault(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if cfg.MaxDepth != nil && *cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("config %s: max_depth must be >= 0, got %d", path, *cfg.MaxDepth)
	}
	return &cfg, nil
}

// LoadFromDir loads FileName from dir, returning defaults when the file does
// not exist.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

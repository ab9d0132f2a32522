// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package config

import (
	"fmt"

	"github.com/feedrank/feedrank/internal/ranking"
)

// Config is the root application configuration.
type Config struct {
	// Logging configures the global zerolog logger.
	Logging LoggingConfig `koanf:"logging"`

	// Database configures the DuckDB content/interaction store.
	Database DatabaseConfig `koanf:"database"`

	// Cache configures the optional Badger response cache.
	Cache CacheConfig `koanf:"cache"`

	// Ranking configures the ranking engine itself.
	Ranking ranking.Config `koanf:"ranking"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// DatabaseConfig configures the DuckDB store.
type DatabaseConfig struct {
	// Path is the database file. Empty means in-memory.
	Path string `koanf:"path"`

	// MaxMemory is the DuckDB memory limit (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// CacheConfig configures the optional response cache.
type CacheConfig struct {
	// Enabled toggles the cache layer entirely.
	Enabled bool `koanf:"enabled"`

	// Path is the Badger directory. Empty means in-memory.
	Path string `koanf:"path"`
}

// Default returns the built-in defaults, applied before config file and
// environment overrides.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Database: DatabaseConfig{
			Path:      "/data/feedrank.duckdb",
			MaxMemory: "2GB",
			Threads:   0,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    "/data/feedrank-cache",
		},
		Ranking: *ranking.DefaultConfig(),
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Database.MaxMemory == "" {
		return fmt.Errorf("database.max_memory must not be empty")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must not be negative, got %d", c.Database.Threads)
	}
	if err := c.Ranking.Validate(); err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	return nil
}

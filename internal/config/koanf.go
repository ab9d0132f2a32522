// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/feedrank/config.yaml",
	"/etc/feedrank/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "FEEDRANK_CONFIG"

// Load builds the configuration from three layers, lowest priority first:
// built-in defaults, the config file (if any), and environment variables.
func Load() (*Config, error) {
	return LoadFile(findConfigFile())
}

// LoadFile is Load with an explicit config file path. An empty path skips
// the file layer.
func LoadFile(configPath string) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: built-in defaults.
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file.
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority).
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so random environment doesn't pollute the
// config.
//
// Examples:
//   - LOG_LEVEL -> logging.level
//   - DUCKDB_PATH -> database.path
//   - RANKING_CACHE_TTL -> ranking.cache.ttl
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Database mappings
		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",

		// Response cache mappings
		"cache_enabled": "cache.enabled",
		"cache_path":    "cache.path",

		// Ranking engine mappings
		"ranking_max_limit":          "ranking.limits.max_limit",
		"ranking_max_candidates":     "ranking.limits.max_candidates",
		"ranking_rating_window":      "ranking.limits.rating_window",
		"ranking_interaction_window": "ranking.limits.interaction_window",
		"ranking_exclusion_window":   "ranking.limits.exclusion_window",
		"ranking_store_timeout":      "ranking.limits.store_timeout",
		"ranking_entity_bonus":       "ranking.bonuses.preferred_entity",
		"ranking_topic_bonus":        "ranking.bonuses.preferred_topic",
		"ranking_cache_enabled":      "ranking.cache.enabled",
		"ranking_cache_ttl":          "ranking.cache.ttl",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}

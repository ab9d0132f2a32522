// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"fmt"
	"time"
)

// DefaultLimit is the page size callers should apply when the client did not
// ask for one. The engine itself rejects a zero limit; defaulting is the
// caller's decision.
const DefaultLimit = 20

// Config contains all configuration for the ranking engine.
type Config struct {
	// Limits contains operational bounds and windows.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Bonuses contains the fixed weights added for declared preferences.
	Bonuses BonusConfig `json:"bonuses" koanf:"bonuses"`

	// Cache contains response-cache parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`
}

// LimitsConfig contains operational bounds and signal windows.
type LimitsConfig struct {
	// MaxLimit caps the page size of a single request.
	// Default: 100.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`

	// MaxCandidates is the candidate pool size.
	// Default: 100.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`

	// RatingWindow is how many recent rating events feed the profile.
	// Default: 100.
	RatingWindow int `json:"rating_window" koanf:"rating_window"`

	// InteractionWindow is how many recent interaction events feed the
	// profile. Default: 200.
	InteractionWindow int `json:"interaction_window" koanf:"interaction_window"`

	// ExclusionWindow is how many of the most recently rated items are
	// excluded from candidates. Items rated before the window may reappear.
	// Default: 50.
	ExclusionWindow int `json:"exclusion_window" koanf:"exclusion_window"`

	// StoreTimeout bounds each collaborator store call. A timed-out call is
	// a StoreUnavailable error, never a hang. Default: 10s.
	StoreTimeout time.Duration `json:"store_timeout" koanf:"store_timeout"`
}

// BonusConfig contains the fixed weights added for declared preferences.
// Explicit intent outweighs inferred intent.
type BonusConfig struct {
	// PreferredEntity is added to the profile weight of every explicitly
	// preferred entity name. Default: 5.
	PreferredEntity float64 `json:"preferred_entity" koanf:"preferred_entity"`

	// PreferredTopic is added to the profile weight of every explicitly
	// preferred topic name. Default: 3.
	PreferredTopic float64 `json:"preferred_topic" koanf:"preferred_topic"`
}

// CacheConfig contains response-cache parameters.
type CacheConfig struct {
	// Enabled toggles response caching. Ignored when no cache is attached.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is how long cached pages stay fresh. Default: 5m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`
}

// DefaultConfig returns the configuration matching the tuned production
// behavior.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			MaxLimit:          100,
			MaxCandidates:     100,
			RatingWindow:      100,
			InteractionWindow: 200,
			ExclusionWindow:   50,
			StoreTimeout:      10 * time.Second,
		},
		Bonuses: BonusConfig{
			PreferredEntity: 5,
			PreferredTopic:  3,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Limits.MaxLimit <= 0 {
		return fmt.Errorf("limits.max_limit must be positive, got %d", c.Limits.MaxLimit)
	}
	if c.Limits.MaxCandidates <= 0 {
		return fmt.Errorf("limits.max_candidates must be positive, got %d", c.Limits.MaxCandidates)
	}
	if c.Limits.RatingWindow <= 0 {
		return fmt.Errorf("limits.rating_window must be positive, got %d", c.Limits.RatingWindow)
	}
	if c.Limits.InteractionWindow <= 0 {
		return fmt.Errorf("limits.interaction_window must be positive, got %d", c.Limits.InteractionWindow)
	}
	if c.Limits.ExclusionWindow < 0 {
		return fmt.Errorf("limits.exclusion_window must not be negative, got %d", c.Limits.ExclusionWindow)
	}
	if c.Limits.StoreTimeout <= 0 {
		return fmt.Errorf("limits.store_timeout must be positive, got %s", c.Limits.StoreTimeout)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when cache is enabled, got %s", c.Cache.TTL)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

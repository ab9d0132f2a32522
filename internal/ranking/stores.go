// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"context"
	"time"
)

// Note: This package has no dependencies on other internal packages. The
// store interfaces below allow integration with the database and cache
// layers without creating circular imports.

// ContentStore provides read access to content items and sources.
type ContentStore interface {
	// ListCandidates returns up to limit non-archived items, most recent
	// first, excluding the given content IDs. An empty result is not an error.
	ListCandidates(ctx context.Context, excludeIDs []string, limit int) ([]ContentItem, error)

	// GetContentBatch returns the items with the given IDs. Unknown IDs are
	// silently omitted.
	GetContentBatch(ctx context.Context, ids []string) ([]ContentItem, error)

	// GetSource returns a source by ID.
	GetSource(ctx context.Context, sourceID string) (SourceRef, error)
}

// RatingStore provides read access to explicit rating events.
type RatingStore interface {
	// ListRatings returns up to limit rating events, most recent first.
	// An empty userID means all users.
	ListRatings(ctx context.Context, userID string, limit int) ([]RatingEvent, error)

	// ListRatingsForContent returns all rating events for one item,
	// across all users.
	ListRatingsForContent(ctx context.Context, contentID string) ([]RatingEvent, error)
}

// InteractionStore provides read access to implicit interaction events.
type InteractionStore interface {
	// ListInteractions returns up to limit interaction events, most recent
	// first. An empty userID means all users.
	ListInteractions(ctx context.Context, userID string, limit int) ([]InteractionEvent, error)

	// CountCommunityInteractions returns, per content ID, the number of
	// events of the given kinds across all users. One grouped aggregation,
	// never a query per candidate.
	CountCommunityInteractions(ctx context.Context, contentIDs []string, kinds []InteractionKind) (map[string]int, error)
}

// SettingsStore provides read access to declared user preferences.
type SettingsStore interface {
	// GetUserPreferences returns the user's settings, or nil when the user
	// has none.
	GetUserPreferences(ctx context.Context, userID string) (*UserPreferenceSettings, error)
}

// ResponseCache is the optional response accelerator. Implementations must
// never be load-bearing: any error is treated as a miss and the request is
// computed in full.
type ResponseCache interface {
	// Get returns the cached payload for key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the payload under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MetricsSink receives engine observations. Injected rather than accumulated
// in package-level state so callers control registration and lifetime.
type MetricsSink interface {
	// ObserveRequest records a completed ranking request on the given path.
	ObserveRequest(path Path, d time.Duration)

	// CacheHit records a response-cache hit.
	CacheHit()

	// CacheMiss records a response-cache miss or bypass.
	CacheMiss()

	// StoreError records a degraded (non-fatal) store call.
	StoreError(op string)
}

// NopMetrics is a MetricsSink that discards all observations.
type NopMetrics struct{}

// ObserveRequest implements MetricsSink.
func (NopMetrics) ObserveRequest(Path, time.Duration) {}

// CacheHit implements MetricsSink.
func (NopMetrics) CacheHit() {}

// CacheMiss implements MetricsSink.
func (NopMetrics) CacheMiss() {}

// StoreError implements MetricsSink.
func (NopMetrics) StoreError(string) {}

var _ MetricsSink = NopMetrics{}

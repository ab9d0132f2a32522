// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"time"
)

// InteractionKind classifies user-content interactions.
type InteractionKind string

const (
	// KindView indicates the content was opened and read.
	KindView InteractionKind = "view"
	// KindClick indicates the content link was clicked.
	KindClick InteractionKind = "click"
	// KindRate indicates an explicit rating was submitted.
	KindRate InteractionKind = "rate"
	// KindShare indicates the content was shared.
	KindShare InteractionKind = "share"
	// KindSave indicates the content was saved for later.
	KindSave InteractionKind = "save"
)

// SourceRef identifies the publication a content item came from.
// Owned by the ingestion pipeline; read-only here.
type SourceRef struct {
	// ID is the unique source identifier.
	ID string `json:"id"`

	// Name is the display name of the publication.
	Name string `json:"name"`

	// Credibility is the editorial trust rating (0-10).
	Credibility float64 `json:"credibility"`
}

// ContentItem is a candidate article. Items are created by ingestion and
// archived by retention, both external; the engine never mutates them.
type ContentItem struct {
	// ID is the unique content identifier.
	ID string `json:"id"`

	// Title is the article headline.
	Title string `json:"title"`

	// Summary is a short abstract of the article.
	Summary string `json:"summary,omitempty"`

	// Body is the full article text.
	Body string `json:"body,omitempty"`

	// Source is the publication the item came from.
	Source SourceRef `json:"source"`

	// Credibility is the trust rating propagated from the source (0-10).
	Credibility float64 `json:"credibility"`

	// PublishedAt is the publish timestamp.
	PublishedAt time.Time `json:"published_at"`

	// Categories is the set of topic tags.
	Categories []string `json:"categories,omitempty"`

	// Celebrities is the set of entity tags (named people/subjects).
	Celebrities []string `json:"celebrities,omitempty"`

	// Archived marks items removed from circulation by retention.
	Archived bool `json:"archived,omitempty"`
}

// RatingEvent is an explicit 1-5 rating of a content item.
// A user may rate the same item multiple times; only the most recent one
// counts for already-judged exclusion, but all events inside the recent
// window contribute preference weight.
type RatingEvent struct {
	// UserID is the rating user.
	UserID string `json:"user_id"`

	// ContentID is the rated item.
	ContentID string `json:"content_id"`

	// Rating is the integer rating (1-5).
	Rating int `json:"rating"`

	// CreatedAt is when the rating was submitted.
	CreatedAt time.Time `json:"created_at"`
}

// InteractionEvent is an implicit signal created on each user action.
// Events older than 90 days are pruned by an external retention process.
type InteractionEvent struct {
	// UserID is the acting user. Empty for anonymous interactions.
	UserID string `json:"user_id,omitempty"`

	// ContentID is the item interacted with.
	ContentID string `json:"content_id"`

	// Kind classifies the interaction.
	Kind InteractionKind `json:"kind"`

	// DurationSeconds is how long the interaction lasted, when known.
	DurationSeconds float64 `json:"duration_seconds,omitempty"`

	// Metadata is optional free-form context.
	Metadata string `json:"metadata,omitempty"`

	// CreatedAt is when the interaction occurred.
	CreatedAt time.Time `json:"created_at"`
}

// UserPreferenceSettings holds the user's declared preferences.
// Created and updated explicitly by the user; read-only to the engine.
type UserPreferenceSettings struct {
	// UserID is the owning user.
	UserID string `json:"user_id"`

	// PreferredCelebrities is the set of explicitly preferred entity names.
	PreferredCelebrities []string `json:"preferred_celebrities,omitempty"`

	// PreferredCategories is the set of explicitly preferred topic names.
	PreferredCategories []string `json:"preferred_categories,omitempty"`
}

// InteractionPattern is the per-item implicit signal record tallied from a
// user's recent interaction events.
type InteractionPattern struct {
	// Views is the number of view events.
	Views int `json:"views"`

	// Clicks is the number of click events.
	Clicks int `json:"clicks"`

	// AvgDuration is a smoothed duration in seconds. Each new duration d
	// updates it as (old + d) / 2, which weights recent events heavier than
	// a true mean. Kept verbatim for behavioral parity with rating history
	// already collected under this rule.
	AvgDuration float64 `json:"avg_duration"`
}

// PreferenceProfile is the request-scoped weighted preference model built
// fresh for each ranking call. It is never persisted.
type PreferenceProfile struct {
	// Entities maps entity tag name to signed preference weight.
	Entities map[string]float64

	// Topics maps topic tag name to signed preference weight.
	Topics map[string]float64

	// Sources maps source name to signed preference weight.
	Sources map[string]float64

	// Patterns maps content ID to the user's interaction-pattern record.
	Patterns map[string]InteractionPattern

	// RatingCount is the number of rating events the profile was built from.
	// Zero selects the cold-start path regardless of interaction history.
	RatingCount int
}

// ScoredItem is a candidate with its computed score. Request-scoped.
type ScoredItem struct {
	// Item is the candidate content item.
	Item ContentItem `json:"item"`

	// Score is the final summed score.
	Score float64 `json:"score"`

	// Terms is the per-term breakdown of the score. The model is a linear,
	// explainable function; the breakdown is what makes it auditable.
	Terms map[string]float64 `json:"terms,omitempty"`
}

// Path selects the control flow for a ranking request. It is decided once,
// at the top of the request, based solely on whether rating history exists.
type Path int

const (
	// PathPersonalized applies the full weighted multi-factor scoring.
	PathPersonalized Path = iota
	// PathColdStart applies the credibility-and-recency heuristic.
	PathColdStart
)

// String returns a human-readable path name.
func (p Path) String() string {
	switch p {
	case PathPersonalized:
		return "personalized"
	case PathColdStart:
		return "cold_start"
	default:
		return "unknown"
	}
}

// Request is a ranking request.
type Request struct {
	// UserID is the requesting user. Empty means anonymous: the profile is
	// built from community-wide history and nothing is excluded.
	UserID string `json:"user_id,omitempty"`

	// Limit is the page size. Must be positive; capped at Config.Limits.MaxLimit.
	Limit int `json:"limit"`

	// Offset is the zero-based position of the first returned item.
	Offset int `json:"offset,omitempty"`

	// Cursor is the ID of the last item of the previous page. When set it
	// overrides Offset: the page starts immediately after that item in the
	// freshly ranked pool. An unknown cursor starts from the beginning.
	Cursor string `json:"cursor,omitempty"`

	// RequestID is a unique identifier for tracing. Generated when empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of a ranking request.
type Response struct {
	// Items is the score-ordered page.
	Items []ScoredItem `json:"items"`

	// TotalCandidates is the size of the pool that was ranked.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// UserID is the user the feed was ranked for.
	UserID string `json:"user_id,omitempty"`

	// Path is the control flow taken: personalized or cold_start.
	Path string `json:"path"`

	// LatencyMS is the total ranking latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

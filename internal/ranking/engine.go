// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Engine orchestrates the ranking pipeline: profile building, candidate
// retrieval, aggregation, scoring, and pagination. It holds no per-request
// state and is safe for concurrent use. It never writes to any store.
type Engine struct {
	config *Config
	logger zerolog.Logger

	content      ContentStore
	ratings      RatingStore
	interactions InteractionStore
	settings     SettingsStore

	// cache is the optional response accelerator. May be nil.
	cache ResponseCache

	metrics MetricsSink

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// Stores bundles the collaborator read interfaces the engine consumes.
type Stores struct {
	Content      ContentStore
	Ratings      RatingStore
	Interactions InteractionStore
	Settings     SettingsStore
}

// NewEngine creates a ranking engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, stores Stores, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if stores.Content == nil || stores.Ratings == nil || stores.Interactions == nil || stores.Settings == nil {
		return nil, fmt.Errorf("all stores must be set")
	}

	return &Engine{
		config:       cfg,
		logger:       logger.With().Str("component", "ranking").Logger(),
		content:      stores.Content,
		ratings:      stores.Ratings,
		interactions: stores.Interactions,
		settings:     stores.Settings,
		metrics:      NopMetrics{},
		now:          time.Now,
	}, nil
}

// SetResponseCache attaches the optional response cache.
func (e *Engine) SetResponseCache(c ResponseCache) {
	e.cache = c
}

// SetMetricsSink replaces the metrics sink. A nil sink disables metrics.
func (e *Engine) SetMetricsSink(m MetricsSink) {
	if m == nil {
		m = NopMetrics{}
	}
	e.metrics = m
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// GetRankedFeed returns the score-ordered page [offset, offset+limit) of the
// user's feed. An empty userID ranks for an anonymous user. This is the
// public contract consumed by the transport layer.
func (e *Engine) GetRankedFeed(ctx context.Context, userID string, limit, offset int) ([]ScoredItem, error) {
	resp, err := e.Rank(ctx, Request{UserID: userID, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Rank executes one ranking request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Rank(ctx context.Context, req Request) (*Response, error) {
	start := e.now()

	if err := validateRequest(req); err != nil {
		return nil, err
	}
	req = e.prepareRequest(req)
	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing ranking request")

	if resp := e.tryGetCachedResponse(ctx, req, start, logger); resp != nil {
		return resp, nil
	}

	hist := e.fetchHistory(ctx, req.UserID, logger)
	profile := buildProfile(e.config, hist.ratings, hist.ratedContent, hist.interactions, hist.settings)

	// The two-path control flow is decided exactly once, on rating history
	// alone. Interaction history never flips it.
	path := PathPersonalized
	if profile.RatingCount == 0 {
		path = PathColdStart
	}

	candidates, err := e.retrieveCandidates(ctx, req, hist.ratings)
	if err != nil {
		return nil, err
	}

	var ranked []ScoredItem
	switch path {
	case PathColdStart:
		ranked = coldStartRank(candidates, start)
	default:
		ids := make([]string, len(candidates))
		for i := range candidates {
			ids[i] = candidates[i].ID
		}
		stats := e.aggregateStats(ctx, ids, logger)
		ranked = rankCandidates(candidates, profile, stats, start)
	}

	offset := resolveOffset(ranked, req.Offset, req.Cursor)
	resp := &Response{
		Items:           paginate(ranked, offset, req.Limit),
		TotalCandidates: len(candidates),
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			UserID:    req.UserID,
			Path:      path.String(),
			LatencyMS: time.Since(start).Milliseconds(),
			Timestamp: e.now(),
		},
	}

	e.cacheResponse(ctx, req, resp, logger)
	e.metrics.ObserveRequest(path, time.Since(start))

	logger.Debug().
		Str("path", path.String()).
		Int("candidates", len(candidates)).
		Int("returned", len(resp.Items)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("ranking complete")

	return resp, nil
}

// validateRequest enforces the request contract. Invalid requests surface
// directly to the caller and are never retried.
func validateRequest(req Request) error {
	if req.Limit <= 0 {
		return invalidRequestf("limit must be positive, got %d", req.Limit)
	}
	if req.Offset < 0 {
		return invalidRequestf("offset must not be negative, got %d", req.Offset)
	}
	return nil
}

// prepareRequest applies the limit cap and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = "feed-" + uuid.NewString()
	}
	if req.Limit > e.config.Limits.MaxLimit {
		req.Limit = e.config.Limits.MaxLimit
	}
	return req
}

// createRequestLogger creates a logger with request context.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("request_id", req.RequestID).
		Str("user_id", req.UserID).
		Logger()
}

// history bundles the raw inputs of the profile builder.
type history struct {
	ratings      []RatingEvent
	ratedContent []ContentItem
	interactions []InteractionEvent
	settings     *UserPreferenceSettings
}

// fetchHistory loads the profile inputs. The three independent reads run
// concurrently; each failure degrades to an empty result so the request
// still completes with weaker personalization.
func (e *Engine) fetchHistory(ctx context.Context, userID string, logger zerolog.Logger) history {
	var hist history
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		rctx, cancel := context.WithTimeout(ctx, e.config.Limits.StoreTimeout)
		defer cancel()
		ratings, err := e.ratings.ListRatings(rctx, userID, e.config.Limits.RatingWindow)
		if err != nil {
			e.metrics.StoreError("list_ratings")
			logger.Warn().Err(err).Msg("rating history fetch failed, degrading to empty")
			return
		}
		hist.ratings = ratings
	}()

	go func() {
		defer wg.Done()
		ictx, cancel := context.WithTimeout(ctx, e.config.Limits.StoreTimeout)
		defer cancel()
		interactions, err := e.interactions.ListInteractions(ictx, userID, e.config.Limits.InteractionWindow)
		if err != nil {
			e.metrics.StoreError("list_interactions")
			logger.Warn().Err(err).Msg("interaction history fetch failed, degrading to empty")
			return
		}
		hist.interactions = interactions
	}()

	go func() {
		defer wg.Done()
		if userID == "" {
			return
		}
		sctx, cancel := context.WithTimeout(ctx, e.config.Limits.StoreTimeout)
		defer cancel()
		settings, err := e.settings.GetUserPreferences(sctx, userID)
		if err != nil {
			e.metrics.StoreError("get_user_preferences")
			logger.Warn().Err(err).Msg("preference settings fetch failed, degrading to none")
			return
		}
		hist.settings = settings
	}()

	wg.Wait()

	if len(hist.ratings) > 0 {
		cctx, cancel := context.WithTimeout(ctx, e.config.Limits.StoreTimeout)
		defer cancel()
		content, err := e.content.GetContentBatch(cctx, contentIDsOf(hist.ratings))
		if err != nil {
			e.metrics.StoreError("get_content_batch")
			logger.Warn().Err(err).Msg("rated content fetch failed, degrading to tag-free profile")
		} else {
			hist.ratedContent = content
		}
	}

	return hist
}

// retrieveCandidates loads the candidate pool, excluding the user's most
// recently rated items. Unlike the profile reads, a failure here fails the
// whole request: there is nothing to rank.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) retrieveCandidates(ctx context.Context, req Request, ratings []RatingEvent) ([]ContentItem, error) {
	var exclude []string
	if req.UserID != "" {
		exclude = recentRatedIDs(ratings, e.config.Limits.ExclusionWindow)
	}

	cctx, cancel := context.WithTimeout(ctx, e.config.Limits.StoreTimeout)
	defer cancel()
	candidates, err := e.content.ListCandidates(cctx, exclude, e.config.Limits.MaxCandidates)
	if err != nil {
		return nil, storeUnavailable("list_candidates", err)
	}
	return candidates, nil
}

// cacheKey identifies one page of one user's feed.
//
//nolint:gocritic // hugeParam: req passed by value for simplicity
func (e *Engine) cacheKey(req Request) string {
	user := req.UserID
	if user == "" {
		user = "anon"
	}
	return fmt.Sprintf("feed:%s:%d:%d:%s", user, req.Limit, req.Offset, req.Cursor)
}

// tryGetCachedResponse attempts to serve the request from the response
// cache. Any cache failure is treated as a miss: the cache is an
// accelerator, never a dependency.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) tryGetCachedResponse(ctx context.Context, req Request, start time.Time, logger zerolog.Logger) *Response {
	if e.cache == nil || !e.config.Cache.Enabled {
		return nil
	}

	payload, err := e.cache.Get(ctx, e.cacheKey(req))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			logger.Debug().Err(err).Msg("cache read failed, bypassing")
		}
		e.metrics.CacheMiss()
		return nil
	}

	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		logger.Debug().Err(err).Msg("cache payload corrupt, bypassing")
		e.metrics.CacheMiss()
		return nil
	}

	e.metrics.CacheHit()
	resp.Metadata.RequestID = req.RequestID
	resp.Metadata.CacheHit = true
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	logger.Debug().Msg("cache hit")
	return &resp
}

// cacheResponse stores the response if caching is enabled. Write failures
// are logged and dropped.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) cacheResponse(ctx context.Context, req Request, resp *Response, logger zerolog.Logger) {
	if e.cache == nil || !e.config.Cache.Enabled {
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		logger.Debug().Err(err).Msg("cache encode failed, skipping")
		return
	}
	if err := e.cache.Set(ctx, e.cacheKey(req), payload, e.config.Cache.TTL); err != nil {
		logger.Debug().Err(err).Msg("cache write failed, skipping")
	}
}

// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// aggregateStats computes the per-candidate community inputs of the scorer:
// the community interaction count and the item's rating distribution.
//
// The interaction count is one grouped aggregation for the whole pool. The
// legacy implementation issued one count query per candidate; that was a
// performance defect, not a contract, so it is batched here while the
// numbers stay identical.
//
// Per-item rating lists are fetched concurrently. Every failure degrades to
// an empty result for that item: weaker personalization beats a failed
// request.
func (e *Engine) aggregateStats(ctx context.Context, ids []string, logger zerolog.Logger) map[string]itemStats {
	stats := make(map[string]itemStats, len(ids))
	if len(ids) == 0 {
		return stats
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		counts map[string]int
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		cctx, cancel := context.WithTimeout(ctx, e.config.Limits.StoreTimeout)
		defer cancel()
		c, err := e.interactions.CountCommunityInteractions(cctx, ids, []InteractionKind{KindView, KindClick})
		if err != nil {
			e.metrics.StoreError("count_community_interactions")
			logger.Warn().Err(err).Msg("community interaction count failed, degrading to zero counts")
			return
		}
		counts = c
	}()

	for _, id := range ids {
		wg.Add(1)
		go func(contentID string) {
			defer wg.Done()
			rctx, cancel := context.WithTimeout(ctx, e.config.Limits.StoreTimeout)
			defer cancel()
			events, err := e.ratings.ListRatingsForContent(rctx, contentID)
			if err != nil {
				e.metrics.StoreError("list_ratings_for_content")
				logger.Warn().Err(err).Str("content_id", contentID).Msg("content ratings fetch failed, degrading to unrated")
				return
			}
			if len(events) == 0 {
				return
			}
			var sum float64
			for _, r := range events {
				sum += float64(r.Rating)
			}
			mu.Lock()
			s := stats[contentID]
			s.ratingSum = sum
			s.ratingCount = len(events)
			stats[contentID] = s
			mu.Unlock()
		}(id)
	}

	wg.Wait()

	for id, n := range counts {
		s := stats[id]
		s.communityCount = n
		stats[id] = s
	}
	return stats
}

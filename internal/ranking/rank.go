// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"sort"
	"time"
)

// rankCandidates scores the pool and sorts it by score descending. The sort
// is stable: equal scores keep the relative order the retriever produced,
// which is what makes repeated calls on a fixed snapshot byte-identical.
// One timestamp is used for the whole pool so recency decay cannot reorder
// items scored microseconds apart.
func rankCandidates(candidates []ContentItem, profile *PreferenceProfile, stats map[string]itemStats, now time.Time) []ScoredItem {
	scored := make([]ScoredItem, 0, len(candidates))
	for i := range candidates {
		total, terms := scoreItem(&candidates[i], profile, stats[candidates[i].ID], now)
		scored = append(scored, ScoredItem{Item: candidates[i], Score: total, Terms: terms})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// resolveOffset turns a cursor into an offset against the freshly ranked
// pool. The cursor is the ID of the last item the caller saw; the page
// continues immediately after it. An unknown cursor starts from the top.
func resolveOffset(ranked []ScoredItem, offset int, cursor string) int {
	if cursor == "" {
		return offset
	}
	for i := range ranked {
		if ranked[i].Item.ID == cursor {
			return i + 1
		}
	}
	return 0
}

// paginate slices [offset, offset+limit) out of the ranked pool. An offset
// at or beyond the pool size yields an empty page, not an error.
func paginate(ranked []ScoredItem, offset, limit int) []ScoredItem {
	if offset >= len(ranked) {
		return []ScoredItem{}
	}
	end := offset + limit
	if end > len(ranked) {
		end = len(ranked)
	}
	return ranked[offset:end]
}

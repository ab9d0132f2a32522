// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"sort"
	"time"
)

// TermColdStart is the single breakdown term of cold-start scores.
const TermColdStart = "cold_start"

// coldStartRank orders candidates by credibility x (1 / age_in_ms),
// descending: a pure credibility-and-recency heuristic for users with no
// rating history. Equal scores keep retriever order.
func coldStartRank(candidates []ContentItem, now time.Time) []ScoredItem {
	scored := make([]ScoredItem, 0, len(candidates))
	for _, item := range candidates {
		ageMS := float64(now.Sub(item.PublishedAt).Milliseconds())
		if ageMS < 1 {
			// Items published "now" or with clock-skewed future timestamps
			// get the minimal age rather than a division by zero.
			ageMS = 1
		}
		score := item.Credibility * (1 / ageMS)
		scored = append(scored, ScoredItem{
			Item:  item,
			Score: score,
			Terms: map[string]float64{TermColdStart: score},
		})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

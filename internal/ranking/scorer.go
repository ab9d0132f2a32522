// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"time"
)

// Scoring term constants. The score is a hand-tuned linear function; each
// term is independently bounded before summation and there is no overall
// clamp. Changing any of these changes the output ordering contract.
const (
	entityMultiplier = 2.0
	entityTermMin    = -10.0
	entityTermMax    = 20.0

	topicTermMin = -5.0
	topicTermMax = 10.0

	sourceMultiplier = 2.0
	sourceTermMin    = -5.0
	sourceTermMax    = 10.0

	recencyBonus      = 5.0
	recencyWindowHrs  = 24.0
	communityRatingX  = 2.0
	communityMidpoint = 3.0

	personalViewsCap    = 3.0
	personalClicksCap   = 5.0
	personalClicksX     = 2.0
	personalDurationCap = 7.0
	personalDurationMin = 10.0

	popularityThreshold = 5
	popularityCap       = 5.0
)

// Term names used in the ScoredItem breakdown.
const (
	TermBase            = "base"
	TermEntity          = "entity"
	TermTopic           = "topic"
	TermSource          = "source"
	TermRecency         = "recency"
	TermCommunityRating = "community_rating"
	TermPersonal        = "personal"
	TermPopularity      = "popularity"
)

// itemStats is the aggregate input to the scorer for one candidate:
// community interaction count plus the item's rating distribution.
type itemStats struct {
	communityCount int
	ratingSum      float64
	ratingCount    int
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// scoreItem applies the eight-term scoring function to one candidate and
// returns the total plus the per-term breakdown. Pure: same inputs, same
// output.
func scoreItem(item *ContentItem, profile *PreferenceProfile, stats itemStats, now time.Time) (float64, map[string]float64) {
	terms := make(map[string]float64, 8)

	// 1. Base credibility (0-10).
	terms[TermBase] = item.Credibility

	// 2. Entity term: summed tag weights, doubled, clamped.
	var entitySum float64
	for _, name := range item.Celebrities {
		entitySum += profile.Entities[name]
	}
	terms[TermEntity] = clamp(entitySum*entityMultiplier, entityTermMin, entityTermMax)

	// 3. Topic term: summed tag weights, clamped.
	var topicSum float64
	for _, name := range item.Categories {
		topicSum += profile.Topics[name]
	}
	terms[TermTopic] = clamp(topicSum, topicTermMin, topicTermMax)

	// 4. Source term: source weight, doubled, clamped.
	terms[TermSource] = clamp(profile.Sources[item.Source.Name]*sourceMultiplier, sourceTermMin, sourceTermMax)

	// 5. Recency term: linear decay to zero at 24h.
	ageHours := now.Sub(item.PublishedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	if ageHours < recencyWindowHrs {
		terms[TermRecency] = recencyBonus * (1 - ageHours/recencyWindowHrs)
	} else {
		terms[TermRecency] = 0
	}

	// 6. Community rating term: (avg - 3) * 2 over all users' ratings.
	if stats.ratingCount > 0 {
		avg := stats.ratingSum / float64(stats.ratingCount)
		terms[TermCommunityRating] = (avg - communityMidpoint) * communityRatingX
	} else {
		terms[TermCommunityRating] = 0
	}

	// 7. Personal interaction term: capped views, clicks, and dwell time.
	pat := profile.Patterns[item.ID]
	personal := min(personalViewsCap, float64(pat.Views)) +
		min(personalClicksCap, float64(pat.Clicks)*personalClicksX)
	if pat.AvgDuration > personalDurationMin {
		personal += min(personalDurationCap, pat.AvgDuration/personalDurationMin)
	}
	terms[TermPersonal] = personal

	// 8. Community popularity term: only above the noise threshold.
	if stats.communityCount > popularityThreshold {
		terms[TermPopularity] = min(popularityCap, float64(stats.communityCount)/float64(popularityThreshold))
	} else {
		terms[TermPopularity] = 0
	}

	total := terms[TermBase] + terms[TermEntity] + terms[TermTopic] + terms[TermSource] +
		terms[TermRecency] + terms[TermCommunityRating] + terms[TermPersonal] + terms[TermPopularity]
	return total, terms
}

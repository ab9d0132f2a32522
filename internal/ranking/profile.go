// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

// ratingWeight derives the signed preference weight of one rating event.
// A rating of exactly 3 is neutral and contributes nothing.
func ratingWeight(rating int) float64 {
	switch {
	case rating >= 4:
		return 1
	case rating <= 2:
		return -1
	default:
		return 0
	}
}

// buildProfile turns raw history into the request-scoped preference profile.
//
// ratings and interactions are expected most recent first, already capped to
// the configured windows by the store. ratedContent supplies the tags and
// source of the rated items; ratings whose content is missing from it still
// count toward RatingCount but contribute no tag weight. settings may be nil.
func buildProfile(cfg *Config, ratings []RatingEvent, ratedContent []ContentItem, interactions []InteractionEvent, settings *UserPreferenceSettings) *PreferenceProfile {
	p := &PreferenceProfile{
		Entities: make(map[string]float64),
		Topics:   make(map[string]float64),
		Sources:  make(map[string]float64),
		Patterns: make(map[string]InteractionPattern),
	}

	byID := make(map[string]ContentItem, len(ratedContent))
	for _, item := range ratedContent {
		byID[item.ID] = item
	}

	p.RatingCount = len(ratings)
	for _, r := range ratings {
		w := ratingWeight(r.Rating)
		if w == 0 {
			continue
		}
		item, ok := byID[r.ContentID]
		if !ok {
			continue
		}
		for _, name := range item.Celebrities {
			p.Entities[name] += w
		}
		for _, name := range item.Categories {
			p.Topics[name] += w
		}
		if item.Source.Name != "" {
			p.Sources[item.Source.Name] += w
		}
	}

	if settings != nil {
		for _, name := range settings.PreferredCelebrities {
			p.Entities[name] += cfg.Bonuses.PreferredEntity
		}
		for _, name := range settings.PreferredCategories {
			p.Topics[name] += cfg.Bonuses.PreferredTopic
		}
	}

	for _, ev := range interactions {
		pat := p.Patterns[ev.ContentID]
		switch ev.Kind {
		case KindView:
			pat.Views++
		case KindClick:
			pat.Clicks++
		}
		if ev.DurationSeconds > 0 {
			// Not a true mean: recent events weigh heavier. Preserved
			// verbatim for parity with the tuned score formula.
			pat.AvgDuration = (pat.AvgDuration + ev.DurationSeconds) / 2
		}
		p.Patterns[ev.ContentID] = pat
	}

	return p
}

// recentRatedIDs returns the IDs of the most recently rated items, deduped,
// capped to window. Ratings are expected most recent first; only the latest
// rating of an item decides its place in the window, so items rated long ago
// stay eligible to reappear.
func recentRatedIDs(ratings []RatingEvent, window int) []string {
	if window <= 0 {
		return nil
	}
	seen := make(map[string]struct{}, window)
	ids := make([]string, 0, window)
	for _, r := range ratings {
		if _, ok := seen[r.ContentID]; ok {
			continue
		}
		seen[r.ContentID] = struct{}{}
		ids = append(ids, r.ContentID)
		if len(ids) == window {
			break
		}
	}
	return ids
}

// contentIDsOf collects the distinct content IDs referenced by ratings,
// preserving first-seen order.
func contentIDsOf(ratings []RatingEvent) []string {
	seen := make(map[string]struct{}, len(ratings))
	ids := make([]string, 0, len(ratings))
	for _, r := range ratings {
		if _, ok := seen[r.ContentID]; ok {
			continue
		}
		seen[r.ContentID] = struct{}{}
		ids = append(ids, r.ContentID)
	}
	return ids
}

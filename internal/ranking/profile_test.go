// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"testing"
	"time"
)

// --- Test: ratingWeight ---

func TestRatingWeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rating int
		want   float64
	}{
		{1, -1},
		{2, -1},
		{3, 0},
		{4, 1},
		{5, 1},
	}
	for _, tt := range tests {
		if got := ratingWeight(tt.rating); got != tt.want {
			t.Errorf("ratingWeight(%d) = %v, want %v", tt.rating, got, tt.want)
		}
	}
}

// --- Test: buildProfile ---

func TestBuildProfile_WeightsAccumulate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	content := []ContentItem{
		{
			ID:          "c1",
			Source:      SourceRef{Name: "Tribune"},
			Categories:  []string{"tech", "ai"},
			Celebrities: []string{"Ada"},
		},
		{
			ID:          "c2",
			Source:      SourceRef{Name: "Tribune"},
			Categories:  []string{"tech"},
			Celebrities: []string{"Ada", "Bo"},
		},
		{
			ID:         "c3",
			Source:     SourceRef{Name: "Gazette"},
			Categories: []string{"sports"},
		},
	}
	ratings := []RatingEvent{
		{UserID: "u1", ContentID: "c1", Rating: 5},
		{UserID: "u1", ContentID: "c2", Rating: 4},
		{UserID: "u1", ContentID: "c3", Rating: 1},
		{UserID: "u1", ContentID: "c1", Rating: 3}, // neutral, no weight
	}

	p := buildProfile(cfg, ratings, content, nil, nil)

	if p.RatingCount != 4 {
		t.Errorf("RatingCount = %d, want 4", p.RatingCount)
	}
	if p.Entities["Ada"] != 2 {
		t.Errorf("Entities[Ada] = %v, want 2", p.Entities["Ada"])
	}
	if p.Entities["Bo"] != 1 {
		t.Errorf("Entities[Bo] = %v, want 1", p.Entities["Bo"])
	}
	if p.Topics["tech"] != 2 {
		t.Errorf("Topics[tech] = %v, want 2", p.Topics["tech"])
	}
	if p.Topics["ai"] != 1 {
		t.Errorf("Topics[ai] = %v, want 1", p.Topics["ai"])
	}
	if p.Topics["sports"] != -1 {
		t.Errorf("Topics[sports] = %v, want -1", p.Topics["sports"])
	}
	if p.Sources["Tribune"] != 2 {
		t.Errorf("Sources[Tribune] = %v, want 2", p.Sources["Tribune"])
	}
	if p.Sources["Gazette"] != -1 {
		t.Errorf("Sources[Gazette] = %v, want -1", p.Sources["Gazette"])
	}
}

func TestBuildProfile_MissingContentCountsButCarriesNoWeight(t *testing.T) {
	t.Parallel()

	ratings := []RatingEvent{
		{UserID: "u1", ContentID: "gone", Rating: 5},
	}
	p := buildProfile(DefaultConfig(), ratings, nil, nil, nil)

	if p.RatingCount != 1 {
		t.Errorf("RatingCount = %d, want 1", p.RatingCount)
	}
	if len(p.Entities) != 0 || len(p.Topics) != 0 || len(p.Sources) != 0 {
		t.Error("ratings without resolvable content must not add tag weight")
	}
}

func TestBuildProfile_DeclaredPreferenceBonuses(t *testing.T) {
	t.Parallel()

	settings := &UserPreferenceSettings{
		UserID:               "u1",
		PreferredCelebrities: []string{"Ada"},
		PreferredCategories:  []string{"tech"},
	}
	content := []ContentItem{
		{ID: "c1", Categories: []string{"tech"}, Celebrities: []string{"Ada"}},
	}
	ratings := []RatingEvent{{UserID: "u1", ContentID: "c1", Rating: 5}}

	p := buildProfile(DefaultConfig(), ratings, content, nil, settings)

	// Learned weight 1 plus the declared bonus.
	if p.Entities["Ada"] != 6 {
		t.Errorf("Entities[Ada] = %v, want 6", p.Entities["Ada"])
	}
	if p.Topics["tech"] != 4 {
		t.Errorf("Topics[tech] = %v, want 4", p.Topics["tech"])
	}
}

func TestBuildProfile_InteractionPatterns(t *testing.T) {
	t.Parallel()

	interactions := []InteractionEvent{
		{UserID: "u1", ContentID: "c1", Kind: KindView, DurationSeconds: 30},
		{UserID: "u1", ContentID: "c1", Kind: KindView, DurationSeconds: 10},
		{UserID: "u1", ContentID: "c1", Kind: KindClick},
		{UserID: "u1", ContentID: "c2", Kind: KindShare}, // neither view nor click
	}

	p := buildProfile(DefaultConfig(), nil, nil, interactions, nil)

	pat := p.Patterns["c1"]
	if pat.Views != 2 {
		t.Errorf("Views = %d, want 2", pat.Views)
	}
	if pat.Clicks != 1 {
		t.Errorf("Clicks = %d, want 1", pat.Clicks)
	}
	// Smoothing, not a mean: (0+30)/2 = 15, then (15+10)/2 = 12.5.
	if pat.AvgDuration != 12.5 {
		t.Errorf("AvgDuration = %v, want 12.5", pat.AvgDuration)
	}

	other := p.Patterns["c2"]
	if other.Views != 0 || other.Clicks != 0 {
		t.Errorf("share events must not tally views or clicks, got %+v", other)
	}
	if p.RatingCount != 0 {
		t.Errorf("RatingCount = %d, want 0 (interactions never unlock personalization)", p.RatingCount)
	}
}

func TestBuildProfile_ZeroDurationLeavesAverageUntouched(t *testing.T) {
	t.Parallel()

	interactions := []InteractionEvent{
		{UserID: "u1", ContentID: "c1", Kind: KindView, DurationSeconds: 40},
		{UserID: "u1", ContentID: "c1", Kind: KindClick}, // no duration
	}

	p := buildProfile(DefaultConfig(), nil, nil, interactions, nil)

	if got := p.Patterns["c1"].AvgDuration; got != 20 {
		t.Errorf("AvgDuration = %v, want 20", got)
	}
}

func TestBuildProfile_Empty(t *testing.T) {
	t.Parallel()

	p := buildProfile(DefaultConfig(), nil, nil, nil, nil)

	if p.RatingCount != 0 {
		t.Errorf("RatingCount = %d, want 0", p.RatingCount)
	}
	if p.Entities == nil || p.Topics == nil || p.Sources == nil || p.Patterns == nil {
		t.Error("profile maps must be initialized even when history is empty")
	}
}

// --- Test: recentRatedIDs ---

func TestRecentRatedIDs(t *testing.T) {
	t.Parallel()

	now := time.Now()
	ratings := []RatingEvent{
		{ContentID: "a", CreatedAt: now},
		{ContentID: "b", CreatedAt: now.Add(-time.Minute)},
		{ContentID: "a", CreatedAt: now.Add(-2 * time.Minute)}, // re-rating, deduped
		{ContentID: "c", CreatedAt: now.Add(-3 * time.Minute)},
		{ContentID: "d", CreatedAt: now.Add(-4 * time.Minute)},
	}

	tests := []struct {
		name   string
		window int
		want   []string
	}{
		{"window larger than history", 50, []string{"a", "b", "c", "d"}},
		{"window caps the list", 2, []string{"a", "b"}},
		{"dedup does not waste window slots", 3, []string{"a", "b", "c"}},
		{"zero window", 0, nil},
		{"negative window", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := recentRatedIDs(ratings, tt.window)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d ids %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ids[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// --- Test: contentIDsOf ---

func TestContentIDsOf(t *testing.T) {
	t.Parallel()

	ratings := []RatingEvent{
		{ContentID: "a"},
		{ContentID: "b"},
		{ContentID: "a"},
		{ContentID: "c"},
	}
	got := contentIDsOf(ratings)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package ranking

import (
	"testing"
	"time"
)

// --- Test: rankCandidates ---

func TestRankCandidates_OrdersByScoreDescending(t *testing.T) {
	t.Parallel()

	candidates := []ContentItem{
		item("low", 2, 30),
		item("high", 9, 30),
		item("mid", 5, 30),
	}
	ranked := rankCandidates(candidates, emptyProfile(), nil, testNow)

	want := []string{"high", "mid", "low"}
	for i, id := range want {
		if ranked[i].Item.ID != id {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Item.ID, id)
		}
	}
}

func TestRankCandidates_TiesKeepRetrieverOrder(t *testing.T) {
	t.Parallel()

	// Identical items in retriever order: the stable sort must not
	// reshuffle them.
	candidates := []ContentItem{
		item("first", 5, 30),
		item("second", 5, 30),
		item("third", 5, 30),
	}
	ranked := rankCandidates(candidates, emptyProfile(), nil, testNow)

	want := []string{"first", "second", "third"}
	for i, id := range want {
		if ranked[i].Item.ID != id {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Item.ID, id)
		}
	}
}

func TestRankCandidates_UsesStats(t *testing.T) {
	t.Parallel()

	candidates := []ContentItem{
		item("quiet", 5, 30),
		item("popular", 5, 30),
	}
	stats := map[string]itemStats{
		"popular": {communityCount: 25, ratingSum: 10, ratingCount: 2},
	}
	ranked := rankCandidates(candidates, emptyProfile(), stats, testNow)

	if ranked[0].Item.ID != "popular" {
		t.Fatalf("ranked[0] = %q, want popular", ranked[0].Item.ID)
	}
	if ranked[0].Terms[TermPopularity] != 5 {
		t.Errorf("popularity term = %v, want 5", ranked[0].Terms[TermPopularity])
	}
	if ranked[0].Terms[TermCommunityRating] != 4 {
		t.Errorf("community rating term = %v, want 4", ranked[0].Terms[TermCommunityRating])
	}
}

func TestRankCandidates_Empty(t *testing.T) {
	t.Parallel()

	ranked := rankCandidates(nil, emptyProfile(), nil, testNow)
	if len(ranked) != 0 {
		t.Errorf("ranked = %d items, want 0", len(ranked))
	}
}

// --- Test: resolveOffset ---

func TestResolveOffset(t *testing.T) {
	t.Parallel()

	ranked := []ScoredItem{
		{Item: ContentItem{ID: "a"}},
		{Item: ContentItem{ID: "b"}},
		{Item: ContentItem{ID: "c"}},
	}

	tests := []struct {
		name   string
		offset int
		cursor string
		want   int
	}{
		{"no cursor passes offset through", 7, "", 7},
		{"cursor at head", 0, "a", 1},
		{"cursor mid pool", 0, "b", 2},
		{"cursor at tail yields past-end offset", 0, "c", 3},
		{"cursor wins over offset", 2, "a", 1},
		{"unknown cursor restarts", 2, "zzz", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := resolveOffset(ranked, tt.offset, tt.cursor); got != tt.want {
				t.Errorf("resolveOffset(%d, %q) = %d, want %d", tt.offset, tt.cursor, got, tt.want)
			}
		})
	}
}

// --- Test: paginate ---

func TestPaginate(t *testing.T) {
	t.Parallel()

	ranked := []ScoredItem{
		{Item: ContentItem{ID: "a"}},
		{Item: ContentItem{ID: "b"}},
		{Item: ContentItem{ID: "c"}},
		{Item: ContentItem{ID: "d"}},
	}

	tests := []struct {
		name    string
		offset  int
		limit   int
		wantIDs []string
	}{
		{"full first page", 0, 2, []string{"a", "b"}},
		{"middle page", 1, 2, []string{"b", "c"}},
		{"short last page", 3, 10, []string{"d"}},
		{"offset at pool size", 4, 2, []string{}},
		{"offset beyond pool size", 99, 2, []string{}},
		{"limit covers whole pool", 0, 100, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := paginate(ranked, tt.offset, tt.limit)
			if got == nil {
				t.Fatal("paginate() = nil, want non-nil slice")
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d items, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].Item.ID != id {
					t.Errorf("page[%d] = %q, want %q", i, got[i].Item.ID, id)
				}
			}
		})
	}
}

// --- Test: single clock for the whole pool ---

func TestRankCandidates_SingleTimestamp(t *testing.T) {
	t.Parallel()

	// Two items published one second apart, scored far apart in wall time:
	// with one shared timestamp, ranking twice gives the same order.
	candidates := []ContentItem{
		item("older", 5, 1.0),
		item("newer", 5, 0.5),
	}
	first := rankCandidates(candidates, emptyProfile(), nil, testNow)
	second := rankCandidates(candidates, emptyProfile(), nil, testNow.Add(time.Hour))

	if first[0].Item.ID != "newer" || second[0].Item.ID != "newer" {
		t.Errorf("order = %q then %q, want newer first both times",
			first[0].Item.ID, second[0].Item.ID)
	}
	if first[0].Score == second[0].Score {
		t.Error("scores should differ across clocks while order holds")
	}
}

// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"github.com/feedrank/feedrank/internal/ranking"
	"github.com/feedrank/feedrank/internal/store"
)

// fixture is the on-disk shape accepted by the -seed flag. Every section is
// optional; sections are loaded in dependency order (sources before items,
// items before events).
type fixture struct {
	Sources      []ranking.SourceRef              `json:"sources"`
	Items        []ranking.ContentItem            `json:"items"`
	Ratings      []ranking.RatingEvent            `json:"ratings"`
	Interactions []ranking.InteractionEvent       `json:"interactions"`
	Preferences  []ranking.UserPreferenceSettings `json:"preferences"`
}

func seed(ctx context.Context, st *store.Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fx fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	for _, src := range fx.Sources {
		if err := st.UpsertSource(ctx, src); err != nil {
			return fmt.Errorf("source %q: %w", src.ID, err)
		}
	}
	for _, item := range fx.Items {
		if err := st.UpsertContentItem(ctx, item); err != nil {
			return fmt.Errorf("item %q: %w", item.ID, err)
		}
	}
	for _, ev := range fx.Ratings {
		if err := st.InsertRating(ctx, ev); err != nil {
			return fmt.Errorf("rating for %q: %w", ev.ContentID, err)
		}
	}
	for _, ev := range fx.Interactions {
		if err := st.InsertInteraction(ctx, ev); err != nil {
			return fmt.Errorf("interaction for %q: %w", ev.ContentID, err)
		}
	}
	for _, prefs := range fx.Preferences {
		if err := st.UpsertUserPreferences(ctx, prefs); err != nil {
			return fmt.Errorf("preferences for %q: %w", prefs.UserID, err)
		}
	}
	return nil
}

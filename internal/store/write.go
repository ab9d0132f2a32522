// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package store

import (
	"context"
	"fmt"

	"github.com/feedrank/feedrank/internal/ranking"
)

// Write helpers. The ranking engine itself never writes; these serve the
// ingestion side, the seed command, and test fixtures.

// UpsertSource inserts or replaces a source.
func (s *Store) UpsertSource(ctx context.Context, src ranking.SourceRef) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO sources (id, name, credibility)
		VALUES (?, ?, ?)`, src.ID, src.Name, src.Credibility)
	if err != nil {
		return fmt.Errorf("upsert source %s: %w", src.ID, err)
	}
	return nil
}

// UpsertContentItem inserts or replaces a content item. The item's source
// must already exist.
func (s *Store) UpsertContentItem(ctx context.Context, item ranking.ContentItem) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO content_items
			(id, title, summary, body, source_id, credibility, published_at, categories, celebrities, archived)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Title, item.Summary, item.Body, item.Source.ID,
		item.Credibility, item.PublishedAt,
		joinTags(item.Categories), joinTags(item.Celebrities), item.Archived)
	if err != nil {
		return fmt.Errorf("upsert content item %s: %w", item.ID, err)
	}
	return nil
}

// InsertRating appends a rating event. Repeat ratings of the same item are
// kept as separate events; recency decides which one is authoritative.
func (s *Store) InsertRating(ctx context.Context, ev ranking.RatingEvent) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO ratings (user_id, content_id, rating, created_at)
		VALUES (?, ?, ?, ?)`, ev.UserID, ev.ContentID, ev.Rating, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert rating: %w", err)
	}
	return nil
}

// InsertInteraction appends an interaction event. An empty user ID is stored
// as NULL (anonymous).
func (s *Store) InsertInteraction(ctx context.Context, ev ranking.InteractionEvent) error {
	var userID any
	if ev.UserID != "" {
		userID = ev.UserID
	}
	var duration any
	if ev.DurationSeconds > 0 {
		duration = ev.DurationSeconds
	}
	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO interactions (user_id, content_id, kind, duration_seconds, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, ev.ContentID, string(ev.Kind), duration, ev.Metadata, ev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// UpsertUserPreferences inserts or replaces a user's declared preferences.
func (s *Store) UpsertUserPreferences(ctx context.Context, prefs ranking.UserPreferenceSettings) error {
	_, err := s.conn.ExecContext(ctx, `
		INSERT OR REPLACE INTO user_preferences (user_id, preferred_celebrities, preferred_categories)
		VALUES (?, ?, ?)`,
		prefs.UserID, joinTags(prefs.PreferredCelebrities), joinTags(prefs.PreferredCategories))
	if err != nil {
		return fmt.Errorf("upsert user preferences %s: %w", prefs.UserID, err)
	}
	return nil
}

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

// ListRatings implements ranking.RatingStore. An empty userID returns the
// most recent ratings across all users.
func (s *Store) ListRatings(ctx context.Context, userID string, limit int) ([]ranking.RatingEvent, error) {
	query := `
		SELECT user_id, content_id, rating, created_at
		FROM ratings`
	args := make([]any, 0, 2)
	if userID != "" {
		query += ` WHERE user_id = ?`
		args = append(args, userID)
	}
	query += `
		ORDER BY created_at DESC, content_id
		LIMIT ?`
	args = append(args, limit)

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	var events []ranking.RatingEvent
	for rows.Next() {
		var ev ranking.RatingEvent
		if err := rows.Scan(&ev.UserID, &ev.ContentID, &ev.Rating, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return events, nil
}

// ListRatingsForContent implements ranking.RatingStore. Returns every rating
// of one item, across all users.
func (s *Store) ListRatingsForContent(ctx context.Context, contentID string) ([]ranking.RatingEvent, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT user_id, content_id, rating, created_at
		FROM ratings
		WHERE content_id = ?
		ORDER BY created_at DESC`, contentID)
	if err != nil {
		return nil, fmt.Errorf("query content ratings: %w", err)
	}
	defer rows.Close()

	var events []ranking.RatingEvent
	for rows.Next() {
		var ev ranking.RatingEvent
		if err := rows.Scan(&ev.UserID, &ev.ContentID, &ev.Rating, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan content rating: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content ratings: %w", err)
	}
	return events, nil
}

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

// ListInteractions implements ranking.InteractionStore. An empty userID
// returns the most recent interactions across all users, anonymous ones
// included.
func (s *Store) ListInteractions(ctx context.Context, userID string, limit int) ([]ranking.InteractionEvent, error) {
	query := `
		SELECT COALESCE(user_id, '') AS user_id, content_id, kind,
		       COALESCE(duration_seconds, 0) AS duration_seconds,
		       COALESCE(metadata, '') AS metadata, created_at
		FROM interactions`
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
		return nil, fmt.Errorf("query interactions: %w", err)
	}
	defer rows.Close()

	var events []ranking.InteractionEvent
	for rows.Next() {
		var (
			ev   ranking.InteractionEvent
			kind string
		)
		if err := rows.Scan(&ev.UserID, &ev.ContentID, &kind, &ev.DurationSeconds, &ev.Metadata, &ev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		ev.Kind = ranking.InteractionKind(kind)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interactions: %w", err)
	}
	return events, nil
}

// CountCommunityInteractions implements ranking.InteractionStore. It is one
// grouped aggregation for the whole candidate pool; the per-candidate count
// query of the legacy system was a known N+1 defect.
func (s *Store) CountCommunityInteractions(ctx context.Context, contentIDs []string, kinds []ranking.InteractionKind) (map[string]int, error) {
	counts := make(map[string]int, len(contentIDs))
	if len(contentIDs) == 0 || len(kinds) == 0 {
		return counts, nil
	}

	query := fmt.Sprintf(`
		SELECT content_id, COUNT(*) AS n
		FROM interactions
		WHERE content_id IN (%s)
		  AND kind IN (%s)
		GROUP BY content_id`,
		placeholders(len(contentIDs)), placeholders(len(kinds)))

	args := make([]any, 0, len(contentIDs)+len(kinds))
	for _, id := range contentIDs {
		args = append(args, id)
	}
	for _, kind := range kinds {
		args = append(args, string(kind))
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query community counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			contentID string
			n         int
		)
		if err := rows.Scan(&contentID, &n); err != nil {
			return nil, fmt.Errorf("scan community count: %w", err)
		}
		counts[contentID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate community counts: %w", err)
	}
	return counts, nil
}

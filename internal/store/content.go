// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/feedrank/feedrank/internal/ranking"
)

const contentColumns = `
	c.id,
	COALESCE(c.title, '') AS title,
	COALESCE(c.summary, '') AS summary,
	COALESCE(c.body, '') AS body,
	c.credibility,
	c.published_at,
	COALESCE(c.categories, '') AS categories,
	COALESCE(c.celebrities, '') AS celebrities,
	c.archived,
	s.id AS source_id,
	s.name AS source_name,
	s.credibility AS source_credibility`

// ListCandidates implements ranking.ContentStore. It returns up to limit
// non-archived items, most recent first, excluding the given IDs. Publish
// timestamp ties break on ID so the retriever order is reproducible.
func (s *Store) ListCandidates(ctx context.Context, excludeIDs []string, limit int) ([]ranking.ContentItem, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content_items c
		JOIN sources s ON s.id = c.source_id
		WHERE NOT c.archived`
	args := make([]any, 0, len(excludeIDs)+1)
	if len(excludeIDs) > 0 {
		query += fmt.Sprintf(" AND c.id NOT IN (%s)", placeholders(len(excludeIDs)))
		for _, id := range excludeIDs {
			args = append(args, id)
		}
	}
	query += `
		ORDER BY c.published_at DESC, c.id
		LIMIT ?`
	args = append(args, limit)

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}
	defer rows.Close()

	return scanContentItems(rows)
}

// GetContentBatch implements ranking.ContentStore. Unknown IDs are omitted.
func (s *Store) GetContentBatch(ctx context.Context, ids []string) ([]ranking.ContentItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + contentColumns + `
		FROM content_items c
		JOIN sources s ON s.id = c.source_id
		WHERE c.id IN (` + placeholders(len(ids)) + `)
		ORDER BY c.id`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query content batch: %w", err)
	}
	defer rows.Close()

	return scanContentItems(rows)
}

// GetSource implements ranking.ContentStore.
func (s *Store) GetSource(ctx context.Context, sourceID string) (ranking.SourceRef, error) {
	var src ranking.SourceRef
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, name, credibility FROM sources WHERE id = ?`, sourceID).
		Scan(&src.ID, &src.Name, &src.Credibility)
	if err != nil {
		return ranking.SourceRef{}, fmt.Errorf("query source %s: %w", sourceID, err)
	}
	return src, nil
}

func scanContentItems(rows *sql.Rows) ([]ranking.ContentItem, error) {
	var items []ranking.ContentItem
	for rows.Next() {
		var (
			item        ranking.ContentItem
			categories  string
			celebrities string
		)
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Summary, &item.Body,
			&item.Credibility, &item.PublishedAt, &categories, &celebrities,
			&item.Archived,
			&item.Source.ID, &item.Source.Name, &item.Source.Credibility,
		); err != nil {
			return nil, fmt.Errorf("scan content item: %w", err)
		}
		item.Categories = splitAndTrim(categories)
		item.Celebrities = splitAndTrim(celebrities)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content items: %w", err)
	}
	return items, nil
}

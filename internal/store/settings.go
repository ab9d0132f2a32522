// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/feedrank/feedrank/internal/ranking"
)

// GetUserPreferences implements ranking.SettingsStore. A user with no saved
// preferences yields (nil, nil), not an error.
func (s *Store) GetUserPreferences(ctx context.Context, userID string) (*ranking.UserPreferenceSettings, error) {
	var (
		celebrities string
		categories  string
	)
	err := s.conn.QueryRowContext(ctx, `
		SELECT COALESCE(preferred_celebrities, ''), COALESCE(preferred_categories, '')
		FROM user_preferences
		WHERE user_id = ?`, userID).
		Scan(&celebrities, &categories)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user preferences: %w", err)
	}

	return &ranking.UserPreferenceSettings{
		UserID:               userID,
		PreferredCelebrities: splitAndTrim(celebrities),
		PreferredCategories:  splitAndTrim(categories),
	}, nil
}

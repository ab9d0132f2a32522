// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

// Package store implements the engine's collaborator read interfaces on an
// embedded DuckDB database, plus the write helpers the ingestion side and
// the test fixtures use. One Store value implements ContentStore,
// RatingStore, InteractionStore, and SettingsStore.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/feedrank/feedrank/internal/config"
	"github.com/feedrank/feedrank/internal/ranking"
)

// Store wraps the DuckDB connection and provides data access methods.
type Store struct {
	conn *sql.DB
}

// New opens the database and initializes the schema. An empty path opens an
// in-memory database.
func New(cfg *config.DatabaseConfig) (*Store, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	if cfg.Path != "" {
		// Ensure the parent directory exists for the database file.
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
		cfg.Path, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) initSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS sources (
			id VARCHAR PRIMARY KEY,
			name VARCHAR NOT NULL,
			credibility DOUBLE NOT NULL DEFAULT 5
		)`,
		`CREATE TABLE IF NOT EXISTS content_items (
			id VARCHAR PRIMARY KEY,
			title VARCHAR NOT NULL,
			summary VARCHAR,
			body VARCHAR,
			source_id VARCHAR NOT NULL,
			credibility DOUBLE NOT NULL DEFAULT 5,
			published_at TIMESTAMP NOT NULL,
			categories VARCHAR,
			celebrities VARCHAR,
			archived BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			user_id VARCHAR NOT NULL,
			content_id VARCHAR NOT NULL,
			rating INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS interactions (
			user_id VARCHAR,
			content_id VARCHAR NOT NULL,
			kind VARCHAR NOT NULL,
			duration_seconds DOUBLE,
			metadata VARCHAR,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id VARCHAR PRIMARY KEY,
			preferred_celebrities VARCHAR,
			preferred_categories VARCHAR
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.conn.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// placeholders returns "?, ?, ..." for n parameters.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// joinTags renders a tag set as the comma-separated storage form.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// Interface compliance.
var (
	_ ranking.ContentStore     = (*Store)(nil)
	_ ranking.RatingStore      = (*Store)(nil)
	_ ranking.InteractionStore = (*Store)(nil)
	_ ranking.SettingsStore    = (*Store)(nil)
)

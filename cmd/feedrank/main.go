// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

// Package main is the feedrank command: it ranks one page of a user's feed
// against the configured store and prints the result as JSON.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
//
// Example usage:
//
//	export DUCKDB_PATH=/data/feedrank.duckdb
//	feedrank -seed fixtures.json
//	feedrank -user u-42 -limit 20 -page 1
//
// The HTTP surface lives in the platform's gateway, not here; this binary
// is the operational window into the ranking engine itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/feedrank/feedrank/internal/cache"
	"github.com/feedrank/feedrank/internal/config"
	"github.com/feedrank/feedrank/internal/logging"
	"github.com/feedrank/feedrank/internal/metrics"
	"github.com/feedrank/feedrank/internal/ranking"
	"github.com/feedrank/feedrank/internal/store"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file path (default: search standard locations)")
		userID     = flag.String("user", "", "user to rank the feed for (empty = anonymous)")
		limit      = flag.Int("limit", ranking.DefaultLimit, "page size")
		page       = flag.Int("page", 1, "1-based page number")
		offset     = flag.Int("offset", -1, "explicit item offset (overrides -page)")
		cursor     = flag.String("cursor", "", "ID of the last item of the previous page (overrides -page and -offset)")
		seedPath   = flag.String("seed", "", "JSON fixture file to load into the store before ranking")
	)
	flag.Parse()

	if err := run(*configPath, *userID, *limit, *page, *offset, *cursor, *seedPath); err != nil {
		logging.Error().Err(err).Msg("feedrank failed")
		os.Exit(1)
	}
}

func run(configPath, userID string, limit, page, offset int, cursor, seedPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()

	st, err := store.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if seedPath != "" {
		if err := seed(ctx, st, seedPath); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		logger.Info().Str("file", seedPath).Msg("fixture data loaded")
	}

	engine, err := ranking.NewEngine(&cfg.Ranking, ranking.Stores{
		Content:      st,
		Ratings:      st,
		Interactions: st,
		Settings:     st,
	}, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	engine.SetMetricsSink(metrics.New(prometheus.NewRegistry()))

	if cfg.Cache.Enabled {
		respCache, err := cache.New(cfg.Cache.Path, logger)
		if err != nil {
			// The cache is an accelerator; run without it.
			logger.Warn().Err(err).Msg("response cache unavailable, continuing without it")
		} else {
			defer respCache.Close()
			engine.SetResponseCache(respCache)
		}
	}

	if offset < 0 {
		if page < 1 {
			page = 1
		}
		offset = (page - 1) * limit
	}
	resp, err := engine.Rank(ctx, ranking.Request{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
		Cursor: cursor,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

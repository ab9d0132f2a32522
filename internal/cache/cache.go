// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

// Package cache implements the optional response cache on BadgerDB. Entries
// carry their TTL natively; expired entries read as misses. A circuit
// breaker guards all cache traffic: when the cache keeps failing, requests
// skip it for a cooldown instead of paying the failure latency every time.
// The cache is an accelerator, never a dependency.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/feedrank/feedrank/internal/ranking"
)

// Cache is a Badger-backed ranking.ResponseCache.
type Cache struct {
	db *badger.DB
	cb *gobreaker.CircuitBreaker[[]byte]
}

// New opens a cache at dir. An empty dir opens an in-memory cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(dir string, logger zerolog.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	// Badger logs through its own interface; silence it in favor of ours.
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	cbLogger := logger.With().Str("component", "cache").Logger()
	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "response-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// A miss is a normal outcome, not a cache failure.
			return err == nil || errors.Is(err, badger.ErrKeyNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			cbLogger.Warn().
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("cache circuit breaker state change")
		},
	})

	return &Cache{db: db, cb: cb}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get implements ranking.ResponseCache. Missing and expired keys return
// ranking.ErrCacheMiss; an open breaker reads as a miss too.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	value, err := c.cb.Execute(func() ([]byte, error) {
		var payload []byte
		err := c.db.View(func(txn *badger.Txn) error {
			item, err := txn.Get([]byte(key))
			if err != nil {
				return err
			}
			payload, err = item.ValueCopy(nil)
			return err
		})
		return payload, err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ranking.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set implements ranking.ResponseCache.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := c.cb.Execute(func() ([]byte, error) {
		return nil, c.db.Update(func(txn *badger.Txn) error {
			entry := badger.NewEntry([]byte(key), value).WithTTL(ttl)
			return txn.SetEntry(entry)
		})
	})
	return err
}

var _ ranking.ResponseCache = (*Cache)(nil)

// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

// Package ranking implements the personalized article ranking engine.
//
// # Architecture
//
// Each request flows through a fixed pipeline:
//
//   - Preference Profile Builder: recent ratings, interactions, and declared
//     preferences become weighted entity/topic/source maps
//   - Candidate Retriever: a bounded pool of non-archived items, excluding
//     the user's most recently rated ones
//   - Interaction Aggregator: one grouped community-interaction count for the
//     whole pool plus per-item rating distributions
//   - Scorer: an eight-term linear function with per-term clamps
//   - Ranker/Paginator: stable score-descending sort, then [offset, offset+limit)
//
// A user with no rating history short-circuits to the cold-start path: the
// pool ordered by credibility x (1 / age), no personalization. The path is
// chosen once per request and recorded in the response metadata.
//
// # Design Principles
//
//   - Deterministic: for a fixed store snapshot, identical requests produce
//     identical output (stable tie-break, single per-request timestamp)
//   - Explainable: the score is a hand-tuned linear sum and every response
//     carries the per-term breakdown, not a learned model
//   - Read-only: the engine never writes to any store; all of its own state
//     is request-scoped
//   - Degradable: profile and aggregate reads fall back to empty results on
//     store failure; only candidate retrieval is load-bearing
//
// # Usage
//
//	engine, err := ranking.NewEngine(ranking.DefaultConfig(), ranking.Stores{
//	    Content:      store,
//	    Ratings:      store,
//	    Interactions: store,
//	    Settings:     store,
//	}, logger)
//
//	items, err := engine.GetRankedFeed(ctx, userID, 20, 0)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Requests share no mutable state.
package ranking

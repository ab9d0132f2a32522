// Feedrank - Personalized Article Feed Ranking
// Copyright 2026 Feedrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/feedrank/feedrank

// Package metrics implements the engine's injected metrics sink on
// Prometheus. Collectors are created on an explicit Registerer, never a
// package-global registry, so there is no hidden process-wide state and
// tests can register in isolation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/feedrank/feedrank/internal/ranking"
)

// Recorder implements ranking.MetricsSink.
type Recorder struct {
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	storeErrors     *prometheus.CounterVec
}

// New creates a Recorder and registers its collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "feedrank_request_duration_seconds",
				Help:    "Duration of ranking requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedrank_cache_hits_total",
			Help: "Total number of response cache hits",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "feedrank_cache_misses_total",
			Help: "Total number of response cache misses and bypasses",
		}),
		storeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feedrank_store_errors_total",
				Help: "Total number of degraded (non-fatal) store calls",
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(r.requestDuration, r.cacheHits, r.cacheMisses, r.storeErrors)
	return r
}

// ObserveRequest implements ranking.MetricsSink.
func (r *Recorder) ObserveRequest(path ranking.Path, d time.Duration) {
	r.requestDuration.WithLabelValues(path.String()).Observe(d.Seconds())
}

// CacheHit implements ranking.MetricsSink.
func (r *Recorder) CacheHit() {
	r.cacheHits.Inc()
}

// CacheMiss implements ranking.MetricsSink.
func (r *Recorder) CacheMiss() {
	r.cacheMisses.Inc()
}

// StoreError implements ranking.MetricsSink.
func (r *Recorder) StoreError(op string) {
	r.storeErrors.WithLabelValues(op).Inc()
}

var _ ranking.MetricsSink = (*Recorder)(nil)

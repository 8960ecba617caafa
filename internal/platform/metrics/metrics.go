// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conflict stages for [Metrics.ConflictDetected].
const (
	StagePrecheck   = "precheck"
	StageConstraint = "constraint"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Business metrics
	MinistryConflicts *prometheus.CounterVec
	SearchesTotal     prometheus.Counter

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates a new Metrics instance with all metrics registered on registerer.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		MinistryConflicts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ministry_name_conflicts_total",
				Help: "Rejected ministry writes due to a duplicate name, by detection stage",
			},
			[]string{"stage"}, // precheck, constraint
		),
		SearchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "directory_searches_total",
			Help: "Total number of directory searches performed",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "suggestion_cache_hits_total",
			Help: "Suggestion lookups served from Redis",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "suggestion_cache_misses_total",
			Help: "Suggestion lookups that fell through to PostgreSQL",
		}),
	}
}

// The recorders below are nil-safe so components can run without metrics.

// ConflictDetected counts a duplicate-name rejection at the given stage.
func (m *Metrics) ConflictDetected(stage string) {
	if m == nil {
		return
	}
	m.MinistryConflicts.WithLabelValues(stage).Inc()
}

// SearchPerformed counts one directory search.
func (m *Metrics) SearchPerformed() {
	if m == nil {
		return
	}
	m.SearchesTotal.Inc()
}

// CacheLookup counts a suggestion cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Inc()
		return
	}
	m.CacheMisses.Inc()
}

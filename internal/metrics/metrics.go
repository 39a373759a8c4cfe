// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

// Package metrics declares the Prometheus collectors for the HTTP API, the
// in-process caches, outbound Beehiiv calls, the circuit breaker and the
// key-value store. Collectors register with the default registry via promauto
// and are served from /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Cache Metrics, labelled by cache name (opens_summary, dormant_count)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses (absent or expired)",
		},
		[]string{"cache"},
	)

	CacheComputes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_computes_total",
			Help: "Total number of successful recomputations stored in a cache",
		},
		[]string{"cache"},
	)

	// Beehiiv Client Metrics
	BeehiivRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beehiiv_requests_total",
			Help: "Total number of outbound Beehiiv API requests",
		},
		[]string{"endpoint", "result"}, // result: "ok", "http_error", "transport_error"
	)

	BeehiivRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beehiiv_request_duration_seconds",
			Help:    "Outbound Beehiiv API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	DormantStrategyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dormant_strategy_total",
			Help: "Dormant-count lookup attempts by strategy and outcome",
		},
		[]string{"strategy", "result"}, // result: "hit", "miss", "error"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Store Metrics
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kv_store_operations_total",
			Help: "Total number of key-value store operations",
		},
		[]string{"backend", "operation", "result"}, // result: "ok", "not_found", "error"
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kv_store_gc_runs_total",
			Help: "Value-log garbage collection runs by outcome",
		},
		[]string{"result"}, // result: "rewritten", "noop", "error"
	)

	// Content Metrics
	InquiriesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inquiries_received_total",
			Help: "Total number of sponsorship inquiries accepted",
		},
	)

	// Auth Metrics
	AuthFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "Rejected admin logins and bearer tokens",
		},
		[]string{"kind"}, // kind: "password", "token"
	)
)

// RecordAPIRequest records an API request with its status and latency.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a hit or miss for the named cache.
func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
	} else {
		CacheMisses.WithLabelValues(cache).Inc()
	}
}

// RecordCacheCompute records a computed value being stored in the named cache.
func RecordCacheCompute(cache string) {
	CacheComputes.WithLabelValues(cache).Inc()
}

// RecordBeehiivRequest records one outbound Beehiiv call.
func RecordBeehiivRequest(endpoint, result string, duration time.Duration) {
	BeehiivRequestsTotal.WithLabelValues(endpoint, result).Inc()
	BeehiivRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordStoreOperation records a key-value store operation.
func RecordStoreOperation(backend, operation, result string) {
	StoreOperationsTotal.WithLabelValues(backend, operation, result).Inc()
}

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recetario_db_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_db_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recetario_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recetario_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_recommend_requests_total",
			Help: "Total recommendation requests by mode and outcome",
		},
		[]string{"mode", "outcome"}, // outcome: ok, error
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recetario_recommend_duration_seconds",
			Help:    "Recommendation generation time in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	RecommendResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recetario_recommend_result_size",
			Help:    "Number of recipes returned per recommendation",
			Buckets: []float64{0, 1, 3, 6, 9, 12},
		},
		[]string{"mode"},
	)

	RecommendSimilarUsers = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recetario_recommend_similar_users",
			Help:    "Number of similar users found per smart recommendation",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recetario_recommend_cache_hits_total",
			Help: "Total recommendation result cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recetario_recommend_cache_misses_total",
			Help: "Total recommendation result cache misses",
		},
	)

	RecommendCachePurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recetario_recommend_cache_purged_total",
			Help: "Total expired cache entries removed by the janitor",
		},
	)

	// Circuit Breaker Metrics
	BreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recetario_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	BreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)

	// Domain Activity Metrics
	LikeToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_like_toggles_total",
			Help: "Total like toggles by resulting state",
		},
		[]string{"state"}, // liked, unliked
	)

	SearchesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_searches_recorded_total",
			Help: "Total search history entries recorded",
		},
		[]string{"kind"}, // text, ingredients
	)

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recetario_auth_attempts_total",
			Help: "Authentication attempts by action and result",
		},
		[]string{"action", "result"}, // action: login, register
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, route, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation request.
func RecordRecommendation(mode string, duration time.Duration, results int, err error) {
	if err != nil {
		RecommendRequests.WithLabelValues(mode, "error").Inc()
		return
	}
	RecommendRequests.WithLabelValues(mode, "ok").Inc()
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
	RecommendResultSize.WithLabelValues(mode).Observe(float64(results))
}

// RecordSimilarUsers records how many neighbors a smart request used.
func RecordSimilarUsers(n int) {
	RecommendSimilarUsers.Observe(float64(n))
}

// RecordCacheLookup records a result cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendCacheHits.Inc()
	} else {
		RecommendCacheMisses.Inc()
	}
}

// RecordBreakerState records a circuit breaker state transition.
// state uses gobreaker's numbering: 0 closed, 1 half-open, 2 open.
func RecordBreakerState(name string, state int) {
	BreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordBreakerResult records the outcome of a call through the breaker.
func RecordBreakerResult(name, result string) {
	BreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordLikeToggle records a like toggle by its resulting state.
func RecordLikeToggle(liked bool) {
	state := "unliked"
	if liked {
		state = "liked"
	}
	LikeToggles.WithLabelValues(state).Inc()
}

// RecordSearch records a search history entry.
func RecordSearch(kind string) {
	SearchesRecorded.WithLabelValues(kind).Inc()
}

// RecordAuthAttempt records a login or registration attempt.
func RecordAuthAttempt(action string, success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	AuthAttempts.WithLabelValues(action, result).Inc()
}

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package metrics provides Prometheus metrics for Recetario.

All collectors are registered on the default registry with promauto and are
exposed at /metrics through promhttp.

# Available Metrics

Database:
  - recetario_db_query_duration_seconds{operation}
  - recetario_db_query_errors_total{operation}

API:
  - recetario_api_requests_total{method, route, status_code}
  - recetario_api_request_duration_seconds{method, route}
  - recetario_api_active_requests

Recommendations:
  - recetario_recommend_requests_total{mode, outcome}
  - recetario_recommend_duration_seconds{mode}
  - recetario_recommend_result_size{mode}
  - recetario_recommend_similar_users
  - recetario_recommend_cache_hits_total, recetario_recommend_cache_misses_total
  - recetario_recommend_cache_purged_total

Circuit breaker:
  - recetario_breaker_state{name} (0=closed, 1=half-open, 2=open)
  - recetario_breaker_requests_total{name, result}

Activity:
  - recetario_like_toggles_total{state}
  - recetario_searches_recorded_total{kind}
  - recetario_auth_attempts_total{action, result}

Route labels use chi route patterns, not raw paths, to bound cardinality.
*/
package metrics

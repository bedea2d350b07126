// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package middleware provides chi-compatible HTTP middleware shared by the API
router.

  - RequestID: assigns X-Request-ID and correlation IDs and stores them in the
    logging context
  - PrometheusMetrics: records request counts, durations and in-flight
    requests labelled by chi route pattern
  - AccessLog: one structured log line per request, with a warning for slow
    requests

All middleware has the signature func(http.Handler) http.Handler so it can be
passed to chi's r.Use.
*/
package middleware

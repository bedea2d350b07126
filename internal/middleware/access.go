// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/recetario/internal/logging"
)

// DefaultSlowThreshold is the duration above which AccessLog warns.
const DefaultSlowThreshold = time.Second

// AccessLog returns middleware that writes one log line per request.
// Server errors log at error level, requests slower than slow at warn, and
// everything else at debug. A non-positive slow uses DefaultSlowThreshold.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := newStatusWriter(w)

			next.ServeHTTP(wrapper, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())

			event := logger.Debug()
			msg := "Request handled"
			switch {
			case wrapper.statusCode >= http.StatusInternalServerError:
				event = logger.Error()
			case duration > slow:
				event = logger.Warn().Int64("threshold_ms", slow.Milliseconds())
				msg = "Slow request detected"
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", wrapper.statusCode).
				Int64("duration_ms", duration.Milliseconds()).
				Msg(msg)
		})
	}
}

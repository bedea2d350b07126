// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"context"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status       string  `json:"status"`
	Database     string  `json:"database"`
	Breaker      string  `json:"breaker,omitempty"`
	CacheEnabled bool    `json:"cache_enabled"`
	Uptime       float64 `json:"uptime_seconds"`
}

// Health handles GET /api/v1/health. It returns 503 when DuckDB does not
// answer a ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status := HealthStatus{
		Status:       "healthy",
		Database:     "connected",
		CacheEnabled: h.engine.CacheEnabled(),
		Uptime:       time.Since(h.startTime).Seconds(),
	}
	code := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("Health check ping failed")
		status.Status = "unhealthy"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	}
	if h.breaker != nil {
		status.Breaker = h.breaker.State().String()
	}

	respondOK(w, r, code, &status)
}

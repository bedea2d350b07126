// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/recetario/internal/logging"
	"github.com/tomtom215/recetario/internal/metrics"
	"github.com/tomtom215/recetario/internal/recommend"
)

// SmartRecommendations handles GET /api/v1/recommendations/smart.
func (h *Handler) SmartRecommendations(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), recommend.Request{
		UserID:    claims.UserID,
		RequestID: logging.RequestIDFromContext(r.Context()),
		SkipCache: r.URL.Query().Get("refresh") == "true",
	})
	if err != nil {
		metrics.RecordRecommendation(string(recommend.ModeSmart), time.Since(start), 0, err)
		respondServiceError(w, r, "smart_recommendations", err)
		return
	}

	metrics.RecordRecommendation(string(recommend.ModeSmart), time.Since(start), len(resp.Items), nil)
	metrics.RecordSimilarUsers(resp.Metadata.SimilarUsers)
	if h.engine.CacheEnabled() {
		metrics.RecordCacheLookup(resp.Metadata.CacheHit)
	}

	published, err := h.db.PublishedRecipeCount(r.Context())
	if err != nil {
		respondServiceError(w, r, "published_recipe_count", err)
		return
	}

	items := resp.Items
	if items == nil {
		items = []recommend.ScoredCandidate{}
	}

	respondOK(w, r, http.StatusOK, &smartResponse{
		Recommendations: items,
		AlgorithmInfo: algorithmInfo{
			Version:        smartAlgorithmVersion,
			TotalAnalyzed:  published,
			Candidates:     resp.TotalCandidates,
			Scored:         resp.Metadata.Scored,
			SimilarUsers:   resp.Metadata.SimilarUsers,
			ActivityScore:  resp.Metadata.ActivityScore,
			CacheHit:       resp.Metadata.CacheHit,
			GeneratedAt:    resp.Metadata.Timestamp,
			ProcessingTime: resp.Metadata.LatencyMS,
		},
	})
}

// ClassicRecommendations handles GET /api/v1/recommendations/classic.
func (h *Handler) ClassicRecommendations(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	start := time.Now()
	resp, err := h.engine.RecommendClassic(r.Context(), claims.UserID)
	if err != nil {
		metrics.RecordRecommendation(string(recommend.ModeClassic), time.Since(start), 0, err)
		respondServiceError(w, r, "classic_recommendations", err)
		return
	}

	metrics.RecordRecommendation(string(recommend.ModeClassic), time.Since(start), len(resp.Items), nil)
	if h.engine.CacheEnabled() {
		metrics.RecordCacheLookup(resp.Metadata.CacheHit)
	}

	items := resp.Items
	if items == nil {
		items = []recommend.ClassicItem{}
	}

	respondOK(w, r, http.StatusOK, &classicResponse{
		Recommendations: items,
		Stats:           resp.Stats,
		CacheHit:        resp.Metadata.CacheHit,
		GeneratedAt:     resp.Metadata.Timestamp,
	})
}

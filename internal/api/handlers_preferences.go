// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"net/http"

	"github.com/tomtom215/recetario/internal/database"
)

// GetPreferences handles GET /api/v1/preferences.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	prefs, err := h.db.PreferenceIDs(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, r, "preference_ids", err)
		return
	}
	respondOK(w, r, http.StatusOK, normalizePreferences(prefs))
}

// UpdatePreferences handles PUT /api/v1/preferences. The request replaces
// both favorite lists; unknown IDs are ignored.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req preferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	err := h.db.SetPreferences(r.Context(), claims.UserID, database.PreferenceIDs{
		TagIDs:        req.TagIDs,
		IngredientIDs: req.IngredientIDs,
	})
	if err != nil {
		respondServiceError(w, r, "set_preferences", err)
		return
	}
	h.engine.InvalidateUser(r.Context(), claims.UserID)

	prefs, err := h.db.PreferenceIDs(r.Context(), claims.UserID)
	if err != nil {
		respondServiceError(w, r, "preference_ids", err)
		return
	}
	respondOK(w, r, http.StatusOK, normalizePreferences(prefs))
}

func normalizePreferences(p database.PreferenceIDs) database.PreferenceIDs {
	if p.TagIDs == nil {
		p.TagIDs = []int{}
	}
	if p.IngredientIDs == nil {
		p.IngredientIDs = []int{}
	}
	return p
}

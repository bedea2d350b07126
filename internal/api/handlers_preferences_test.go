// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"net/http"
	"testing"

	"github.com/tomtom215/recetario/internal/database"
)

func TestPreferences_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor("carla")

	rec, body := env.do(http.MethodGet, "/api/v1/preferences", token, nil)
	expectStatus(t, rec, http.StatusOK)
	var prefs database.PreferenceIDs
	decodeData(t, body, &prefs)
	if prefs.TagIDs == nil || prefs.IngredientIDs == nil {
		t.Fatal("empty preferences should be arrays, not null")
	}
	if len(prefs.TagIDs)+len(prefs.IngredientIDs) != 0 {
		t.Fatalf("new user preferences = %+v, want empty", prefs)
	}

	tomato := env.ingredientID("Tomate")
	rec, body = env.do(http.MethodPut, "/api/v1/preferences", token, map[string][]int{
		"favorite_tag_ids":        {1, 2},
		"favorite_ingredient_ids": {tomato, 99999},
	})
	expectStatus(t, rec, http.StatusOK)
	decodeData(t, body, &prefs)
	if len(prefs.TagIDs) != 2 {
		t.Errorf("tag ids = %v, want 2", prefs.TagIDs)
	}
	if len(prefs.IngredientIDs) != 1 || prefs.IngredientIDs[0] != tomato {
		t.Errorf("ingredient ids = %v, want [%d] (unknown ids dropped)", prefs.IngredientIDs, tomato)
	}

	rec, body = env.do(http.MethodGet, "/api/v1/preferences", token, nil)
	expectStatus(t, rec, http.StatusOK)
	decodeData(t, body, &prefs)
	if len(prefs.TagIDs) != 2 || len(prefs.IngredientIDs) != 1 {
		t.Errorf("stored preferences = %+v", prefs)
	}

	// Replacing with empty lists clears both.
	rec, body = env.do(http.MethodPut, "/api/v1/preferences", token, map[string][]int{})
	expectStatus(t, rec, http.StatusOK)
	decodeData(t, body, &prefs)
	if len(prefs.TagIDs)+len(prefs.IngredientIDs) != 0 {
		t.Errorf("cleared preferences = %+v", prefs)
	}
}

func TestPreferences_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor("carla")

	tests := []struct {
		name string
		body interface{}
	}{
		{"zero id", map[string][]int{"favorite_tag_ids": {0}}},
		{"duplicate ids", map[string][]int{"favorite_ingredient_ids": {3, 3}}},
		{"unknown field", map[string][]int{"favorite_recipes": {1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(http.MethodPut, "/api/v1/preferences", token, tt.body)
			expectStatus(t, rec, http.StatusBadRequest)
			expectErrorCode(t, body, "VALIDATION_ERROR")
		})
	}
}

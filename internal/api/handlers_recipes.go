// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/recetario/internal/database"
	"github.com/tomtom215/recetario/internal/metrics"
	"github.com/tomtom215/recetario/internal/recommend"
)

// ingredientSearchPrefix starts the history term of an ingredient search.
const ingredientSearchPrefix = "Búsqueda por ingredientes: "

// ListRecipes handles GET /api/v1/recipes. Text searches by an
// authenticated user are added to their search history.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	q := parseRecipeListQuery(r)
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	page, err := h.db.ListRecipes(r.Context(), &database.RecipeFilter{
		Query:      q.Query,
		TagID:      q.TagID,
		Difficulty: recommend.Difficulty(q.Difficulty),
		Sort:       q.Sort,
		Page:       q.Page,
	})
	if err != nil {
		respondServiceError(w, r, "list_recipes", err)
		return
	}
	if page.Recipes == nil {
		page.Recipes = []recommend.Recipe{}
	}

	if claims, ok := currentUser(r); ok && q.Query != "" {
		// Only the term is kept; the tag filter is not linked to the entry.
		h.recordSearch(r.Context(), &database.SearchRecord{UserID: claims.UserID, Term: q.Query, Kind: database.SearchKindText})
	}

	respondOK(w, r, http.StatusOK, page)
}

// SearchByIngredients handles GET /api/v1/recipes/search/ingredients.
// Recipes are ordered by how many of the chosen ingredients they use. Only
// searches by an authenticated user are added to their history.
func (h *Handler) SearchByIngredients(w http.ResponseWriter, r *http.Request) {
	q := ingredientSearchQuery{IngredientIDs: parseIngredientIDs(r)}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	ingredients, err := h.db.IngredientsByID(r.Context(), q.IngredientIDs)
	if err != nil {
		respondServiceError(w, r, "ingredients_by_id", err)
		return
	}

	resp := &ingredientSearchResponse{
		Ingredients: ingredients,
		Recipes:     []database.IngredientMatch{},
	}
	if resp.Ingredients == nil {
		resp.Ingredients = []database.Ingredient{}
	}
	if len(ingredients) == 0 {
		respondOK(w, r, http.StatusOK, resp)
		return
	}

	ids := make([]int, len(ingredients))
	names := make([]string, len(ingredients))
	for i, ing := range ingredients {
		ids[i] = ing.ID
		names[i] = ing.Name
	}

	matches, err := h.db.SearchByIngredients(r.Context(), ids)
	if err != nil {
		respondServiceError(w, r, "search_by_ingredients", err)
		return
	}
	if matches != nil {
		resp.Recipes = matches
	}
	resp.Total = len(resp.Recipes)

	if claims, ok := currentUser(r); ok {
		h.recordSearch(r.Context(), &database.SearchRecord{
			UserID:        claims.UserID,
			Term:          ingredientSearchPrefix + strings.Join(names, ", "),
			Kind:          database.SearchKindIngredients,
			IngredientIDs: ids,
		})
	}

	respondOK(w, r, http.StatusOK, resp)
}

// recordSearch stores a history entry and drops the user's cached
// recommendations. Failures are logged; the search itself still succeeds.
func (h *Handler) recordSearch(ctx context.Context, rec *database.SearchRecord) {
	if _, err := h.db.RecordSearch(ctx, rec); err != nil {
		h.logger.Warn().Err(err).Int("user_id", rec.UserID).Str("kind", rec.Kind).Msg("Failed to record search")
		return
	}
	metrics.RecordSearch(rec.Kind)
	h.engine.InvalidateUser(ctx, rec.UserID)
}

// ToggleLike handles POST /api/v1/recipes/{id}/like.
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireUser(w, r)
	if !ok {
		return
	}

	recipeID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || recipeID <= 0 {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid recipe id")
		return
	}

	liked, count, err := h.db.ToggleLike(r.Context(), claims.UserID, recipeID)
	if err != nil {
		respondServiceError(w, r, "toggle_like", err)
		return
	}

	metrics.RecordLikeToggle(liked)
	h.engine.InvalidateUser(r.Context(), claims.UserID)

	respondOK(w, r, http.StatusOK, &likeResponse{RecipeID: recipeID, Liked: liked, LikesCount: count})
}

// IngredientAutocomplete handles GET /api/v1/ingredients/search?q=.
// Queries shorter than two characters return an empty list.
func (h *Handler) IngredientAutocomplete(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.db.SearchIngredients(r.Context(), strings.TrimSpace(r.URL.Query().Get("q")))
	if err != nil {
		respondServiceError(w, r, "search_ingredients", err)
		return
	}
	if ingredients == nil {
		ingredients = []database.Ingredient{}
	}
	respondOK(w, r, http.StatusOK, ingredients)
}

// Tags handles GET /api/v1/tags.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.db.ListTags(r.Context())
	if err != nil {
		respondServiceError(w, r, "list_tags", err)
		return
	}
	if tags == nil {
		tags = []database.Tag{}
	}
	respondOK(w, r, http.StatusOK, tags)
}

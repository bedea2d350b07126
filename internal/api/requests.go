// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/recetario/internal/database"
	"github.com/tomtom215/recetario/internal/recommend"
)

// registerRequest is the body of POST /auth/register.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Username string `json:"username" validate:"required,max=30"`
	Password string `json:"password" validate:"required,max=72"`
}

// authResponse is returned by register and login.
type authResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *database.User `json:"user"`
}

// preferencesRequest is the body of PUT /preferences.
type preferencesRequest struct {
	TagIDs        []int `json:"favorite_tag_ids" validate:"max=50,unique,dive,gt=0"`
	IngredientIDs []int `json:"favorite_ingredient_ids" validate:"max=200,unique,dive,gt=0"`
}

// recipeListQuery is the parsed query of GET /recipes.
type recipeListQuery struct {
	Query      string `json:"q" validate:"max=100"`
	TagID      int    `json:"tag" validate:"min=0"`
	Difficulty string `json:"difficulty" validate:"difficulty"`
	Sort       string `json:"sort" validate:"recipesort"`
	Page       int    `json:"page" validate:"min=0"`
}

// ingredientSearchQuery is the parsed query of GET /recipes/search/ingredients.
type ingredientSearchQuery struct {
	IngredientIDs []int `json:"ingredient" validate:"required,min=1,max=20,dive,gt=0"`
}

// likeResponse is returned by POST /recipes/{id}/like.
type likeResponse struct {
	RecipeID   int  `json:"recipe_id"`
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// algorithmInfo describes how a smart recommendation was produced.
// TotalAnalyzed counts every published recipe; Candidates counts the ones
// left after removing the user's own and liked recipes.
type algorithmInfo struct {
	Version        string    `json:"version"`
	TotalAnalyzed  int       `json:"total_analyzed"`
	Candidates     int       `json:"candidates"`
	Scored         int       `json:"scored"`
	SimilarUsers   int       `json:"similar_users"`
	ActivityScore  int       `json:"activity_score"`
	CacheHit       bool      `json:"cache_hit"`
	GeneratedAt    time.Time `json:"generated_at"`
	ProcessingTime int64     `json:"processing_time_ms"`
}

// smartResponse is returned by GET /recommendations/smart.
type smartResponse struct {
	Recommendations []recommend.ScoredCandidate `json:"recommendations"`
	AlgorithmInfo   algorithmInfo               `json:"algorithm_info"`
}

// classicResponse is returned by GET /recommendations/classic.
type classicResponse struct {
	Recommendations []recommend.ClassicItem `json:"recommendations"`
	Stats           recommend.ClassicStats  `json:"stats"`
	CacheHit        bool                    `json:"cache_hit"`
	GeneratedAt     time.Time               `json:"generated_at"`
}

// ingredientSearchResponse is returned by GET /recipes/search/ingredients.
type ingredientSearchResponse struct {
	Ingredients []database.Ingredient      `json:"ingredients"`
	Recipes     []database.IngredientMatch `json:"recipes"`
	Total       int                        `json:"total"`
}

// smartAlgorithmVersion is reported in algorithm_info.
const smartAlgorithmVersion = "2.0"

// parseRecipeListQuery reads the listing filters. Malformed integers are
// kept as -1 so validation rejects them.
func parseRecipeListQuery(r *http.Request) recipeListQuery {
	q := r.URL.Query()
	return recipeListQuery{
		Query:      strings.TrimSpace(q.Get("q")),
		TagID:      queryInt(q.Get("tag"), 0),
		Difficulty: q.Get("difficulty"),
		Sort:       q.Get("sort"),
		Page:       queryInt(q.Get("page"), 0),
	}
}

// parseIngredientIDs reads repeated ?ingredient= values. Comma-separated
// lists are accepted too.
func parseIngredientIDs(r *http.Request) []int {
	var ids []int
	for _, raw := range r.URL.Query()["ingredient"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			ids = append(ids, queryInt(part, -1))
		}
	}
	return ids
}

// queryInt parses an integer query value. Empty returns def; anything
// unparsable returns -1.
func queryInt(value string, def int) int {
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}
	return n
}

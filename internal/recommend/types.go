// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"context"
	"time"
)

// Difficulty is the preparation difficulty of a recipe.
type Difficulty string

const (
	// DifficultyEasy is the "facil" difficulty.
	DifficultyEasy Difficulty = "facil"
	// DifficultyIntermediate is the "intermedio" difficulty.
	DifficultyIntermediate Difficulty = "intermedio"
	// DifficultyHard is the "dificil" difficulty.
	DifficultyHard Difficulty = "dificil"
)

// Valid reports whether d is one of the known difficulty labels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyIntermediate, DifficultyHard:
		return true
	default:
		return false
	}
}

// TimeBucket classifies a recipe by its total preparation time.
type TimeBucket string

const (
	// BucketShort covers recipes of 30 minutes or less.
	BucketShort TimeBucket = "short"
	// BucketMedium covers recipes of 31 to 60 minutes.
	BucketMedium TimeBucket = "medium"
	// BucketLong covers recipes over an hour.
	BucketLong TimeBucket = "long"
)

// ClassifyTime returns the time bucket for a total time in minutes.
func ClassifyTime(totalMinutes int) TimeBucket {
	switch {
	case totalMinutes <= 30:
		return BucketShort
	case totalMinutes <= 60:
		return BucketMedium
	default:
		return BucketLong
	}
}

// Recipe is the read-only view of a recipe that the engine scores.
type Recipe struct {
	// ID is the recipe identifier.
	ID int `json:"id"`

	// Title is the recipe title.
	Title string `json:"title"`

	// Tags is the set of tag labels attached to the recipe.
	Tags []string `json:"tags"`

	// Ingredients is the set of ingredient names the recipe requires.
	Ingredients []string `json:"ingredients"`

	// PrepTime is the preparation time in minutes (0 when unknown).
	PrepTime int `json:"prep_time"`

	// CookTime is the cooking time in minutes (0 when unknown).
	CookTime int `json:"cook_time"`

	// Difficulty is the difficulty label.
	Difficulty Difficulty `json:"difficulty"`

	// LikeCount is the number of users who liked the recipe.
	LikeCount int `json:"like_count"`

	// AuthorID is the user who published the recipe.
	AuthorID int `json:"author_id"`

	// Published reports whether the recipe is publicly visible.
	Published bool `json:"published"`

	// CreatedAt is when the recipe was created.
	CreatedAt time.Time `json:"created_at"`
}

// TotalTime returns preparation plus cooking time in minutes.
//
//nolint:gocritic // value receiver keeps Recipe usable as a map value
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// SearchEntry is one entry of a user's search history.
type SearchEntry struct {
	// Term is the raw search term as typed or generated.
	Term string `json:"term"`

	// Tags lists the tag labels that were part of the search.
	Tags []string `json:"tags,omitempty"`

	// Ingredients lists the ingredient names that were part of the search.
	Ingredients []string `json:"ingredients,omitempty"`

	// CreatedAt is when the search was made.
	CreatedAt time.Time `json:"created_at"`
}

// Preferences holds a user's explicitly chosen favorites.
type Preferences struct {
	// Tags lists favorite tag labels.
	Tags []string `json:"tags"`

	// Ingredients lists favorite ingredient names.
	Ingredients []string `json:"ingredients"`
}

// CoLiker is another user who liked some of the same recipes.
type CoLiker struct {
	// UserID is the other user.
	UserID int `json:"user_id"`

	// Shared is the number of recipes both users liked.
	Shared int `json:"shared"`
}

// UserProfile aggregates a user's historical signals.
// It is built fresh for every request and never mutated afterwards.
type UserProfile struct {
	// UserID is the profiled user.
	UserID int `json:"user_id"`

	// Tags counts tag occurrences across liked recipes.
	Tags map[string]int `json:"tags"`

	// Ingredients counts ingredient occurrences across liked recipes.
	Ingredients map[string]int `json:"ingredients"`

	// SearchTerms holds recent lowercase search terms, most recent first.
	SearchTerms []string `json:"search_terms"`

	// TimePreferences counts liked recipes per time bucket.
	TimePreferences map[TimeBucket]int `json:"time_preferences"`

	// DifficultyPreferences counts liked recipes per difficulty.
	DifficultyPreferences map[Difficulty]int `json:"difficulty_preferences"`

	// ActivityScore weighs likes, searches and authored recipes.
	ActivityScore int `json:"activity_score"`

	// LikedRecipeIDs lists the recipes the profile was built from.
	LikedRecipeIDs []int `json:"liked_recipe_ids"`
}

// SimilarUser is a neighbor found by the collaborative pass.
type SimilarUser struct {
	// UserID is the neighbor.
	UserID int `json:"user_id"`

	// Similarity is in (threshold, 1].
	Similarity float64 `json:"similarity"`

	// liked is the set of recipes the neighbor liked.
	liked map[int]struct{}
}

// NewSimilarUser builds a SimilarUser with its liked recipe set.
func NewSimilarUser(userID int, similarity float64, likedRecipeIDs []int) SimilarUser {
	liked := make(map[int]struct{}, len(likedRecipeIDs))
	for _, id := range likedRecipeIDs {
		liked[id] = struct{}{}
	}
	return SimilarUser{UserID: userID, Similarity: similarity, liked: liked}
}

// Likes reports whether the neighbor liked the recipe.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (s SimilarUser) Likes(recipeID int) bool {
	_, ok := s.liked[recipeID]
	return ok
}

// ScoreBreakdown records the contribution of each scoring term.
type ScoreBreakdown struct {
	Tag           float64 `json:"tag"`
	Ingredient    float64 `json:"ingredient"`
	Collaborative float64 `json:"collaborative"`
	Popularity    float64 `json:"popularity"`
	Freshness     float64 `json:"freshness"`
	Noise         float64 `json:"noise"`
	TimeAffinity  float64 `json:"time_affinity"`
	Difficulty    float64 `json:"difficulty"`
}

// Total sums all terms.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (b ScoreBreakdown) Total() float64 {
	return b.Tag + b.Ingredient + b.Collaborative + b.Popularity +
		b.Freshness + b.Noise + b.TimeAffinity + b.Difficulty
}

// ScoredCandidate is a recipe with its computed score.
type ScoredCandidate struct {
	// Recipe is the scored recipe.
	Recipe Recipe `json:"recipe"`

	// Score is the sum of all terms. It has no upper bound.
	Score float64 `json:"score"`

	// Breakdown is the per-term contribution to Score.
	Breakdown ScoreBreakdown `json:"breakdown"`

	// Reason is a short explanation for the strongest signal.
	Reason string `json:"reason,omitempty"`

	tags        map[string]struct{}
	ingredients map[string]struct{}
}

// Mode identifies which recommender produced a response.
type Mode string

const (
	// ModeSmart is the hybrid scoring pipeline.
	ModeSmart Mode = "smart"
	// ModeClassic is the rule-based tag/search/preference pipeline.
	ModeClassic Mode = "classic"
)

// Request is a recommendation request.
type Request struct {
	// UserID is the user to recommend for.
	UserID int `json:"user_id"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`

	// SkipCache bypasses the result cache for this request.
	SkipCache bool `json:"skip_cache,omitempty"`
}

// Response is the result of a recommendation request.
type Response struct {
	// Items is the ordered list of recommendations.
	Items []ScoredCandidate `json:"items"`

	// TotalCandidates is the size of the candidate pool.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// RecipeIDs returns the recommended recipe identifiers in order.
func (r *Response) RecipeIDs() []int {
	ids := make([]int, len(r.Items))
	for i := range r.Items {
		ids[i] = r.Items[i].Recipe.ID
	}
	return ids
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	RequestID     string    `json:"request_id"`
	UserID        int       `json:"user_id"`
	Mode          Mode      `json:"mode"`
	SimilarUsers  int       `json:"similar_users"`
	Scored        int       `json:"scored"`
	ActivityScore int       `json:"activity_score"`
	LatencyMS     int64     `json:"latency_ms"`
	CacheHit      bool      `json:"cache_hit"`
	Timestamp     time.Time `json:"timestamp"`
}

// DataProvider is the read-only query surface the engine needs.
// It is implemented by the database package.
type DataProvider interface {
	// LikedRecipes returns every recipe the user liked, published or not,
	// with tags and ingredients attached.
	LikedRecipes(ctx context.Context, userID int) ([]Recipe, error)

	// AuthoredRecipeCount returns how many recipes the user authored.
	AuthoredRecipeCount(ctx context.Context, userID int) (int, error)

	// RecentSearches returns search entries created at or after since, most
	// recent first, at most limit entries. A zero since disables the window.
	RecentSearches(ctx context.Context, userID int, since time.Time, limit int) ([]SearchEntry, error)

	// CandidateRecipes returns published recipes not authored by and not
	// liked by the user.
	CandidateRecipes(ctx context.Context, userID int) ([]Recipe, error)

	// CoLikers returns other users who liked at least one recipe in
	// recipeIDs, ordered by shared count descending then user ID.
	CoLikers(ctx context.Context, userID int, recipeIDs []int, limit int) ([]CoLiker, error)

	// HasLiked reports whether the like relationship exists. The engine
	// does not call it: the collaborative term reads SimilarUser.Likes,
	// loaded once per neighbour, instead of issuing one query per
	// candidate and neighbour. It is kept for single-pair checks by other
	// callers of the provider.
	HasLiked(ctx context.Context, userID, recipeID int) (bool, error)
}

// PreferenceProvider is the extra query the classic recommender needs.
type PreferenceProvider interface {
	Preferences(ctx context.Context, userID int) (Preferences, error)
}

// Reranker post-processes a ranked candidate list.
type Reranker interface {
	// Name returns the reranker identifier.
	Name() string

	// Rerank selects up to k candidates from items, which arrive sorted by
	// descending score.
	Rerank(ctx context.Context, items []ScoredCandidate, k int) []ScoredCandidate
}

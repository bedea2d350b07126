// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Classic recommendation sources.
const (
	SourceTags        = "tags"
	SourceSearches    = "searches"
	SourcePreferences = "preferences"
	SourcePopular     = "popular"
)

// ClassicItem is one rule-based recommendation.
type ClassicItem struct {
	// Recipe is the recommended recipe.
	Recipe Recipe `json:"recipe"`

	// Source names the stage that selected the recipe.
	Source string `json:"source"`

	// Matches is the number of matching tags and ingredients for the stage.
	Matches int `json:"matches"`
}

// ClassicStats summarizes the signals the classic recommender used.
type ClassicStats struct {
	LikedRecipes         int `json:"liked_recipes"`
	Searches             int `json:"searches"`
	FavoriteTags         int `json:"favorite_tags"`
	FavoriteIngredients  int `json:"favorite_ingredients"`
	TagBased             int `json:"tag_based"`
	SearchBased          int `json:"search_based"`
	PreferenceBased      int `json:"preference_based"`
	PopularFill          int `json:"popular_fill"`
	CandidatesConsidered int `json:"candidates_considered"`
}

// ClassicResponse is the result of RecommendClassic.
type ClassicResponse struct {
	Items    []ClassicItem    `json:"items"`
	Stats    ClassicStats     `json:"stats"`
	Metadata ResponseMetadata `json:"metadata"`
}

// RecommendClassic builds rule-based recommendations in four stages:
// recipes sharing tags with the user's published likes, recipes matching
// recent searches, recipes matching saved preferences, and popular recipes
// to fill the list. Each stage skips recipes chosen by an earlier one.
func (e *Engine) RecommendClassic(ctx context.Context, userID int) (*ClassicResponse, error) {
	start := time.Now()
	e.classicCount.Add(1)

	req := e.prepareRequest(Request{UserID: userID})
	logger := e.createRequestLogger(req, ModeClassic)

	if e.dataProvider == nil {
		e.errorCount.Add(1)
		return nil, ErrNoDataProvider
	}

	if e.results != nil {
		var cached ClassicResponse
		if e.loadCached(ctx, userID, ModeClassic, &cached) {
			e.cacheHits.Add(1)
			if cached.Items == nil {
				cached.Items = []ClassicItem{}
			}
			cached.Metadata.RequestID = req.RequestID
			cached.Metadata.CacheHit = true
			cached.Metadata.LatencyMS = time.Since(start).Milliseconds()
			return &cached, nil
		}
		e.cacheMisses.Add(1)
	}

	liked, err := e.dataProvider.LikedRecipes(ctx, userID)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("liked recipes: %w", err)
	}

	searches, err := e.dataProvider.RecentSearches(ctx, userID, time.Time{}, e.config.ClassicSearchDepth)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("recent searches: %w", err)
	}

	var prefs Preferences
	if pp, ok := e.dataProvider.(PreferenceProvider); ok {
		prefs, err = pp.Preferences(ctx, userID)
		if err != nil {
			e.errorCount.Add(1)
			return nil, fmt.Errorf("preferences: %w", err)
		}
	}

	profile := BuildProfile(userID, liked, nil, 0, 0)
	candidates, err := e.getCandidates(ctx, userID, profile)
	if err != nil {
		e.errorCount.Add(1)
		return nil, fmt.Errorf("get candidates: %w", err)
	}

	publishedLikes := 0
	likedTags := make(map[string]struct{})
	for i := range liked {
		if !liked[i].Published {
			continue
		}
		publishedLikes++
		for _, t := range liked[i].Tags {
			likedTags[t] = struct{}{}
		}
	}

	searchTags := make(map[string]struct{})
	searchIngredients := make(map[string]struct{})
	for _, s := range searches {
		for _, t := range s.Tags {
			searchTags[t] = struct{}{}
		}
		for _, ing := range s.Ingredients {
			searchIngredients[ing] = struct{}{}
		}
	}

	stage := classicStage{limit: e.config.ClassicStageLimit, max: e.config.MaxResults}
	stage.chosen = make(map[int]struct{})

	stats := ClassicStats{
		LikedRecipes:         publishedLikes,
		Searches:             len(searches),
		FavoriteTags:         len(prefs.Tags),
		FavoriteIngredients:  len(prefs.Ingredients),
		CandidatesConsidered: len(candidates),
	}

	stats.TagBased = stage.pick(candidates, SourceTags, likedTags, nil)
	stats.SearchBased = stage.pick(candidates, SourceSearches, searchTags, searchIngredients)
	stats.PreferenceBased = stage.pick(candidates, SourcePreferences, toSet(prefs.Tags), toSet(prefs.Ingredients))
	stats.PopularFill = stage.fillPopular(candidates)

	items := stage.items
	if len(items) > e.config.MaxResults {
		items = items[:e.config.MaxResults]
	}

	resp := &ClassicResponse{
		Items:    items,
		Stats:    stats,
		Metadata: e.buildResponseMetadata(req, ModeClassic, start),
	}

	e.cacheResponse(ctx, userID, ModeClassic, resp)

	logger.Debug().
		Int("tag_based", stats.TagBased).
		Int("search_based", stats.SearchBased).
		Int("preference_based", stats.PreferenceBased).
		Int("popular_fill", stats.PopularFill).
		Msg("classic recommendation complete")

	return resp, nil
}

// classicStage accumulates picks across the classic stages.
type classicStage struct {
	limit  int
	max    int
	chosen map[int]struct{}
	items  []ClassicItem
}

type classicMatch struct {
	recipe  *Recipe
	matches int
}

// pick selects up to limit unchosen candidates with at least one matching
// tag or ingredient, ordered by match count then newest first. It returns
// the number of recipes added.
func (s *classicStage) pick(candidates []Recipe, source string, tags, ingredients map[string]struct{}) int {
	if len(tags) == 0 && len(ingredients) == 0 {
		return 0
	}

	matched := make([]classicMatch, 0)
	for i := range candidates {
		r := &candidates[i]
		if _, done := s.chosen[r.ID]; done {
			continue
		}
		n := countIn(r.Tags, tags) + countIn(r.Ingredients, ingredients)
		if n > 0 {
			matched = append(matched, classicMatch{recipe: r, matches: n})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].matches != matched[j].matches {
			return matched[i].matches > matched[j].matches
		}
		return newerFirst(matched[i].recipe, matched[j].recipe)
	})

	added := 0
	for _, m := range matched {
		if added >= s.limit {
			break
		}
		s.add(m.recipe, source, m.matches)
		added++
	}
	return added
}

// fillPopular tops the list up to max with the most liked remaining
// candidates.
func (s *classicStage) fillPopular(candidates []Recipe) int {
	need := s.max - len(s.items)
	if need <= 0 {
		return 0
	}

	rest := make([]*Recipe, 0, len(candidates))
	for i := range candidates {
		if _, done := s.chosen[candidates[i].ID]; !done {
			rest = append(rest, &candidates[i])
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		if rest[i].LikeCount != rest[j].LikeCount {
			return rest[i].LikeCount > rest[j].LikeCount
		}
		return newerFirst(rest[i], rest[j])
	})

	added := 0
	for _, r := range rest {
		if added >= need {
			break
		}
		s.add(r, SourcePopular, 0)
		added++
	}
	return added
}

func (s *classicStage) add(r *Recipe, source string, matches int) {
	s.chosen[r.ID] = struct{}{}
	s.items = append(s.items, ClassicItem{Recipe: *r, Source: source, Matches: matches})
}

func countIn(values []string, set map[string]struct{}) int {
	if len(set) == 0 {
		return 0
	}
	n := 0
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		if _, ok := set[v]; ok {
			n++
		}
	}
	return n
}

// newerFirst orders by creation time descending, then ID descending.
func newerFirst(a, b *Recipe) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

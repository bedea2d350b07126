// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"context"
	"fmt"
	"strings"
)

// Activity score weights.
const (
	activityPerLike     = 3
	activityPerSearch   = 1
	activityPerAuthored = 5
)

// BuildProfile aggregates liked recipes, recent searches and the authored
// recipe count into a UserProfile. searches must already be ordered most
// recent first and bounded; maxSearches caps the activity contribution.
func BuildProfile(userID int, liked []Recipe, searches []SearchEntry, authored, maxSearches int) *UserProfile {
	p := &UserProfile{
		UserID:                userID,
		Tags:                  make(map[string]int),
		Ingredients:           make(map[string]int),
		SearchTerms:           make([]string, 0, len(searches)),
		TimePreferences:       make(map[TimeBucket]int),
		DifficultyPreferences: make(map[Difficulty]int),
		LikedRecipeIDs:        make([]int, 0, len(liked)),
	}

	for i := range liked {
		r := &liked[i]
		p.LikedRecipeIDs = append(p.LikedRecipeIDs, r.ID)
		for _, tag := range r.Tags {
			p.Tags[tag]++
		}
		for _, ing := range r.Ingredients {
			p.Ingredients[ing]++
		}
		p.TimePreferences[ClassifyTime(r.TotalTime())]++
		if r.Difficulty != "" {
			p.DifficultyPreferences[r.Difficulty]++
		}
	}

	for _, s := range searches {
		p.SearchTerms = append(p.SearchTerms, strings.ToLower(s.Term))
	}

	searchCount := len(searches)
	if maxSearches > 0 && searchCount > maxSearches {
		searchCount = maxSearches
	}

	p.ActivityScore = len(liked)*activityPerLike +
		searchCount*activityPerSearch +
		authored*activityPerAuthored

	return p
}

// buildProfile loads the user's history through the data provider and
// aggregates it. It also returns the liked recipes for reuse by the
// neighbor search.
func (e *Engine) buildProfile(ctx context.Context, userID int) (*UserProfile, error) {
	liked, err := e.dataProvider.LikedRecipes(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("liked recipes: %w", err)
	}

	since := e.now().Add(-e.config.SearchWindow)
	searches, err := e.dataProvider.RecentSearches(ctx, userID, since, e.config.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	if len(searches) > e.config.SearchLimit {
		searches = searches[:e.config.SearchLimit]
	}

	authored, err := e.dataProvider.AuthoredRecipeCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("authored recipe count: %w", err)
	}

	return BuildProfile(userID, liked, searches, authored, e.config.SearchLimit), nil
}

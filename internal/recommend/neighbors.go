// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// Neighbor similarity weights.
const (
	neighborTagWeight        = 0.6
	neighborIngredientWeight = 0.4
)

// NeighborSimilarity combines tag and ingredient overlap between a profile
// and another user's liked recipes, clamped to 1.
func NeighborSimilarity(profile *UserProfile, theirLikes []Recipe) float64 {
	if len(theirLikes) == 0 {
		return 0
	}

	tags := make(map[string]int)
	ingredients := make(map[string]int)
	for i := range theirLikes {
		for _, tag := range theirLikes[i].Tags {
			tags[tag]++
		}
		for _, ing := range theirLikes[i].Ingredients {
			ingredients[ing]++
		}
	}

	sim := neighborTagWeight*OverlapSimilarity(profile.Tags, tags) +
		neighborIngredientWeight*OverlapSimilarity(profile.Ingredients, ingredients)
	if sim > 1 {
		sim = 1
	}
	return sim
}

// FindSimilarUsers returns up to MaxSimilarUsers neighbors whose similarity
// exceeds SimilarityThreshold, sorted by descending similarity with ties
// broken by ascending user ID.
func (e *Engine) FindSimilarUsers(ctx context.Context, profile *UserProfile) ([]SimilarUser, error) {
	if e.dataProvider == nil {
		return nil, ErrNoDataProvider
	}
	if len(profile.LikedRecipeIDs) == 0 {
		return []SimilarUser{}, nil
	}

	coLikers, err := e.dataProvider.CoLikers(ctx, profile.UserID, profile.LikedRecipeIDs, e.config.MaxNeighborCandidates)
	if err != nil {
		return nil, fmt.Errorf("co-likers: %w", err)
	}
	if len(coLikers) > e.config.MaxNeighborCandidates {
		coLikers = coLikers[:e.config.MaxNeighborCandidates]
	}

	similar := make([]SimilarUser, 0, len(coLikers))
	for _, cl := range coLikers {
		if cl.UserID == profile.UserID {
			continue
		}

		theirLikes, err := e.dataProvider.LikedRecipes(ctx, cl.UserID)
		if err != nil {
			return nil, fmt.Errorf("liked recipes of user %d: %w", cl.UserID, err)
		}

		sim := NeighborSimilarity(profile, theirLikes)
		if sim <= e.config.SimilarityThreshold {
			continue
		}

		ids := make([]int, len(theirLikes))
		for i := range theirLikes {
			ids[i] = theirLikes[i].ID
		}
		similar = append(similar, NewSimilarUser(cl.UserID, sim, ids))
	}

	sort.SliceStable(similar, func(i, j int) bool {
		if similar[i].Similarity != similar[j].Similarity {
			return similar[i].Similarity > similar[j].Similarity
		}
		return similar[i].UserID < similar[j].UserID
	})

	if len(similar) > e.config.MaxSimilarUsers {
		similar = similar[:e.config.MaxSimilarUsers]
	}

	return similar, nil
}

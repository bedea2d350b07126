// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Scoring weights. These are fixed; downstream thresholds depend on them.
const (
	tagWeight            = 0.4
	ingredientWeight     = 0.3
	collaborativeWeight  = 0.2
	popularityPerLike    = 0.1
	popularityCap        = 1.0
	freshnessWindowDays  = 30
	freshnessWeight      = 0.1
	noiseMin             = 0.05
	noiseMax             = 0.15
	timeAffinityBonus    = 0.1
	difficultyPerLike    = 0.05
	hoursPerDay          = 24
	reasonMinContributor = 0.2
)

// NoiseSource yields uniform values in [0, 1). It drives the small random
// nudge that keeps repeated requests from always returning the same order.
type NoiseSource interface {
	Float64() float64
}

// ConstantNoise is a NoiseSource that always returns the same value.
// ConstantNoise(0) pins the noise term to its lower bound.
type ConstantNoise float64

// Float64 returns the constant.
func (c ConstantNoise) Float64() float64 { return float64(c) }

// lockedSource makes a *rand.Rand safe for concurrent use.
type lockedSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newLockedSource(seed int64) *lockedSource {
	return &lockedSource{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // math/rand is fine for ranking noise
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// NoiseTerm maps a [0, 1) draw onto the [0.05, 0.15] noise range.
func NoiseTerm(src NoiseSource) float64 {
	return noiseMin + (noiseMax-noiseMin)*src.Float64()
}

// ScoreCandidate combines content, collaborative, popularity, freshness,
// noise and time/difficulty affinity signals for one recipe.
//
//nolint:gocritic // hugeParam: recipe passed by value, copied into the result
func ScoreCandidate(recipe Recipe, profile *UserProfile, similar []SimilarUser, now time.Time, src NoiseSource) ScoredCandidate {
	c := NewScoredCandidate(recipe, 0)
	var b ScoreBreakdown

	for tag := range c.tags {
		if n, ok := profile.Tags[tag]; ok {
			b.Tag += float64(n) * tagWeight
		}
	}
	for ing := range c.ingredients {
		if n, ok := profile.Ingredients[ing]; ok {
			b.Ingredient += float64(n) * ingredientWeight
		}
	}

	for _, su := range similar {
		if su.Likes(recipe.ID) {
			b.Collaborative += su.Similarity * collaborativeWeight
		}
	}

	b.Popularity = math.Min(float64(recipe.LikeCount)*popularityPerLike, popularityCap)
	b.Freshness = freshness(recipe.CreatedAt, now)
	b.Noise = NoiseTerm(src)

	if profile.TimePreferences[ClassifyTime(recipe.TotalTime())] > 0 {
		b.TimeAffinity = timeAffinityBonus
	}
	if n, ok := profile.DifficultyPreferences[recipe.Difficulty]; ok {
		b.Difficulty = float64(n) * difficultyPerLike
	}

	c.Breakdown = b
	c.Score = b.Total()
	c.Reason = explain(b)
	return c
}

// freshness rewards recipes created in the last 30 days. Age is counted in
// whole days rounded down, so a timestamp in the future has a negative age
// and scores slightly above freshnessWeight.
func freshness(createdAt, now time.Time) float64 {
	if createdAt.IsZero() {
		return 0
	}
	days := math.Floor(now.Sub(createdAt).Hours() / hoursPerDay)
	if days > freshnessWindowDays {
		return 0
	}
	return ((freshnessWindowDays - days) / freshnessWindowDays) * freshnessWeight
}

// explain names the strongest personalised signal.
func explain(b ScoreBreakdown) string {
	best, reason := reasonMinContributor, ""
	for _, c := range []struct {
		v float64
		r string
	}{
		{b.Tag, "matches tags you like"},
		{b.Ingredient, "uses ingredients you like"},
		{b.Collaborative, "liked by cooks with similar taste"},
		{b.Popularity, "popular with the community"},
	} {
		if c.v > best {
			best, reason = c.v, c.r
		}
	}
	return reason
}

// NewScoredCandidate wraps a recipe with its tag and ingredient sets.
//
//nolint:gocritic // hugeParam: recipe passed by value, copied into the result
func NewScoredCandidate(recipe Recipe, score float64) ScoredCandidate {
	c := ScoredCandidate{
		Recipe:      recipe,
		Score:       score,
		tags:        make(map[string]struct{}, len(recipe.Tags)),
		ingredients: make(map[string]struct{}, len(recipe.Ingredients)),
	}
	for _, t := range recipe.Tags {
		c.tags[t] = struct{}{}
	}
	for _, i := range recipe.Ingredients {
		c.ingredients[i] = struct{}{}
	}
	return c
}

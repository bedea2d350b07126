// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import "context"

// Diversity thresholds, calibrated against the overlap scores above.
const (
	maxTagOverlap        = 0.7
	maxIngredientOverlap = 0.6
	diversityOverride    = 2.0
)

// OverlapFilter greedily selects candidates while limiting how much of each
// pick's tags and ingredients were already covered by earlier picks.
// A candidate is accepted when its tag overlap is below 0.7, its ingredient
// overlap is below 0.6, or its score exceeds 2.0. Rejected candidates are
// never reconsidered.
type OverlapFilter struct{}

// NewOverlapFilter creates the diversity filter.
func NewOverlapFilter() *OverlapFilter {
	return &OverlapFilter{}
}

// Name returns the reranker identifier.
func (f *OverlapFilter) Name() string {
	return "overlap_diversity"
}

// Rerank keeps at most k candidates from items, which must be sorted by
// descending score.
//
//nolint:gocritic // rangeValCopy: ScoredCandidate copied into the result
func (f *OverlapFilter) Rerank(_ context.Context, items []ScoredCandidate, k int) []ScoredCandidate {
	if len(items) == 0 || k <= 0 {
		return []ScoredCandidate{}
	}

	usedTags := make(map[string]struct{})
	usedIngredients := make(map[string]struct{})
	out := make([]ScoredCandidate, 0, min(k, len(items)))

	for i := range items {
		c := &items[i]
		tags, ings := c.TagSet(), c.IngredientSet()

		tagRatio := overlapRatio(tags, usedTags)
		ingRatio := overlapRatio(ings, usedIngredients)
		if tagRatio >= maxTagOverlap && ingRatio >= maxIngredientOverlap && c.Score <= diversityOverride {
			continue
		}

		out = append(out, *c)
		for t := range tags {
			usedTags[t] = struct{}{}
		}
		for ing := range ings {
			usedIngredients[ing] = struct{}{}
		}
		if len(out) >= k {
			break
		}
	}

	return out
}

// overlapRatio is |set ∩ used| / max(|set|, 1).
func overlapRatio(set, used map[string]struct{}) float64 {
	if len(set) == 0 {
		return 0
	}
	shared := 0
	for k := range set {
		if _, ok := used[k]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(set))
}

// TagSet returns the candidate's tags as a set.
func (c *ScoredCandidate) TagSet() map[string]struct{} {
	if c.tags == nil {
		c.tags = toSet(c.Recipe.Tags)
	}
	return c.tags
}

// IngredientSet returns the candidate's ingredients as a set.
func (c *ScoredCandidate) IngredientSet() map[string]struct{} {
	if c.ingredients == nil {
		c.ingredients = toSet(c.Recipe.Ingredients)
	}
	return c.ingredients
}

func toSet(values []string) map[string]struct{} {
	s := make(map[string]struct{}, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

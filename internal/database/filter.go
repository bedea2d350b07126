// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"strings"

	"github.com/tomtom215/recetario/internal/recommend"
)

// PageSize is the number of recipes per listing page.
const PageSize = 12

// Listing sort orders.
const (
	SortRecent = "recent"
	SortLikes  = "likes"
)

// RecipeFilter selects published recipes for the listing.
//
// All fields are optional and combine using AND logic:
//   - Query: case-insensitive substring of the title, description or
//     instructions
//   - TagID: recipe carries this tag (0 = any)
//   - Difficulty: exact difficulty label ("" = any)
//   - Sort: SortRecent (default) or SortLikes
//   - Page: 1-based page number, PageSize recipes per page
type RecipeFilter struct {
	Query      string
	TagID      int
	Difficulty recommend.Difficulty
	Sort       string
	Page       int
}

// buildFilterConditions returns the WHERE clause (without the keyword) and
// its arguments. The recipes table must be aliased r.
func (f *RecipeFilter) buildFilterConditions() (string, []any) {
	conditions := []string{"r.is_published"}
	var args []any

	if q := strings.TrimSpace(f.Query); q != "" {
		conditions = append(conditions,
			"(contains(lower(r.title), lower(?)) OR contains(lower(r.description), lower(?)) OR "+
				"contains(lower(r.instructions), lower(?)))")
		args = append(args, q, q, q)
	}
	if f.TagID > 0 {
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM recipe_tags ft WHERE ft.recipe_id = r.id AND ft.tag_id = ?)")
		args = append(args, f.TagID)
	}
	if f.Difficulty != "" {
		conditions = append(conditions, "r.difficulty = ?")
		args = append(args, string(f.Difficulty))
	}

	return strings.Join(conditions, " AND "), args
}

// orderBy returns the ORDER BY clause for the sort option.
func (f *RecipeFilter) orderBy() string {
	if f.Sort == SortLikes {
		return "like_count DESC, r.created_at DESC, r.id DESC"
	}
	return "r.created_at DESC, r.id DESC"
}

// offset returns the row offset of the requested page.
func (f *RecipeFilter) offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * PageSize
}

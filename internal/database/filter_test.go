// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"reflect"
	"testing"
)

func TestRecipeFilterBuildConditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filter    RecipeFilter
		wantWhere string
		wantArgs  []any
		wantOrder string
		wantSkip  int
	}{
		{
			name:      "empty filter lists published recipes",
			filter:    RecipeFilter{},
			wantWhere: "r.is_published",
			wantOrder: "r.created_at DESC, r.id DESC",
		},
		{
			name:      "blank query is ignored",
			filter:    RecipeFilter{Query: "   ", Page: 1},
			wantWhere: "r.is_published",
			wantOrder: "r.created_at DESC, r.id DESC",
		},
		{
			name:   "all filters",
			filter: RecipeFilter{Query: " sopa ", TagID: 4, Difficulty: "facil", Sort: SortLikes, Page: 3},
			wantWhere: "r.is_published AND " +
				"(contains(lower(r.title), lower(?)) OR contains(lower(r.description), lower(?)) OR " +
				"contains(lower(r.instructions), lower(?))) AND " +
				"EXISTS (SELECT 1 FROM recipe_tags ft WHERE ft.recipe_id = r.id AND ft.tag_id = ?) AND " +
				"r.difficulty = ?",
			wantArgs:  []any{"sopa", "sopa", "sopa", 4, "facil"},
			wantOrder: "like_count DESC, r.created_at DESC, r.id DESC",
			wantSkip:  2 * PageSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.buildFilterConditions()
			if where != tt.wantWhere {
				t.Errorf("where = %q\nwant    %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
			if got := tt.filter.orderBy(); got != tt.wantOrder {
				t.Errorf("orderBy() = %q, want %q", got, tt.wantOrder)
			}
			if got := tt.filter.offset(); got != tt.wantSkip {
				t.Errorf("offset() = %d, want %d", got, tt.wantSkip)
			}
		})
	}
}

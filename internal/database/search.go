// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/recetario/internal/recommend"
)

// Search history kinds.
const (
	SearchKindText        = "text"
	SearchKindIngredients = "ingredients"
)

const (
	// minAutocompleteLength is the shortest query autocomplete answers.
	minAutocompleteLength = 2
	// autocompleteLimit caps autocomplete results.
	autocompleteLimit = 20
)

// SearchRecord is the input to RecordSearch.
type SearchRecord struct {
	UserID        int
	Term          string
	Kind          string
	TagIDs        []int
	IngredientIDs []int
}

// RecipePage is one page of the recipe listing.
type RecipePage struct {
	Recipes    []recommend.Recipe `json:"recipes"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// IngredientMatch is a recipe found by ingredient search.
type IngredientMatch struct {
	Recipe  recommend.Recipe `json:"recipe"`
	Matches int              `json:"matches"`
}

// RecordSearch stores a search history entry with its tag and ingredient links.
func (db *DB) RecordSearch(ctx context.Context, rec *SearchRecord) (id int, err error) {
	defer db.observe("record_search", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	kind := rec.Kind
	if kind == "" {
		kind = SearchKindText
	}

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx,
			`INSERT INTO search_history (user_id, search_term, kind, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
			rec.UserID, rec.Term, kind, db.now()).Scan(&id); err != nil {
			return fmt.Errorf("insert search: %w", err)
		}
		for _, tagID := range uniqueIDs(rec.TagIDs) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO search_history_tags (search_id, tag_id) VALUES (?, ?)`, id, tagID); err != nil {
				return fmt.Errorf("link search tag: %w", err)
			}
		}
		for _, ingredientID := range uniqueIDs(rec.IngredientIDs) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO search_history_ingredients (search_id, ingredient_id) VALUES (?, ?)`, id, ingredientID); err != nil {
				return fmt.Errorf("link search ingredient: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RecentSearches returns the user's searches created at or after since, most
// recent first. A zero since disables the window; limit <= 0 returns all.
func (db *DB) RecentSearches(ctx context.Context, userID int, since time.Time, limit int) (entries []recommend.SearchEntry, err error) {
	defer db.observe("recent_searches", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT id, search_term, created_at FROM search_history WHERE user_id = ?`
	args := []any{userID}
	if !since.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, since.UTC())
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query searches: %w", err)
	}
	defer closeRows(rows)

	var ids []int
	for rows.Next() {
		var (
			id int
			e  recommend.SearchEntry
		)
		if err := rows.Scan(&id, &e.Term, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		ids = append(ids, id)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate searches: %w", err)
	}
	if len(ids) == 0 {
		return entries, nil
	}

	index := make(map[int]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	in := placeholders(len(ids))

	err = db.scanLabels(ctx, fmt.Sprintf(`SELECT st.search_id, t.name FROM search_history_tags st
		JOIN tags t ON t.id = st.tag_id WHERE st.search_id IN (%s) ORDER BY t.name`, in),
		intArgs(ids), func(searchID int, name string) {
			i := index[searchID]
			entries[i].Tags = append(entries[i].Tags, name)
		})
	if err != nil {
		return nil, fmt.Errorf("load search tags: %w", err)
	}

	err = db.scanLabels(ctx, fmt.Sprintf(`SELECT si.search_id, i.name FROM search_history_ingredients si
		JOIN ingredients i ON i.id = si.ingredient_id WHERE si.search_id IN (%s) ORDER BY i.name`, in),
		intArgs(ids), func(searchID int, name string) {
			i := index[searchID]
			entries[i].Ingredients = append(entries[i].Ingredients, name)
		})
	if err != nil {
		return nil, fmt.Errorf("load search ingredients: %w", err)
	}
	return entries, nil
}

// SearchByIngredients returns published recipes containing at least one of
// ingredientIDs, ordered by matching ingredient count, then newest first.
func (db *DB) SearchByIngredients(ctx context.Context, ingredientIDs []int) (matches []IngredientMatch, err error) {
	ids := uniqueIDs(ingredientIDs)
	if len(ids) == 0 {
		return []IngredientMatch{}, nil
	}
	defer db.observe("search_by_ingredients", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT %s, m.matches FROM recipes r
		JOIN (SELECT recipe_id, COUNT(*) AS matches FROM recipe_ingredients
		      WHERE ingredient_id IN (%s) GROUP BY recipe_id) m ON m.recipe_id = r.id
		WHERE r.is_published
		ORDER BY m.matches DESC, r.created_at DESC, r.id DESC`, recipeColumns, placeholders(len(ids)))

	rows, err := db.conn.QueryContext(ctx, query, intArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query ingredient search: %w", err)
	}
	defer closeRows(rows)

	var (
		recipes []recommend.Recipe
		counts  []int
	)
	for rows.Next() {
		var (
			r     recommend.Recipe
			diff  string
			count int
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.PrepTime, &r.CookTime, &diff, &r.AuthorID,
			&r.Published, &r.CreatedAt, &r.LikeCount, &count); err != nil {
			return nil, fmt.Errorf("scan ingredient match: %w", err)
		}
		r.Difficulty = recommend.Difficulty(diff)
		recipes = append(recipes, r)
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ingredient matches: %w", err)
	}

	if err := db.attachLabels(ctx, recipes); err != nil {
		return nil, err
	}
	matches = make([]IngredientMatch, len(recipes))
	for i := range recipes {
		matches[i] = IngredientMatch{Recipe: recipes[i], Matches: counts[i]}
	}
	return matches, nil
}

// ListRecipes returns one page of published recipes matching the filter.
func (db *DB) ListRecipes(ctx context.Context, filter *RecipeFilter) (page *RecipePage, err error) {
	defer db.observe("list_recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, args := filter.buildFilterConditions()

	var total int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM recipes r WHERE `+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count recipes: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM recipes r WHERE %s ORDER BY %s LIMIT %d OFFSET %d`,
		recipeColumns, where, filter.orderBy(), PageSize, filter.offset())
	recipes, err := db.queryRecipes(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []recommend.Recipe{}
	}

	pageNum := filter.Page
	if pageNum < 1 {
		pageNum = 1
	}
	return &RecipePage{
		Recipes:    recipes,
		Total:      total,
		Page:       pageNum,
		PageSize:   PageSize,
		TotalPages: (total + PageSize - 1) / PageSize,
	}, nil
}

// SearchIngredients returns ingredients whose name contains q, ignoring
// case, ordered by name. Queries shorter than two characters return nothing.
func (db *DB) SearchIngredients(ctx context.Context, q string) (ingredients []Ingredient, err error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < minAutocompleteLength {
		return []Ingredient{}, nil
	}
	defer db.observe("search_ingredients", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, name FROM ingredients WHERE contains(lower(name), lower(?)) ORDER BY name LIMIT %d`,
		autocompleteLimit), q)
	if err != nil {
		return nil, fmt.Errorf("search ingredients: %w", err)
	}
	defer closeRows(rows)

	ingredients = []Ingredient{}
	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, i)
	}
	return ingredients, rows.Err()
}

// IngredientsByID returns the named ingredients for ids, ordered by name.
// Unknown IDs are skipped.
func (db *DB) IngredientsByID(ctx context.Context, ids []int) (ingredients []Ingredient, err error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	defer db.observe("ingredients_by_id", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(
		`SELECT id, name FROM ingredients WHERE id IN (%s) ORDER BY name`, placeholders(len(ids))), intArgs(ids)...)
	if err != nil {
		return nil, fmt.Errorf("query ingredients: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var i Ingredient
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, i)
	}
	return ingredients, rows.Err()
}

// uniqueIDs drops non-positive and duplicate IDs, keeping order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

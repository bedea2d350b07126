// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/recetario/internal/recommend"
)

// Compile-time checks that DB serves the recommendation engine.
var (
	_ recommend.DataProvider       = (*DB)(nil)
	_ recommend.PreferenceProvider = (*DB)(nil)
)

// recipeColumns selects the fields scanned by scanRecipe. The alias r must
// name the recipes table.
const recipeColumns = `r.id, r.title, r.prep_time, r.cook_time, r.difficulty, r.author_id,
	r.is_published, r.created_at,
	(SELECT COUNT(*) FROM recipe_likes lc WHERE lc.recipe_id = r.id) AS like_count`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (recommend.Recipe, error) {
	var (
		r          recommend.Recipe
		difficulty string
	)
	err := row.Scan(&r.ID, &r.Title, &r.PrepTime, &r.CookTime, &difficulty, &r.AuthorID,
		&r.Published, &r.CreatedAt, &r.LikeCount)
	if err != nil {
		return r, err
	}
	r.Difficulty = recommend.Difficulty(difficulty)
	return r, nil
}

// queryRecipes runs a query selecting recipeColumns and attaches labels.
func (db *DB) queryRecipes(ctx context.Context, query string, args ...any) ([]recommend.Recipe, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer closeRows(rows)

	var recipes []recommend.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	if err := db.attachLabels(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// attachLabels fills Tags and Ingredients for every recipe in place.
func (db *DB) attachLabels(ctx context.Context, recipes []recommend.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	index := make(map[int]int, len(recipes))
	ids := make([]int, len(recipes))
	for i := range recipes {
		index[recipes[i].ID] = i
		ids[i] = recipes[i].ID
		recipes[i].Tags = []string{}
		recipes[i].Ingredients = []string{}
	}
	in := placeholders(len(ids))

	tagQuery := fmt.Sprintf(`SELECT rt.recipe_id, t.name FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN (%s) ORDER BY t.name`, in)
	err := db.scanLabels(ctx, tagQuery, intArgs(ids), func(recipeID int, name string) {
		if i, ok := index[recipeID]; ok {
			recipes[i].Tags = append(recipes[i].Tags, name)
		}
	})
	if err != nil {
		return fmt.Errorf("load recipe tags: %w", err)
	}

	ingredientQuery := fmt.Sprintf(`SELECT ri.recipe_id, i.name FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN (%s) ORDER BY i.name`, in)
	err = db.scanLabels(ctx, ingredientQuery, intArgs(ids), func(recipeID int, name string) {
		if i, ok := index[recipeID]; ok {
			recipes[i].Ingredients = append(recipes[i].Ingredients, name)
		}
	})
	if err != nil {
		return fmt.Errorf("load recipe ingredients: %w", err)
	}
	return nil
}

// scanLabels runs a (owner id, name) query and hands each row to add.
func (db *DB) scanLabels(ctx context.Context, query string, args []any, add func(ownerID int, name string)) error {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer closeRows(rows)

	for rows.Next() {
		var (
			ownerID int
			name    string
		)
		if err := rows.Scan(&ownerID, &name); err != nil {
			return err
		}
		add(ownerID, name)
	}
	return rows.Err()
}

// LikedRecipes returns every recipe the user liked, most recent like first.
func (db *DB) LikedRecipes(ctx context.Context, userID int) (recipes []recommend.Recipe, err error) {
	defer db.observe("liked_recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + recipeColumns + ` FROM recipes r
		JOIN recipe_likes l ON l.recipe_id = r.id
		WHERE l.user_id = ?
		ORDER BY l.created_at DESC, r.id`
	return db.queryRecipes(ctx, query, userID)
}

// AuthoredRecipeCount returns how many recipes the user authored.
func (db *DB) AuthoredRecipeCount(ctx context.Context, userID int) (count int, err error) {
	defer db.observe("authored_count", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes WHERE author_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count authored recipes: %w", err)
	}
	return count, nil
}

// PublishedRecipeCount returns how many recipes are published.
func (db *DB) PublishedRecipeCount(ctx context.Context) (count int, err error) {
	defer db.observe("published_count", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes WHERE is_published`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published recipes: %w", err)
	}
	return count, nil
}

// CandidateRecipes returns published recipes the user neither authored nor liked.
func (db *DB) CandidateRecipes(ctx context.Context, userID int) (recipes []recommend.Recipe, err error) {
	defer db.observe("candidate_recipes", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `SELECT ` + recipeColumns + ` FROM recipes r
		WHERE r.is_published
		  AND r.author_id <> ?
		  AND NOT EXISTS (SELECT 1 FROM recipe_likes l WHERE l.recipe_id = r.id AND l.user_id = ?)
		ORDER BY r.id`
	return db.queryRecipes(ctx, query, userID, userID)
}

// CoLikers returns other users who liked any of recipeIDs, ordered by the
// number of shared likes descending, then user ID ascending.
func (db *DB) CoLikers(ctx context.Context, userID int, recipeIDs []int, limit int) (likers []recommend.CoLiker, err error) {
	if len(recipeIDs) == 0 {
		return nil, nil
	}
	defer db.observe("co_likers", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := fmt.Sprintf(`SELECT user_id, COUNT(*) AS shared FROM recipe_likes
		WHERE recipe_id IN (%s) AND user_id <> ?
		GROUP BY user_id
		ORDER BY shared DESC, user_id`, placeholders(len(recipeIDs)))
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	args := append(intArgs(recipeIDs), userID)
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query co-likers: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var c recommend.CoLiker
		if err := rows.Scan(&c.UserID, &c.Shared); err != nil {
			return nil, fmt.Errorf("scan co-liker: %w", err)
		}
		likers = append(likers, c)
	}
	return likers, rows.Err()
}

// HasLiked reports whether the user liked the recipe.
func (db *DB) HasLiked(ctx context.Context, userID, recipeID int) (liked bool, err error) {
	defer db.observe("has_liked", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM recipe_likes WHERE user_id = ? AND recipe_id = ?)`,
		userID, recipeID).Scan(&liked)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return liked, nil
}

// GetRecipe returns a recipe by ID with its labels.
func (db *DB) GetRecipe(ctx context.Context, recipeID int) (recipe recommend.Recipe, err error) {
	defer db.observe("get_recipe", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `SELECT `+recipeColumns+` FROM recipes r WHERE r.id = ?`, recipeID)
	recipe, err = scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return recipe, ErrNotFound
	}
	if err != nil {
		return recipe, fmt.Errorf("get recipe %d: %w", recipeID, err)
	}

	one := []recommend.Recipe{recipe}
	if err := db.attachLabels(ctx, one); err != nil {
		return recipe, err
	}
	return one[0], nil
}

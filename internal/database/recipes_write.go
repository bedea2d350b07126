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
	"strings"
	"time"

	"github.com/tomtom215/recetario/internal/recommend"
)

// defaultTagColor is used for tags created without a color.
const defaultTagColor = "#6c757d"

// NewRecipe is the input to CreateRecipe.
type NewRecipe struct {
	Title        string
	Description  string
	Instructions string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   recommend.Difficulty
	AuthorID     int
	Published    bool
	Tags         []string
	Ingredients  []string

	// CreatedAt defaults to the current time.
	CreatedAt time.Time
}

// Tag is a catalog tag.
type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Ingredient is a catalog ingredient.
type Ingredient struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateRecipe inserts a recipe and its label links, creating missing tags
// and ingredients. It returns the new recipe ID.
func (db *DB) CreateRecipe(ctx context.Context, in *NewRecipe) (id int, err error) {
	defer db.observe("create_recipe", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if strings.TrimSpace(in.Title) == "" {
		return 0, fmt.Errorf("recipe title is required")
	}
	difficulty := in.Difficulty
	if difficulty == "" {
		difficulty = recommend.DifficultyEasy
	}
	if !difficulty.Valid() {
		return 0, fmt.Errorf("invalid difficulty %q", difficulty)
	}
	servings := in.Servings
	if servings <= 0 {
		servings = 1
	}
	created := in.CreatedAt
	if created.IsZero() {
		created = db.now()
	}

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `INSERT INTO recipes
			(title, description, instructions, prep_time, cook_time, servings, difficulty,
			 author_id, is_published, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
			in.Title, in.Description, in.Instructions, in.PrepTime, in.CookTime, servings,
			string(difficulty), in.AuthorID, in.Published, created, created).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}

		for _, name := range uniqueNames(in.Tags) {
			tagID, err := ensureTagTx(ctx, tx, name, defaultTagColor)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`, id, tagID); err != nil {
				return fmt.Errorf("link tag %q: %w", name, err)
			}
		}

		for _, name := range uniqueNames(in.Ingredients) {
			ingredientID, err := ensureIngredientTx(ctx, tx, name)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_ingredients (recipe_id, ingredient_id) VALUES (?, ?)`, id, ingredientID); err != nil {
				return fmt.Errorf("link ingredient %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// EnsureTag returns the ID of the named tag, creating it if needed.
func (db *DB) EnsureTag(ctx context.Context, name, color string) (id int, err error) {
	defer db.observe("ensure_tag", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var txErr error
		id, txErr = ensureTagTx(ctx, tx, name, color)
		return txErr
	})
	return id, err
}

// EnsureIngredient returns the ID of the named ingredient, creating it if needed.
func (db *DB) EnsureIngredient(ctx context.Context, name string) (id int, err error) {
	defer db.observe("ensure_ingredient", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var txErr error
		id, txErr = ensureIngredientTx(ctx, tx, name)
		return txErr
	})
	return id, err
}

func ensureTagTx(ctx context.Context, tx *sql.Tx, name, color string) (int, error) {
	var id int
	err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup tag %q: %w", name, err)
	}
	if color == "" {
		color = defaultTagColor
	}
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO tags (name, color) VALUES (?, ?) RETURNING id`, name, color).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert tag %q: %w", name, err)
	}
	return id, nil
}

func ensureIngredientTx(ctx context.Context, tx *sql.Tx, name string) (int, error) {
	var id int
	err := tx.QueryRowContext(ctx, `SELECT id FROM ingredients WHERE name = ?`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("lookup ingredient %q: %w", name, err)
	}
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO ingredients (name) VALUES (?) RETURNING id`, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert ingredient %q: %w", name, err)
	}
	return id, nil
}

// ListTags returns every tag ordered by name.
func (db *DB) ListTags(ctx context.Context) (tags []Tag, err error) {
	defer db.observe("list_tags", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, color FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	defer closeRows(rows)

	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// uniqueNames trims names and drops blanks and duplicates, keeping order.
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

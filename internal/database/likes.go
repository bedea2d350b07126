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
)

// ToggleLike adds the like if it does not exist and removes it otherwise.
// It returns the resulting state and the recipe's new like count.
func (db *DB) ToggleLike(ctx context.Context, userID, recipeID int) (liked bool, count int, err error) {
	defer db.observe("toggle_like", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM recipes WHERE id = ?`, recipeID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lookup recipe: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM recipe_likes WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
		if err != nil {
			return fmt.Errorf("remove like: %w", err)
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}

		liked = removed == 0
		if liked {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO recipe_likes (user_id, recipe_id, created_at) VALUES (?, ?, ?)`,
				userID, recipeID, db.now()); err != nil {
				return fmt.Errorf("add like: %w", err)
			}
		}

		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM recipe_likes WHERE recipe_id = ?`, recipeID).Scan(&count); err != nil {
			return fmt.Errorf("count likes: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// LikeCount returns how many users liked the recipe.
func (db *DB) LikeCount(ctx context.Context, recipeID int) (count int, err error) {
	defer db.observe("like_count", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipe_likes WHERE recipe_id = ?`, recipeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}

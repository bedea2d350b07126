// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/recetario/internal/recommend"
)

// PreferenceIDs holds a user's favorites as catalog IDs.
type PreferenceIDs struct {
	TagIDs        []int `json:"favorite_tag_ids"`
	IngredientIDs []int `json:"favorite_ingredient_ids"`
}

// Preferences returns the names of the user's favorite tags and ingredients.
func (db *DB) Preferences(ctx context.Context, userID int) (prefs recommend.Preferences, err error) {
	defer db.observe("preferences", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	prefs.Tags, err = db.queryNames(ctx, `SELECT t.name FROM user_preference_tags p
		JOIN tags t ON t.id = p.tag_id WHERE p.user_id = ? ORDER BY t.name`, userID)
	if err != nil {
		return prefs, fmt.Errorf("load favorite tags: %w", err)
	}
	prefs.Ingredients, err = db.queryNames(ctx, `SELECT i.name FROM user_preference_ingredients p
		JOIN ingredients i ON i.id = p.ingredient_id WHERE p.user_id = ? ORDER BY i.name`, userID)
	if err != nil {
		return prefs, fmt.Errorf("load favorite ingredients: %w", err)
	}
	return prefs, nil
}

// PreferenceIDs returns the IDs of the user's favorite tags and ingredients.
func (db *DB) PreferenceIDs(ctx context.Context, userID int) (prefs PreferenceIDs, err error) {
	defer db.observe("preference_ids", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	prefs.TagIDs, err = db.queryIDs(ctx, `SELECT tag_id FROM user_preference_tags WHERE user_id = ? ORDER BY tag_id`, userID)
	if err != nil {
		return prefs, fmt.Errorf("load favorite tag ids: %w", err)
	}
	prefs.IngredientIDs, err = db.queryIDs(ctx,
		`SELECT ingredient_id FROM user_preference_ingredients WHERE user_id = ? ORDER BY ingredient_id`, userID)
	if err != nil {
		return prefs, fmt.Errorf("load favorite ingredient ids: %w", err)
	}
	return prefs, nil
}

// SetPreferences replaces the user's favorites. IDs that do not name an
// existing tag or ingredient are ignored.
func (db *DB) SetPreferences(ctx context.Context, userID int, prefs PreferenceIDs) (err error) {
	defer db.observe("set_preferences", time.Now(), &err)
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tagIDs := uniqueIDs(prefs.TagIDs)
	ingredientIDs := uniqueIDs(prefs.IngredientIDs)

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := replaceLinks(ctx, tx, "user_preference_tags", "tag_id", "tags", userID, tagIDs); err != nil {
			return fmt.Errorf("replace favorite tags: %w", err)
		}
		if err := replaceLinks(ctx, tx, "user_preference_ingredients", "ingredient_id", "ingredients", userID, ingredientIDs); err != nil {
			return fmt.Errorf("replace favorite ingredients: %w", err)
		}
		return nil
	})
}

// replaceLinks makes the user's rows in table equal ids. Rows are removed
// only when absent from ids so an unchanged key is never deleted and
// re-inserted in one transaction, which DuckDB rejects as a duplicate key.
// Table and column names are constants supplied by callers.
func replaceLinks(ctx context.Context, tx *sql.Tx, table, column, catalog string, userID int, ids []int) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE user_id = ?`, table) //nolint:gosec // identifiers are constants
	args := []any{userID}
	if len(ids) > 0 {
		deleteQuery += fmt.Sprintf(` AND %s NOT IN (%s)`, column, placeholders(len(ids)))
		args = append(args, intArgs(ids)...)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, args...); err != nil {
		return err
	}

	if len(ids) == 0 {
		return nil
	}
	//nolint:gosec // identifiers are constants
	insertQuery := fmt.Sprintf(`INSERT OR IGNORE INTO %s (user_id, %s)
		SELECT ?, c.id FROM %s c WHERE c.id IN (%s)`, table, column, catalog, placeholders(len(ids)))
	_, err := tx.ExecContext(ctx, insertQuery, append([]any{userID}, intArgs(ids)...)...)
	return err
}

func (db *DB) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	names := []string{}
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (db *DB) queryIDs(ctx context.Context, query string, args ...any) ([]int, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

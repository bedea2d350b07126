// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
database_schema.go - Schema Definition

Tables:
  - users: accounts with bcrypt password hashes and a casbin role
  - tags, ingredients: the label catalogs shared by every recipe
  - recipes: recipe bodies with times, difficulty and publish state
  - recipe_tags, recipe_ingredients: many-to-many label links
  - recipe_likes: one row per (user, recipe) like
  - search_history (+ _tags, _ingredients): what a user searched for
  - user_preference_tags, user_preference_ingredients: explicit favorites

Identifiers come from sequences. Foreign keys are not declared: DuckDB
checks them eagerly on delete-then-insert within one transaction, and
referential integrity is enforced by the write methods instead.
*/

//nolint:staticcheck // File documentation, not package doc
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the core database tables
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// getTableCreationQueries returns the table creation SQL statements
func (db *DB) getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS tags_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS ingredients_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS recipes_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS search_history_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY DEFAULT nextval('users_id_seq'),
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS tags (
			id INTEGER PRIMARY KEY DEFAULT nextval('tags_id_seq'),
			name TEXT NOT NULL UNIQUE,
			color TEXT NOT NULL DEFAULT '#6c757d'
		);`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			id INTEGER PRIMARY KEY DEFAULT nextval('ingredients_id_seq'),
			name TEXT NOT NULL UNIQUE
		);`,

		`CREATE TABLE IF NOT EXISTS recipes (
			id INTEGER PRIMARY KEY DEFAULT nextval('recipes_id_seq'),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			instructions TEXT NOT NULL DEFAULT '',
			prep_time INTEGER NOT NULL DEFAULT 0,
			cook_time INTEGER NOT NULL DEFAULT 0,
			servings INTEGER NOT NULL DEFAULT 1,
			difficulty TEXT NOT NULL DEFAULT 'facil'
				CHECK (difficulty IN ('facil', 'intermedio', 'dificil')),
			author_id INTEGER NOT NULL,
			is_published BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS recipe_tags (
			recipe_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			PRIMARY KEY (recipe_id, tag_id)
		);`,

		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			recipe_id INTEGER NOT NULL,
			ingredient_id INTEGER NOT NULL,
			quantity TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (recipe_id, ingredient_id)
		);`,

		`CREATE TABLE IF NOT EXISTS recipe_likes (
			user_id INTEGER NOT NULL,
			recipe_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			PRIMARY KEY (user_id, recipe_id)
		);`,

		`CREATE TABLE IF NOT EXISTS search_history (
			id INTEGER PRIMARY KEY DEFAULT nextval('search_history_id_seq'),
			user_id INTEGER NOT NULL,
			search_term TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS search_history_tags (
			search_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			PRIMARY KEY (search_id, tag_id)
		);`,

		`CREATE TABLE IF NOT EXISTS search_history_ingredients (
			search_id INTEGER NOT NULL,
			ingredient_id INTEGER NOT NULL,
			PRIMARY KEY (search_id, ingredient_id)
		);`,

		`CREATE TABLE IF NOT EXISTS user_preference_tags (
			user_id INTEGER NOT NULL,
			tag_id INTEGER NOT NULL,
			PRIMARY KEY (user_id, tag_id)
		);`,

		`CREATE TABLE IF NOT EXISTS user_preference_ingredients (
			user_id INTEGER NOT NULL,
			ingredient_id INTEGER NOT NULL,
			PRIMARY KEY (user_id, ingredient_id)
		);`,
	}
}

// createIndexes creates secondary indexes.
// Indexed columns are never updated in place; DuckDB ART indexes turn
// updates into delete+insert and reject them on unique columns.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}

	return nil
}

// getIndexQueries returns index creation SQL statements
func (db *DB) getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_recipes_author ON recipes(author_id);`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_created ON recipes(created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_likes_recipe ON recipe_likes(recipe_id);`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag_id);`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_ingredient ON recipe_ingredients(ingredient_id);`,
		`CREATE INDEX IF NOT EXISTS idx_search_history_user ON search_history(user_id, created_at);`,
	}
}

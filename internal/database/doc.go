// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

// Package database provides DuckDB storage for users, recipes, likes,
// search history and preferences, and serves the recommendation engine's
// read queries.
//
// # Architecture
//
// Core Database Operations:
//   - database.go: connection lifecycle (open, initialize, ping, close)
//   - database_connection.go: pool settings and conflict-retrying transactions
//   - database_schema.go: tables, sequences and indexes
//   - migrations.go: versioned migrations tracked in schema_migrations
//   - database_utils.go: context defaults, checkpoint, query metrics
//
// Domain Operations:
//   - recipes.go: recommend.DataProvider queries (liked, candidates, co-likers)
//   - recipes_write.go: recipe creation and the tag/ingredient catalogs
//   - likes.go: like toggling
//   - search.go, filter.go: search history, listing, ingredient search
//   - preferences.go: favorite tags and ingredients
//   - users.go: accounts
//   - seed.go: catalogs and demo data
//   - breaker.go: circuit breaker around the engine's provider
//
// # Database Technology
//
// DuckDB is used through database/sql with the CGO driver
// github.com/duckdb/duckdb-go/v2. Every query has a deadline (30s by
// default, see ensureContext) and records latency under
// recetario_db_query_duration_seconds.
//
// # Usage Example
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	engine.SetDataProvider(database.NewBreakerProvider(db, &cfg.Breaker))
//
// # Error Handling
//
// Missing rows surface as ErrNotFound and duplicate usernames as
// ErrUserExists; callers match them with errors.Is. Other errors are
// wrapped with the failing operation.
package database

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package main is the entry point for the Recetario server.

Recetario is a recipe sharing service. Users browse and search recipes,
like them, save favorite tags and ingredients, and receive personalized
"smart" recommendations that blend their own taste profile with the likes
of similar users.

# Application Architecture

	RootSupervisor ("recetario")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── Janitor (cache purge, limiter cleanup, DuckDB checkpoint)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Initialization order:

 1. Configuration: Koanf v2 (defaults, optional config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB with versioned migrations, plus the demo seed if enabled
 4. Recommendation engine behind a gobreaker circuit breaker
 5. Authentication: JWT, bcrypt and the per-username login limiter
 6. Authorization: Casbin role policy
 7. Supervisor tree with the HTTP server and the janitor

# Configuration

Required:

	JWT_SECRET        32+ character signing secret

Common settings:

	DUCKDB_PATH               database file (default /data/recetario.duckdb)
	HTTP_PORT                 listen port (default 8080)
	SEED_DEMO_DATA            insert demo catalog, users and recipes
	DEMO_PASSWORD             password of the seeded demo users
	RECOMMEND_CACHE_ENABLED   cache recommendations per user
	RECOMMEND_SEED            fixed noise seed (0 = clock-seeded)
	LOG_LEVEL, LOG_FORMAT     zerolog level and output format

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests, the janitor stops, and DuckDB is checkpointed and
closed.

# Example

	export JWT_SECRET=$(openssl rand -base64 32)
	export DUCKDB_PATH=./data/recetario.duckdb
	export SEED_DEMO_DATA=true
	./recetario
*/
package main

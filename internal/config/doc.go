// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package config provides centralized configuration management for Recetario.

Configuration is loaded with Koanf v2 in three layers, each overriding the
previous one:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file, found via CONFIG_PATH or DefaultConfigPaths
 3. Environment variables, mapped explicitly (unknown variables are ignored)

# Sections

  - DatabaseConfig: DuckDB path, memory limit, threads and demo seeding
  - ServerConfig: HTTP listen address and timeouts
  - SecurityConfig: JWT secret and TTL, CORS, request and login rate limits
  - LoggingConfig: zerolog level, format and caller info
  - RecommendConfig: smart recommendation limits, search window, noise seed
    and the optional result cache
  - BreakerConfig: circuit breaker around the recommendation data provider

# Environment Variables

Database:
  - DUCKDB_PATH (default: /data/recetario.duckdb)
  - DUCKDB_MAX_MEMORY (default: 1GB)
  - DUCKDB_THREADS (default: 0 = NumCPU)
  - SEED_DEMO_DATA (default: false)

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
  - HTTP_REQUEST_TIMEOUT (default: 20s)

Security:
  - JWT_SECRET (required, at least 32 characters)
  - TOKEN_TTL (default: 24h)
  - CORS_ORIGINS (comma-separated, default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW (default: 100 per minute)
  - LOGIN_ATTEMPTS, LOGIN_WINDOW (default: 5 per 15 minutes)

Recommendations:
  - RECOMMEND_MAX_RESULTS, RECOMMEND_DIVERSITY_CAP
  - RECOMMEND_SIMILARITY_THRESHOLD, RECOMMEND_MAX_SIMILAR_USERS,
    RECOMMEND_MAX_NEIGHBOR_CANDIDATES
  - RECOMMEND_SEARCH_WINDOW, RECOMMEND_SEARCH_LIMIT
  - RECOMMEND_SEED (0 = clock-seeded noise)
  - RECOMMEND_CACHE_ENABLED, RECOMMEND_CACHE_TTL

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(cfg.Server.Addr())
*/
package config

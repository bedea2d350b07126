// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recetario/internal/auth"
	"github.com/tomtom215/recetario/internal/authz"
	"github.com/tomtom215/recetario/internal/cache"
	"github.com/tomtom215/recetario/internal/config"
	"github.com/tomtom215/recetario/internal/database"
	"github.com/tomtom215/recetario/internal/metrics"
	"github.com/tomtom215/recetario/internal/recommend"
	"github.com/tomtom215/recetario/internal/supervisor/services"
)

// RecommendComponents holds the engine and the provider it reads through.
// Redis is nil unless the redis cache backend is in use.
type RecommendComponents struct {
	Engine   *recommend.Engine
	Provider *database.BreakerProvider
	Redis    *redis.Client
}

// Close releases the Redis connection pool, if any.
func (rc *RecommendComponents) Close() error {
	if rc.Redis == nil {
		return nil
	}
	return rc.Redis.Close()
}

// initRecommend builds the engine on top of a breaker-wrapped provider.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, db *database.DB, logger zerolog.Logger) (*RecommendComponents, error) {
	engineCfg := buildEngineConfig(cfg)

	logger.Info().
		Int("max_results", engineCfg.MaxResults).
		Int("diversity_cap", engineCfg.DiversityCap).
		Float64("similarity_threshold", engineCfg.SimilarityThreshold).
		Bool("cache_enabled", engineCfg.Cache.Enabled).
		Str("cache_backend", cfg.Recommend.CacheBackend).
		Int64("seed", engineCfg.Seed).
		Msg("initializing recommendation engine")

	engine, err := recommend.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	provider := database.NewBreakerProvider(db, &cfg.Breaker)
	engine.SetDataProvider(provider)

	rc := &RecommendComponents{Engine: engine, Provider: provider}
	if cfg.Recommend.CacheEnabled && cfg.Recommend.CacheBackend == config.CacheBackendRedis {
		client, err := connectRedis(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		rc.Redis = client
		engine.SetResultStore(recommend.NewRedisStore(
			cache.NewRedis(client, cfg.Redis.Namespace, cfg.Recommend.CacheTTL), logger))
		logger.Info().Str("addr", cfg.Redis.Addr).Int("db", cfg.Redis.DB).Msg("recommendation cache shared through redis")
	}

	return rc, nil
}

// connectRedis opens a client and fails fast if the server is unreachable.
func connectRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.Timeout,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// buildEngineConfig maps the recommend config section onto engine settings.
// Classic-mode limits keep the engine defaults.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	engineCfg := recommend.DefaultConfig()
	r := cfg.Recommend

	engineCfg.MaxResults = r.MaxResults
	engineCfg.DiversityCap = r.DiversityCap
	engineCfg.SimilarityThreshold = r.SimilarityThreshold
	engineCfg.MaxSimilarUsers = r.MaxSimilarUsers
	engineCfg.MaxNeighborCandidates = r.MaxNeighborCandidates
	engineCfg.SearchWindow = r.SearchWindow
	if r.SearchLimit > 0 {
		engineCfg.SearchLimit = r.SearchLimit
	}
	engineCfg.Seed = r.Seed
	engineCfg.Cache = recommend.CacheConfig{Enabled: r.CacheEnabled, TTL: r.CacheTTL}

	return engineCfg
}

// janitorTasks lists the periodic sweeps run by the janitor service.
func janitorTasks(db *database.DB, engine *recommend.Engine, limiter *auth.LoginLimiter, enforcer *authz.Enforcer) []services.JanitorTask {
	return []services.JanitorTask{
		{
			Name: "recommend-cache",
			Sweep: func(context.Context) (int, error) {
				n := engine.PurgeExpired()
				metrics.RecommendCachePurged.Add(float64(n))
				return n, nil
			},
		},
		{
			Name: "login-limiter",
			Sweep: func(context.Context) (int, error) {
				return limiter.Cleanup(), nil
			},
		},
		{
			Name: "authz-decisions",
			Sweep: func(context.Context) (int, error) {
				return enforcer.PurgeExpired(), nil
			},
		},
		{
			Name: "duckdb-checkpoint",
			Sweep: func(ctx context.Context) (int, error) {
				return 0, db.Checkpoint(ctx)
			},
		},
	}
}

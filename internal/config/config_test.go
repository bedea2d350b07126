// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults with secret", func(*Config) {}, ""},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, "DUCKDB_PATH"},
		{"negative threads", func(c *Config) { c.Database.Threads = -1 }, "DUCKDB_THREADS"},
		{"seed with short demo password", func(c *Config) {
			c.Database.SeedDemoData = true
			c.Database.DemoPassword = "demo"
		}, "DEMO_PASSWORD"},
		{"short demo password without seed", func(c *Config) { c.Database.DemoPassword = "" }, ""},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"no request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "HTTP_REQUEST_TIMEOUT"},
		{"short secret", func(c *Config) { c.Security.JWTSecret = "short" }, "at least 32"},
		{"placeholder secret", func(c *Config) {
			c.Security.JWTSecret = "CHANGEME-CHANGEME-CHANGEME-CHANGEME"
		}, "placeholder"},
		{"zero token ttl", func(c *Config) { c.Security.TokenTTL = 0 }, "TOKEN_TTL"},
		{"rate limit too high", func(c *Config) { c.Security.RateLimitRequests = 1_000_000 }, "RATE_LIMIT_REQUESTS"},
		{"rate window too short", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, "RATE_LIMIT_WINDOW"},
		{"no login attempts", func(c *Config) { c.Security.LoginAttempts = 0 }, "LOGIN_ATTEMPTS"},
		{"zero results", func(c *Config) { c.Recommend.MaxResults = 0 }, "RECOMMEND_MAX_RESULTS"},
		{"cap below results", func(c *Config) { c.Recommend.DiversityCap = 5 }, "RECOMMEND_DIVERSITY_CAP"},
		{"threshold one", func(c *Config) { c.Recommend.SimilarityThreshold = 1 }, "RECOMMEND_SIMILARITY_THRESHOLD"},
		{"neighbors below similar", func(c *Config) { c.Recommend.MaxNeighborCandidates = 2 }, "RECOMMEND_MAX_NEIGHBOR_CANDIDATES"},
		{"zero window", func(c *Config) { c.Recommend.SearchWindow = 0 }, "RECOMMEND_SEARCH_WINDOW"},
		{"cache without ttl", func(c *Config) {
			c.Recommend.CacheEnabled = true
			c.Recommend.CacheTTL = 0
		}, "RECOMMEND_CACHE_TTL"},
		{"disabled cache ignores ttl", func(c *Config) { c.Recommend.CacheTTL = 0 }, ""},
		{"unknown cache backend", func(c *Config) { c.Recommend.CacheBackend = "memcached" }, "RECOMMEND_CACHE_BACKEND"},
		{"redis backend without addr", func(c *Config) {
			c.Recommend.CacheEnabled = true
			c.Recommend.CacheBackend = CacheBackendRedis
			c.Redis.Addr = ""
		}, "REDIS_ADDR"},
		{"redis backend with zero timeout", func(c *Config) {
			c.Recommend.CacheEnabled = true
			c.Recommend.CacheBackend = CacheBackendRedis
			c.Redis.Timeout = 0
		}, "REDIS_TIMEOUT"},
		{"redis settings ignored while cache disabled", func(c *Config) {
			c.Recommend.CacheBackend = CacheBackendRedis
			c.Redis.Addr = ""
		}, ""},
		{"breaker threshold zero", func(c *Config) { c.Breaker.FailureThreshold = 0 }, "BREAKER_FAILURE_THRESHOLD"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestHasWildcardCORS(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("default CORS origins should contain a wildcard")
	}
	cfg.Security.CORSOrigins = []string{"https://recetas.example.org"}
	if cfg.HasWildcardCORS() {
		t.Error("explicit origin list should not be a wildcard")
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := s.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q, want 127.0.0.1:8080", got)
	}
}

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	Redis     RedisConfig     `koanf:"redis"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path         string `koanf:"path"`           // File path or ":memory:"
	MaxMemory    string `koanf:"max_memory"`     // DuckDB memory limit, e.g. "1GB"
	Threads      int    `koanf:"threads"`        // Number of DuckDB threads (0 = use NumCPU)
	SeedDemoData bool   `koanf:"seed_demo_data"` // Insert demo tags, ingredients, users and recipes on startup
	DemoPassword string `koanf:"demo_password"`  // Password shared by the seeded demo accounts
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	IdleTimeout    time.Duration `koanf:"idle_timeout"`
	RequestTimeout time.Duration `koanf:"request_timeout"` // Per-request context deadline applied by middleware
}

// Addr returns the listen address for the HTTP server.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds authentication and rate limiting settings
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"` // Requests per window per client IP
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	LoginAttempts     int           `koanf:"login_attempts"` // Failed logins per username per window
	LoginWindow       time.Duration `koanf:"login_window"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds the smart recommendation engine settings.
// The defaults reproduce the documented scoring behavior; changing them
// changes the ranking.
type RecommendConfig struct {
	MaxResults            int           `koanf:"max_results"`
	DiversityCap          int           `koanf:"diversity_cap"`
	SimilarityThreshold   float64       `koanf:"similarity_threshold"`
	MaxSimilarUsers       int           `koanf:"max_similar_users"`
	MaxNeighborCandidates int           `koanf:"max_neighbor_candidates"`
	SearchWindow          time.Duration `koanf:"search_window"`
	SearchLimit           int           `koanf:"search_limit"`
	Seed                  int64         `koanf:"seed"` // 0 = clock-seeded noise
	CacheEnabled          bool          `koanf:"cache_enabled"`
	CacheTTL              time.Duration `koanf:"cache_ttl"`
	CacheBackend          string        `koanf:"cache_backend"` // memory or redis
}

// Result cache backends.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// RedisConfig holds the connection used by the redis cache backend.
// Replicas that share one Redis also share cache invalidations.
type RedisConfig struct {
	Addr      string        `koanf:"addr"`
	Password  string        `koanf:"password"`
	DB        int           `koanf:"db"`
	Namespace string        `koanf:"namespace"` // Key prefix, e.g. "recetario:"
	Timeout   time.Duration `koanf:"timeout"`   // Dial, read and write timeout
}

// BreakerConfig holds the circuit breaker settings for the data provider
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"` // Requests allowed while half-open
	Interval         time.Duration `koanf:"interval"`     // Closed-state counter reset period
	Timeout          time.Duration `koanf:"timeout"`      // Open-state duration before half-open
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// Load loads configuration from defaults, an optional YAML file and the
// environment. It is a shorthand for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

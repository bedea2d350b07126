// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateBreaker(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative")
	}
	if c.Database.SeedDemoData && len(c.Database.DemoPassword) < 8 {
		return fmt.Errorf("DEMO_PASSWORD must be at least 8 characters when SEED_DEMO_DATA is enabled")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window

	minJWTSecretLength = 32
)

// validateSecurity validates the JWT secret, rate limits and login throttling
func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}

	if c.Security.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	if c.Security.RateLimitRequests < minRateLimitRequests || c.Security.RateLimitRequests > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}

	if c.Security.LoginAttempts < 1 {
		return fmt.Errorf("LOGIN_ATTEMPTS must be at least 1")
	}
	if c.Security.LoginWindow < minRateLimitWindow {
		return fmt.Errorf("LOGIN_WINDOW must be at least %v", minRateLimitWindow)
	}
	return nil
}

// validateJWTSecret validates the JWT secret configuration
func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters for security", minJWTSecretLength)
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	switch {
	case r.MaxResults < 1:
		return fmt.Errorf("RECOMMEND_MAX_RESULTS must be at least 1")
	case r.DiversityCap < r.MaxResults:
		return fmt.Errorf("RECOMMEND_DIVERSITY_CAP must be at least RECOMMEND_MAX_RESULTS")
	case r.SimilarityThreshold < 0 || r.SimilarityThreshold >= 1:
		return fmt.Errorf("RECOMMEND_SIMILARITY_THRESHOLD must be in [0, 1)")
	case r.MaxSimilarUsers < 0:
		return fmt.Errorf("RECOMMEND_MAX_SIMILAR_USERS must be non-negative")
	case r.MaxNeighborCandidates < r.MaxSimilarUsers:
		return fmt.Errorf("RECOMMEND_MAX_NEIGHBOR_CANDIDATES must be at least RECOMMEND_MAX_SIMILAR_USERS")
	case r.SearchWindow <= 0:
		return fmt.Errorf("RECOMMEND_SEARCH_WINDOW must be positive")
	case r.SearchLimit < 0:
		return fmt.Errorf("RECOMMEND_SEARCH_LIMIT must be non-negative")
	case r.CacheEnabled && r.CacheTTL <= 0:
		return fmt.Errorf("RECOMMEND_CACHE_TTL must be positive when the cache is enabled")
	case r.CacheBackend != CacheBackendMemory && r.CacheBackend != CacheBackendRedis:
		return fmt.Errorf("RECOMMEND_CACHE_BACKEND must be %q or %q", CacheBackendMemory, CacheBackendRedis)
	}
	if r.CacheEnabled && r.CacheBackend == CacheBackendRedis {
		return c.validateRedis()
	}
	return nil
}

func (c *Config) validateRedis() error {
	if c.Redis.Addr == "" {
		return fmt.Errorf("REDIS_ADDR is required when RECOMMEND_CACHE_BACKEND is redis")
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("REDIS_DB must be non-negative")
	}
	if c.Redis.Timeout <= 0 {
		return fmt.Errorf("REDIS_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("BREAKER_FAILURE_THRESHOLD must be at least 1")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// HasWildcardCORS reports whether any CORS origin is "*". The server logs a
// warning at startup when it is.
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

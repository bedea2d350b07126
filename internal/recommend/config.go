// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Config contains the tunable limits of the recommendation engine.
// Scoring weights are constants and deliberately absent here.
type Config struct {
	// MaxResults is the number of recommendations delivered.
	// Default: 12.
	MaxResults int `json:"max_results"`

	// DiversityCap is the working size of the diversity pass.
	// Default: 15.
	DiversityCap int `json:"diversity_cap"`

	// SimilarityThreshold is the exclusive lower bound for a neighbor.
	// Default: 0.3.
	SimilarityThreshold float64 `json:"similarity_threshold"`

	// MaxSimilarUsers bounds the neighbor list.
	// Default: 5.
	MaxSimilarUsers int `json:"max_similar_users"`

	// MaxNeighborCandidates bounds the co-liker pre-filter.
	// Default: 10.
	MaxNeighborCandidates int `json:"max_neighbor_candidates"`

	// SearchWindow is how far back search history counts.
	// Default: 720h (30 days).
	SearchWindow time.Duration `json:"search_window"`

	// SearchLimit caps the number of searches in a profile.
	// Default: 20.
	SearchLimit int `json:"search_limit"`

	// ClassicStageLimit caps each stage of the classic recommender.
	// Default: 10.
	ClassicStageLimit int `json:"classic_stage_limit"`

	// ClassicSearchDepth is how many recent searches the classic
	// recommender inspects.
	// Default: 10.
	ClassicSearchDepth int `json:"classic_search_depth"`

	// Cache contains result cache parameters.
	Cache CacheConfig `json:"cache"`

	// Seed seeds the noise source. Zero seeds from the clock, so repeated
	// requests may order near-ties differently.
	Seed int64 `json:"seed"`
}

// CacheConfig contains result cache parameters.
type CacheConfig struct {
	// Enabled controls whether results are cached per user.
	// Default: false.
	Enabled bool `json:"enabled"`

	// TTL bounds staleness caused by other users' activity.
	// Default: 2m.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxResults:            12,
		DiversityCap:          15,
		SimilarityThreshold:   0.3,
		MaxSimilarUsers:       5,
		MaxNeighborCandidates: 10,
		SearchWindow:          30 * 24 * time.Hour,
		SearchLimit:           20,
		ClassicStageLimit:     10,
		ClassicSearchDepth:    10,
		Cache: CacheConfig{
			Enabled: false,
			TTL:     2 * time.Minute,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive, got %d", c.MaxResults)
	}
	if c.DiversityCap < c.MaxResults {
		return fmt.Errorf("diversity_cap must be >= max_results, got %d < %d", c.DiversityCap, c.MaxResults)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold >= 1 {
		return fmt.Errorf("similarity_threshold must be in [0, 1), got %f", c.SimilarityThreshold)
	}
	if c.MaxSimilarUsers < 0 {
		return fmt.Errorf("max_similar_users must be non-negative, got %d", c.MaxSimilarUsers)
	}
	if c.MaxNeighborCandidates < c.MaxSimilarUsers {
		return fmt.Errorf("max_neighbor_candidates must be >= max_similar_users, got %d < %d",
			c.MaxNeighborCandidates, c.MaxSimilarUsers)
	}
	if c.SearchWindow <= 0 {
		return fmt.Errorf("search_window must be positive, got %v", c.SearchWindow)
	}
	if c.SearchLimit < 1 {
		return fmt.Errorf("search_limit must be positive, got %d", c.SearchLimit)
	}
	if c.ClassicStageLimit < 1 {
		return fmt.Errorf("classic_stage_limit must be positive, got %d", c.ClassicStageLimit)
	}
	if c.ClassicSearchDepth < 1 {
		return fmt.Errorf("classic_search_depth must be positive, got %d", c.ClassicSearchDepth)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when caching is enabled, got %v", c.Cache.TTL)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// MarshalJSON renders durations as strings.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		SearchWindow string `json:"search_window"`
		Cache        struct {
			Enabled bool   `json:"enabled"`
			TTL     string `json:"ttl"`
		} `json:"cache"`
	}{
		Alias:        (*Alias)(c),
		SearchWindow: c.SearchWindow.String(),
		Cache: struct {
			Enabled bool   `json:"enabled"`
			TTL     string `json:"ttl"`
		}{
			Enabled: c.Cache.Enabled,
			TTL:     c.Cache.TTL.String(),
		},
	})
}

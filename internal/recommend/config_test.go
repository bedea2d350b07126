// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}

	t.Run("delivery limits", func(t *testing.T) {
		if cfg.MaxResults != 12 {
			t.Errorf("MaxResults = %d, want 12", cfg.MaxResults)
		}
		if cfg.DiversityCap != 15 {
			t.Errorf("DiversityCap = %d, want 15", cfg.DiversityCap)
		}
	})

	t.Run("neighbor limits", func(t *testing.T) {
		if cfg.SimilarityThreshold != 0.3 {
			t.Errorf("SimilarityThreshold = %f, want 0.3", cfg.SimilarityThreshold)
		}
		if cfg.MaxSimilarUsers != 5 || cfg.MaxNeighborCandidates != 10 {
			t.Errorf("MaxSimilarUsers/MaxNeighborCandidates = %d/%d, want 5/10",
				cfg.MaxSimilarUsers, cfg.MaxNeighborCandidates)
		}
	})

	t.Run("search window", func(t *testing.T) {
		if cfg.SearchWindow != 30*24*time.Hour {
			t.Errorf("SearchWindow = %v, want 720h", cfg.SearchWindow)
		}
		if cfg.SearchLimit != 20 {
			t.Errorf("SearchLimit = %d, want 20", cfg.SearchLimit)
		}
	})

	t.Run("cache disabled", func(t *testing.T) {
		if cfg.Cache.Enabled {
			t.Error("Cache.Enabled should default to false")
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"zero results", func(c *Config) { c.MaxResults = 0 }, "max_results"},
		{"cap below results", func(c *Config) { c.DiversityCap = 5 }, "diversity_cap"},
		{"threshold negative", func(c *Config) { c.SimilarityThreshold = -0.1 }, "similarity_threshold"},
		{"threshold one", func(c *Config) { c.SimilarityThreshold = 1 }, "similarity_threshold"},
		{"neighbor gate too small", func(c *Config) { c.MaxNeighborCandidates = 2 }, "max_neighbor_candidates"},
		{"zero window", func(c *Config) { c.SearchWindow = 0 }, "search_window"},
		{"zero search limit", func(c *Config) { c.SearchLimit = 0 }, "search_limit"},
		{"zero stage limit", func(c *Config) { c.ClassicStageLimit = 0 }, "classic_stage_limit"},
		{"zero search depth", func(c *Config) { c.ClassicSearchDepth = 0 }, "classic_search_depth"},
		{"cache without ttl", func(c *Config) { c.Cache.Enabled = true; c.Cache.TTL = 0 }, "cache.ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()
	clone.MaxResults = 3

	if cfg.MaxResults != 12 {
		t.Error("modifying the clone changed the original")
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if out["search_window"] != "720h0m0s" {
		t.Errorf("search_window = %v, want 720h0m0s", out["search_window"])
	}
	cache, ok := out["cache"].(map[string]interface{})
	if !ok || cache["ttl"] != "2m0s" {
		t.Errorf("cache = %v, want ttl 2m0s", out["cache"])
	}
}

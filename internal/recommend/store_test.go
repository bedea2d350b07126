// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/tomtom215/recetario/internal/cache"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore(time.Minute)
	ctx := context.Background()

	s.Set(ctx, "user:1:smart", []byte("a"))
	s.Set(ctx, "user:1:classic", []byte("b"))
	s.Set(ctx, "user:2:smart", []byte("c"))

	if got, ok := s.Get(ctx, "user:1:classic"); !ok || string(got) != "b" {
		t.Errorf("Get() = %q, %v; want b, true", got, ok)
	}
	if n := s.DeletePrefix(ctx, "user:1:"); n != 2 {
		t.Errorf("DeletePrefix() = %d, want 2", n)
	}
	if _, ok := s.Get(ctx, "user:1:smart"); ok {
		t.Error("user 1 entries should be gone")
	}
	if _, ok := s.Get(ctx, "user:2:smart"); !ok {
		t.Error("user 2 entry should survive")
	}
	if n := s.Purge(); n != 0 {
		t.Errorf("Purge() = %d, want 0 with nothing expired", n)
	}
}

// newRedisBackedEngine returns an engine caching into the shared Redis.
func newRedisBackedEngine(t *testing.T, dp DataProvider, rdb *redis.Client) *Engine {
	t.Helper()
	e := newTestEngine(t, dp, time.Now())
	e.SetResultStore(NewRedisStore(cache.NewRedis(rdb, "recetario:", time.Minute), zerolog.Nop()))
	return e
}

// TestRedisStore_SharedBetweenEngines checks that replicas sharing one Redis
// see each other's results and invalidations.
func TestRedisStore_SharedBetweenEngines(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	dp := newMockDataProvider()
	dp.recipes = []Recipe{
		{ID: 1, Title: "Gazpacho", Tags: []string{"vegano"}, Ingredients: []string{"Tomate"}, AuthorID: 9, Published: true},
		{ID: 2, Title: "Tortilla", Tags: []string{"tradicional"}, Ingredients: []string{"Huevo"}, AuthorID: 9, Published: true},
	}
	dp.likes[5] = []int{1}
	dp.likes[6] = []int{2}

	a := newRedisBackedEngine(t, dp, rdb)
	b := newRedisBackedEngine(t, dp, rdb)
	ctx := context.Background()

	first, err := a.Recommend(ctx, Request{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if first.Metadata.CacheHit {
		t.Fatal("first request should miss")
	}
	if !mr.Exists("recetario:user:1:smart") {
		t.Fatal("smart result should be stored in redis")
	}

	fromB, err := b.Recommend(ctx, Request{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !fromB.Metadata.CacheHit {
		t.Error("second replica should hit the shared cache")
	}
	if len(first.Items) == 0 {
		t.Fatal("expected popular recipes to be recommended")
	}
	if len(fromB.Items) != len(first.Items) {
		t.Fatalf("cached items = %d, want %d", len(fromB.Items), len(first.Items))
	}
	for i := range first.Items {
		if fromB.Items[i].Recipe.ID != first.Items[i].Recipe.ID || !approxEqual(fromB.Items[i].Score, first.Items[i].Score) {
			t.Errorf("item %d = %+v, want %+v", i, fromB.Items[i], first.Items[i])
		}
	}
	if dp.candidateCalls.Load() != 1 {
		t.Errorf("CandidateRecipes calls = %d, want 1", dp.candidateCalls.Load())
	}

	if _, err := b.RecommendClassic(ctx, 1); err != nil {
		t.Fatal(err)
	}
	classic, err := a.RecommendClassic(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !classic.Metadata.CacheHit {
		t.Error("classic result should be shared as well")
	}

	b.InvalidateUser(ctx, 1)
	if mr.Exists("recetario:user:1:smart") || mr.Exists("recetario:user:1:classic") {
		t.Error("invalidation on one replica should clear the shared entries")
	}

	after, err := a.Recommend(ctx, Request{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if after.Metadata.CacheHit {
		t.Error("request after invalidation should miss")
	}
}

func TestRedisStore_OutageDegradesToMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })

	dp := newMockDataProvider()
	dp.recipes = []Recipe{{ID: 1, Tags: []string{"a"}, AuthorID: 9, Published: true}}
	dp.likes[5] = []int{1}
	e := newRedisBackedEngine(t, dp, rdb)
	mr.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		resp, err := e.Recommend(ctx, Request{UserID: 1})
		if err != nil {
			t.Fatalf("Recommend() with redis down error = %v", err)
		}
		if resp.Metadata.CacheHit || len(resp.Items) != 1 {
			t.Errorf("response = %+v, want one uncached item", resp.Metadata)
		}
	}
	e.InvalidateUser(ctx, 1)

	if n := e.PurgeExpired(); n != 0 {
		t.Errorf("PurgeExpired() = %d, want 0 for redis", n)
	}
}

func TestEngine_SetResultStoreNilDisablesCache(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Cache.Enabled = true
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if !e.CacheEnabled() {
		t.Fatal("cache should be enabled by config")
	}
	e.SetResultStore(nil)
	if e.CacheEnabled() {
		t.Error("nil store should disable caching")
	}
}

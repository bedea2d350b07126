// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestRedis starts an in-process Redis and returns a cache on it.
func newTestRedis(t *testing.T, ttl time.Duration) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb, "test:", ttl), mr
}

func TestRedisCache_GetSet(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "user:1:smart"); ok || err != nil {
		t.Fatalf("Get() on empty cache = ok %v err %v, want miss", ok, err)
	}

	if err := c.Set(ctx, "user:1:smart", []byte(`{"items":[]}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(ctx, "user:1:smart")
	if err != nil || !ok {
		t.Fatalf("Get() = ok %v err %v, want hit", ok, err)
	}
	if string(got) != `{"items":[]}` {
		t.Errorf("Get() = %s", got)
	}

	if !mr.Exists("test:user:1:smart") {
		t.Error("key should be stored under the namespace")
	}
	if ttl := mr.TTL("test:user:1:smart"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := newTestRedis(t, 30*time.Second)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(31 * time.Second)

	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get() after expiry = ok %v err %v, want miss", ok, err)
	}
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	ctx := context.Background()

	for _, k := range []string{"user:1:smart", "user:1:classic", "user:12:smart", "user:2:smart"} {
		if err := c.Set(ctx, k, []byte("x")); err != nil {
			t.Fatal(err)
		}
	}
	if err := mr.Set("other:user:1:smart", "foreign"); err != nil {
		t.Fatal(err)
	}

	n, err := c.DeletePrefix(ctx, "user:1:")
	if err != nil {
		t.Fatalf("DeletePrefix() error = %v", err)
	}
	if n != 2 {
		t.Errorf("DeletePrefix() = %d, want 2", n)
	}
	for _, k := range []string{"user:12:smart", "user:2:smart"} {
		if _, ok, _ := c.Get(ctx, k); !ok {
			t.Errorf("%s should survive", k)
		}
	}
	if !mr.Exists("other:user:1:smart") {
		t.Error("keys outside the namespace must not be deleted")
	}
}

func TestRedisCache_DeletePrefixEscapesPattern(t *testing.T) {
	c, _ := newTestRedis(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "a*:1", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "ab:1", []byte("x")); err != nil {
		t.Fatal(err)
	}

	n, err := c.DeletePrefix(ctx, "a*:")
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("DeletePrefix(a*:) = %d, want 1", n)
	}
	if _, ok, _ := c.Get(ctx, "ab:1"); !ok {
		t.Error("a literal * prefix must not match ab:1")
	}
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := newTestRedis(t, time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("key should be gone after Delete")
	}
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := newTestRedis(t, time.Minute)
	ctx := context.Background()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	mr.Close()

	if err := c.Ping(ctx); err == nil {
		t.Error("Ping() should fail when Redis is down")
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err == nil {
		t.Errorf("Get() = ok %v err %v, want an error", ok, err)
	}
	if err := c.Set(ctx, "k", []byte("v")); err == nil {
		t.Error("Set() should fail when Redis is down")
	}
}

func TestEscapeGlob(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"user:1:", "user:1:"},
		{"a*b", `a\*b`},
		{"q?[x]", `q\?\[x\]`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeGlob(tt.in); got != tt.want {
			t.Errorf("escapeGlob(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

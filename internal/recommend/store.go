// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package recommend

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recetario/internal/cache"
)

// ResultStore holds encoded recommendation responses. Keys have the form
// "user:<id>:<mode>", so DeletePrefix("user:<id>:") drops one user's
// results. Store failures are not request failures: a failed Get is a
// miss and a failed Set or DeletePrefix is logged by the store.
type ResultStore interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	DeletePrefix(ctx context.Context, prefix string) int
	// Purge removes expired entries and returns how many were removed.
	Purge() int
}

// memoryStore keeps results in the process.
type memoryStore struct {
	c *cache.Cache
}

// NewMemoryStore returns a process-local store whose entries expire after
// ttl.
func NewMemoryStore(ttl time.Duration) ResultStore {
	return &memoryStore{c: cache.New(ttl)}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	data, ok := s.c.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := data.([]byte)
	return b, ok
}

func (s *memoryStore) Set(_ context.Context, key string, value []byte) {
	s.c.Set(key, value)
}

func (s *memoryStore) DeletePrefix(_ context.Context, prefix string) int {
	return s.c.DeletePrefix(prefix)
}

func (s *memoryStore) Purge() int {
	return s.c.Purge()
}

// redisStore shares results between replicas through Redis.
type redisStore struct {
	c      *cache.RedisCache
	logger zerolog.Logger
}

// NewRedisStore returns a store backed by a Redis cache.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRedisStore(c *cache.RedisCache, logger zerolog.Logger) ResultStore {
	return &redisStore{c: c, logger: logger.With().Str("component", "recommend-cache").Logger()}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := s.c.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return nil, false
	}
	return data, ok
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) {
	if err := s.c.Set(ctx, key, value); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (s *redisStore) DeletePrefix(ctx context.Context, prefix string) int {
	n, err := s.c.DeletePrefix(ctx, prefix)
	if err != nil {
		s.logger.Error().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
	}
	return n
}

// Purge is a no-op: Redis expires keys itself.
func (s *redisStore) Purge() int {
	return 0
}

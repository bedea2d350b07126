// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

// Package cache provides the TTL caches used for per-user recommendation
// results: Cache, a thread-safe in-memory map, and RedisCache, a byte-valued
// cache shared through Redis by every API replica.
//
// Keys are plain strings. Callers that need invalidation by owner should
// prefix keys with the owner (for example "user:42:") and call DeletePrefix
// when the owner's data changes.
//
// Cache does not start goroutines. Expired entries are removed lazily
// on Get and in bulk by Purge; the server runs Purge from a supervised
// janitor service. RedisCache relies on Redis key expiry instead.
package cache

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package authz

import (
	"sync"
	"time"
)

// decisionCache caches authorization decisions. Paths carry IDs, so the
// supervisor janitor purges expired entries periodically.
type decisionCache struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]cacheItem
	now   func() time.Time
}

type cacheItem struct {
	allowed   bool
	expiresAt time.Time
}

func newDecisionCache(ttl time.Duration) *decisionCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &decisionCache{ttl: ttl, items: make(map[string]cacheItem), now: time.Now}
}

func (c *decisionCache) key(role, path, action string) string {
	return role + "\x00" + path + "\x00" + action
}

func (c *decisionCache) get(role, path, action string) (allowed, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[c.key(role, path, action)]
	if !found || c.now().After(item.expiresAt) {
		return false, false
	}
	return item.allowed, true
}

func (c *decisionCache) set(role, path, action string, allowed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.key(role, path, action)] = cacheItem{allowed: allowed, expiresAt: c.now().Add(c.ttl)}
}

func (c *decisionCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheItem)
}

func (c *decisionCache) purgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

func (c *decisionCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

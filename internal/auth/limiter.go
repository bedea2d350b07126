// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package auth

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LoginLimiter throttles login attempts per username with token buckets.
// A bucket holds attempts tokens and refills one token every window/attempts.
type LoginLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// NewLoginLimiter creates a limiter allowing attempts logins per window for
// each username. Non-positive values fall back to 5 per 15 minutes.
func NewLoginLimiter(attempts int, window time.Duration) *LoginLimiter {
	if attempts <= 0 {
		attempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(window / time.Duration(attempts)),
		burst:    attempts,
		idle:     window,
		now:      time.Now,
	}
}

// Allow consumes one attempt for username and reports whether it is permitted.
// Usernames are compared case-insensitively.
func (l *LoginLimiter) Allow(username string) bool {
	key := strings.ToLower(username)

	l.mu.Lock()
	now := l.now()
	entry, exists := l.limiters[key]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastAccess = now
	limiter := entry.limiter
	l.mu.Unlock()

	return limiter.AllowN(now, 1)
}

// Reset forgets the bucket for username, typically after a successful login.
func (l *LoginLimiter) Reset(username string) {
	l.mu.Lock()
	delete(l.limiters, strings.ToLower(username))
	l.mu.Unlock()
}

// Cleanup removes buckets idle for longer than the window. A bucket that
// has been idle that long is full again, so dropping it changes nothing.
// It returns the number of buckets removed.
func (l *LoginLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := l.now().Add(-l.idle)
	removed := 0
	for key, entry := range l.limiters {
		if entry.lastAccess.Before(threshold) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked usernames.
func (l *LoginLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

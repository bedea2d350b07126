// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package auth

import (
	"sync"
	"testing"
	"time"
)

func TestLoginLimiter(t *testing.T) {
	t.Run("burst then deny", func(t *testing.T) {
		l := NewLoginLimiter(3, time.Minute)
		for i := 0; i < 3; i++ {
			if !l.Allow("maria") {
				t.Fatalf("attempt %d should be allowed", i+1)
			}
		}
		if l.Allow("maria") {
			t.Error("fourth attempt should be denied")
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		l := NewLoginLimiter(1, time.Minute)
		if !l.Allow("Maria") {
			t.Fatal("first attempt should be allowed")
		}
		if l.Allow("MARIA") {
			t.Error("same username in another case should share the bucket")
		}
	})

	t.Run("usernames are independent", func(t *testing.T) {
		l := NewLoginLimiter(1, time.Minute)
		if !l.Allow("maria") || !l.Allow("jose") {
			t.Error("first attempt per username should be allowed")
		}
	})

	t.Run("refills over time", func(t *testing.T) {
		l := NewLoginLimiter(2, time.Minute)
		now := time.Now()
		l.now = func() time.Time { return now }
		l.Allow("maria")
		l.Allow("maria")
		if l.Allow("maria") {
			t.Fatal("bucket should be empty")
		}
		now = now.Add(31 * time.Second)
		if !l.Allow("maria") {
			t.Error("one token should refill after window/attempts")
		}
	})

	t.Run("reset", func(t *testing.T) {
		l := NewLoginLimiter(1, time.Minute)
		l.Allow("maria")
		l.Reset("MARIA")
		if !l.Allow("maria") {
			t.Error("attempt after reset should be allowed")
		}
	})

	t.Run("cleanup removes idle buckets", func(t *testing.T) {
		l := NewLoginLimiter(5, time.Minute)
		now := time.Now()
		l.now = func() time.Time { return now }
		l.Allow("maria")
		l.Allow("jose")

		now = now.Add(30 * time.Second)
		l.Allow("jose")
		now = now.Add(45 * time.Second)

		if removed := l.Cleanup(); removed != 1 {
			t.Errorf("Cleanup() = %d, want 1", removed)
		}
		if l.Len() != 1 {
			t.Errorf("Len() = %d, want 1", l.Len())
		}
	})

	t.Run("defaults", func(t *testing.T) {
		l := NewLoginLimiter(0, 0)
		if l.burst != 5 || l.idle != 15*time.Minute {
			t.Errorf("defaults = %d/%v", l.burst, l.idle)
		}
	})
}

func TestLoginLimiter_Concurrent(t *testing.T) {
	l := NewLoginLimiter(50, time.Hour)
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("maria") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if allowed != 50 {
		t.Errorf("allowed = %d, want 50", allowed)
	}
}

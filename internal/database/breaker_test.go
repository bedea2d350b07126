// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recetario/internal/config"
	"github.com/tomtom215/recetario/internal/recommend"
)

// failingProvider fails every call with err.
type failingProvider struct {
	err   error
	calls int
}

func (p *failingProvider) LikedRecipes(context.Context, int) ([]recommend.Recipe, error) {
	p.calls++
	return nil, p.err
}

func (p *failingProvider) AuthoredRecipeCount(context.Context, int) (int, error) {
	p.calls++
	return 0, p.err
}

func (p *failingProvider) RecentSearches(context.Context, int, time.Time, int) ([]recommend.SearchEntry, error) {
	p.calls++
	return nil, p.err
}

func (p *failingProvider) CandidateRecipes(context.Context, int) ([]recommend.Recipe, error) {
	p.calls++
	return nil, p.err
}

func (p *failingProvider) CoLikers(context.Context, int, []int, int) ([]recommend.CoLiker, error) {
	p.calls++
	return nil, p.err
}

func (p *failingProvider) HasLiked(context.Context, int, int) (bool, error) {
	p.calls++
	return false, p.err
}

func (p *failingProvider) Preferences(context.Context, int) (recommend.Preferences, error) {
	p.calls++
	return recommend.Preferences{}, p.err
}

func testBreakerConfig() *config.BreakerConfig {
	return &config.BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 3,
	}
}

func TestBreakerProviderOpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	inner := &failingProvider{err: errors.New("IO Error: disk full")}
	bp := NewBreakerProvider(inner, testBreakerConfig())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := bp.LikedRecipes(ctx, 1); err == nil || IsBreakerOpen(err) {
			t.Fatalf("call %d error = %v, want the provider error", i+1, err)
		}
	}
	if bp.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", bp.State())
	}

	_, err := bp.CandidateRecipes(ctx, 1)
	if !IsBreakerOpen(err) {
		t.Errorf("open breaker error = %v, want ErrOpenState", err)
	}
	if inner.calls != 3 {
		t.Errorf("inner provider called %d times, want 3", inner.calls)
	}
}

func TestBreakerProviderIgnoresNotFoundAndCancellation(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrNotFound, context.Canceled} {
		inner := &failingProvider{err: err}
		bp := NewBreakerProvider(inner, testBreakerConfig())

		for i := 0; i < 5; i++ {
			if _, got := bp.HasLiked(context.Background(), 1, 2); !errors.Is(got, err) {
				t.Fatalf("HasLiked() error = %v, want %v", got, err)
			}
		}
		if bp.State() != gobreaker.StateClosed {
			t.Errorf("%v tripped the breaker", err)
		}
	}
}

func TestBreakerProviderPassesResults(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	bp := NewBreakerProvider(db, testBreakerConfig())
	ctx := context.Background()

	liked, err := bp.LikedRecipes(ctx, f.alice)
	if err != nil || len(liked) != 1 {
		t.Fatalf("LikedRecipes() = %d, %v", len(liked), err)
	}
	count, err := bp.AuthoredRecipeCount(ctx, f.bob)
	if err != nil || count != 2 {
		t.Errorf("AuthoredRecipeCount() = %d, %v", count, err)
	}
	searches, err := bp.RecentSearches(ctx, f.alice, time.Time{}, 10)
	if err != nil || len(searches) != 0 {
		t.Errorf("RecentSearches() = %v, %v", searches, err)
	}
	candidates, err := bp.CandidateRecipes(ctx, f.alice)
	if err != nil || len(candidates) != 1 {
		t.Errorf("CandidateRecipes() = %d, %v", len(candidates), err)
	}
	likers, err := bp.CoLikers(ctx, f.alice, []int{f.pasta}, 10)
	if err != nil || len(likers) != 2 {
		t.Errorf("CoLikers() = %v, %v", likers, err)
	}
	has, err := bp.HasLiked(ctx, f.alice, f.pasta)
	if err != nil || !has {
		t.Errorf("HasLiked() = %v, %v", has, err)
	}
	prefs, err := bp.Preferences(ctx, f.alice)
	if err != nil || len(prefs.Tags) != 0 {
		t.Errorf("Preferences() = %+v, %v", prefs, err)
	}
}

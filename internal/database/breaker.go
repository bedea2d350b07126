// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/recetario/internal/config"
	"github.com/tomtom215/recetario/internal/logging"
	"github.com/tomtom215/recetario/internal/metrics"
	"github.com/tomtom215/recetario/internal/recommend"
)

// ProviderBreakerName labels the provider breaker in logs and metrics.
const ProviderBreakerName = "recommend-provider"

// Provider is everything the recommendation engine reads.
type Provider interface {
	recommend.DataProvider
	recommend.PreferenceProvider
}

// BreakerProvider wraps a Provider with a circuit breaker so that a failing
// database fails recommendation requests fast instead of piling up queries.
//
// The breaker uses real time for its interval and timeout; tests that need
// deterministic behavior should exercise the wrapped provider directly.
type BreakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker[any]
	name string
}

var _ Provider = (*BreakerProvider)(nil)

// NewBreakerProvider wraps next. The circuit opens after cfg.FailureThreshold
// consecutive failures and probes again after cfg.Timeout.
func NewBreakerProvider(next Provider, cfg *config.BreakerConfig) *BreakerProvider {
	name := ProviderBreakerName
	logger := logging.WithComponent("breaker")

	metrics.RecordBreakerState(name, int(gobreaker.StateClosed))

	threshold := cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			trip := counts.ConsecutiveFailures >= threshold
			if trip {
				logger.Warn().Uint32("consecutive_failures", counts.ConsecutiveFailures).Msg("Opening circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("State transition")
			metrics.RecordBreakerState(name, int(to))
		},

		// Caller cancellations and missing rows say nothing about database health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ErrNotFound)
		},
	})

	return &BreakerProvider{next: next, cb: cb, name: name}
}

// State returns the current breaker state.
func (b *BreakerProvider) State() gobreaker.State {
	return b.cb.State()
}

// IsBreakerOpen reports whether err came from a breaker refusing the call.
func IsBreakerOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// execute runs fn through the breaker and records the outcome.
func execute[T any](b *BreakerProvider, fn func() (T, error)) (T, error) {
	var zero T
	result, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		if IsBreakerOpen(err) {
			metrics.RecordBreakerResult(b.name, "rejected")
		} else {
			metrics.RecordBreakerResult(b.name, "failure")
		}
		return zero, err
	}
	metrics.RecordBreakerResult(b.name, "success")

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// LikedRecipes implements recommend.DataProvider.
func (b *BreakerProvider) LikedRecipes(ctx context.Context, userID int) ([]recommend.Recipe, error) {
	return execute(b, func() ([]recommend.Recipe, error) {
		return b.next.LikedRecipes(ctx, userID)
	})
}

// AuthoredRecipeCount implements recommend.DataProvider.
func (b *BreakerProvider) AuthoredRecipeCount(ctx context.Context, userID int) (int, error) {
	return execute(b, func() (int, error) {
		return b.next.AuthoredRecipeCount(ctx, userID)
	})
}

// RecentSearches implements recommend.DataProvider.
func (b *BreakerProvider) RecentSearches(ctx context.Context, userID int, since time.Time, limit int) ([]recommend.SearchEntry, error) {
	return execute(b, func() ([]recommend.SearchEntry, error) {
		return b.next.RecentSearches(ctx, userID, since, limit)
	})
}

// CandidateRecipes implements recommend.DataProvider.
func (b *BreakerProvider) CandidateRecipes(ctx context.Context, userID int) ([]recommend.Recipe, error) {
	return execute(b, func() ([]recommend.Recipe, error) {
		return b.next.CandidateRecipes(ctx, userID)
	})
}

// CoLikers implements recommend.DataProvider.
func (b *BreakerProvider) CoLikers(ctx context.Context, userID int, recipeIDs []int, limit int) ([]recommend.CoLiker, error) {
	return execute(b, func() ([]recommend.CoLiker, error) {
		return b.next.CoLikers(ctx, userID, recipeIDs, limit)
	})
}

// HasLiked implements recommend.DataProvider.
func (b *BreakerProvider) HasLiked(ctx context.Context, userID, recipeID int) (bool, error) {
	return execute(b, func() (bool, error) {
		return b.next.HasLiked(ctx, userID, recipeID)
	})
}

// Preferences implements recommend.PreferenceProvider.
func (b *BreakerProvider) Preferences(ctx context.Context, userID int) (recommend.Preferences, error) {
	return execute(b, func() (recommend.Preferences, error) {
		return b.next.Preferences(ctx, userID)
	})
}

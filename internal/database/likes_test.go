// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"errors"
	"testing"
)

func TestToggleLike(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)
	ctx := context.Background()

	liked, count, err := db.ToggleLike(ctx, f.alice, f.tacos)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if !liked || count != 2 {
		t.Errorf("first toggle = (%v, %d), want (true, 2)", liked, count)
	}

	liked, count, err = db.ToggleLike(ctx, f.alice, f.tacos)
	if err != nil {
		t.Fatalf("ToggleLike() error = %v", err)
	}
	if liked || count != 1 {
		t.Errorf("second toggle = (%v, %d), want (false, 1)", liked, count)
	}

	// Re-liking after an unlike works across transactions.
	liked, count, err = db.ToggleLike(ctx, f.alice, f.tacos)
	if err != nil || !liked || count != 2 {
		t.Errorf("third toggle = (%v, %d, %v), want (true, 2, nil)", liked, count, err)
	}

	got, err := db.LikeCount(ctx, f.tacos)
	if err != nil || got != 2 {
		t.Errorf("LikeCount() = %d, %v; want 2", got, err)
	}
}

func TestToggleLikeUnknownRecipe(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixture(t, db)

	_, _, err := db.ToggleLike(context.Background(), f.alice, 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ToggleLike(unknown) error = %v, want ErrNotFound", err)
	}
}

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/recetario/internal/config"
	"github.com/tomtom215/recetario/internal/recommend"
)

// testDBSemaphore limits concurrent database creation to prevent resource exhaustion in CI.
// When many tests run in parallel, too many concurrent DuckDB CGO calls can cause hangs.
var testDBSemaphore = make(chan struct{}, 1)

// testDBMutex serializes database creation for short periods to reduce contention.
var testDBMutex sync.Mutex

// fixedNow is the clock used by test databases.
var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// setupTestDB creates a new in-memory test database with timeout protection.
// The semaphore is held for the entire test lifecycle and released by t.Cleanup,
// so only one test has an active DuckDB connection at any time.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	type result struct {
		db  *DB
		err error
	}

	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := New(cfg)
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		res.db.now = func() time.Time { return fixedNow }
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Errorf("close database: %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s (DuckDB may be under resource pressure)")
		return nil
	}
}

// fixture holds IDs created by seedFixture.
type fixture struct {
	alice, bob, carol int

	// pasta by bob, liked by alice, bob and carol
	pasta int
	// tacos by carol, liked by bob
	tacos int
	// lasagna by alice, unliked
	lasagna int
	// draft by bob, unpublished, liked by carol
	draft int
}

// seedFixture creates three users, four recipes and five likes.
func seedFixture(t *testing.T, db *DB) fixture {
	t.Helper()
	ctx := context.Background()

	var f fixture
	for _, acct := range []struct {
		name string
		id   *int
	}{{"alice", &f.alice}, {"bob", &f.bob}, {"carol", &f.carol}} {
		u, err := db.CreateUser(ctx, acct.name, "hash-"+acct.name, RoleUser)
		if err != nil {
			t.Fatalf("CreateUser(%s): %v", acct.name, err)
		}
		*acct.id = u.ID
	}

	create := func(r *NewRecipe) int {
		t.Helper()
		id, err := db.CreateRecipe(ctx, r)
		if err != nil {
			t.Fatalf("CreateRecipe(%s): %v", r.Title, err)
		}
		return id
	}

	f.pasta = create(&NewRecipe{
		Title: "Pasta al pomodoro", PrepTime: 10, CookTime: 15, Difficulty: recommend.DifficultyEasy,
		AuthorID: f.bob, Published: true, Tags: []string{"rápida", "italiana"}, Ingredients: []string{"Tomate", "Pasta"},
		CreatedAt: fixedNow.Add(-48 * time.Hour),
	})
	f.tacos = create(&NewRecipe{
		Title: "Tacos de pollo", PrepTime: 20, CookTime: 20, Difficulty: recommend.DifficultyIntermediate,
		AuthorID: f.carol, Published: true, Tags: []string{"mexicana"}, Ingredients: []string{"Pollo", "Maíz"},
		CreatedAt: fixedNow.Add(-24 * time.Hour),
	})
	f.lasagna = create(&NewRecipe{
		Title: "Lasaña", PrepTime: 40, CookTime: 60, Difficulty: recommend.DifficultyHard,
		AuthorID: f.alice, Published: true, Tags: []string{"italiana"}, Ingredients: []string{"Pasta", "Queso"},
		CreatedAt: fixedNow.Add(-72 * time.Hour),
	})
	f.draft = create(&NewRecipe{
		Title: "Borrador", AuthorID: f.bob, Published: false,
		Tags: []string{"italiana"}, Ingredients: []string{"Pasta"},
	})

	for _, like := range [][2]int{
		{f.alice, f.pasta}, {f.bob, f.pasta}, {f.carol, f.pasta}, {f.bob, f.tacos}, {f.carol, f.draft},
	} {
		if liked, _, err := db.ToggleLike(ctx, like[0], like[1]); err != nil || !liked {
			t.Fatalf("ToggleLike(%d, %d) = %v, %v", like[0], like[1], liked, err)
		}
	}
	return f
}

func TestNewCreatesDatabaseFile(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	path := filepath.Join(t.TempDir(), "nested", "recetario.duckdb")

	db, err := New(&config.DatabaseConfig{Path: path, MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := db.GetDatabasePath(); got != path {
		t.Errorf("GetDatabasePath() = %q, want %q", got, path)
	}
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening must not re-run applied migrations.
	db, err = New(&config.DatabaseConfig{Path: path, MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer db.Close()

	history, err := db.GetMigrationHistory(context.Background())
	if err != nil {
		t.Fatalf("GetMigrationHistory() error = %v", err)
	}
	if len(history) != len(db.getMigrations()) {
		t.Errorf("applied %d migrations, want %d", len(history), len(db.getMigrations()))
	}
}

func TestSchemaVersion(t *testing.T) {
	db := setupTestDB(t)

	version, err := db.GetCurrentSchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion() error = %v", err)
	}
	migrations := db.getMigrations()
	if want := migrations[len(migrations)-1].Version; version != want {
		t.Errorf("schema version = %d, want %d", version, want)
	}
}

func TestEnsureContext(t *testing.T) {
	db := setupTestDB(t)

	//nolint:staticcheck // SA1012: nil context is exactly what is being tested
	ctx, cancel := db.ensureContext(nil)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("nil context should get a deadline")
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()
	ctx, cancel = db.ensureContext(parent)
	defer cancel()
	if ctx != parent {
		t.Error("context with deadline should be returned unchanged")
	}
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, ""},
		{1, "?"},
		{3, "?, ?, ?"},
	}
	for _, tt := range tests {
		if got := placeholders(tt.n); got != tt.want {
			t.Errorf("placeholders(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestIsTransactionConflict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want bool
	}{
		{"TransactionContext Error: Transaction conflict: cannot update", true},
		{"Conflict on update!", true},
		{"Catalog Error: table not found", false},
	}
	for _, tt := range tests {
		if got := isTransactionConflict(errString(tt.msg)); got != tt.want {
			t.Errorf("isTransactionConflict(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
	if isTransactionConflict(nil) {
		t.Error("nil is not a conflict")
	}
}

type errString string

func (e errString) Error() string { return string(e) }

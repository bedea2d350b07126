// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/recetario/internal/auth"
	"github.com/tomtom215/recetario/internal/authz"
	"github.com/tomtom215/recetario/internal/config"
	"github.com/tomtom215/recetario/internal/database"
	"github.com/tomtom215/recetario/internal/logging"
	"github.com/tomtom215/recetario/internal/recommend"
)

const demoPassword = "cocina-demo-42"

// testDBSemaphore keeps one DuckDB instance open at a time.
var testDBSemaphore = make(chan struct{}, 1)

type testEnv struct {
	t       *testing.T
	db      *database.DB
	engine  *recommend.Engine
	jwt     *auth.JWTManager
	limiter *auth.LoginLimiter
	handler http.Handler
}

// envelope mirrors APIResponse with the data left raw.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata Metadata        `json:"metadata"`
	Error    *APIError       `json:"error"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := database.New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB"})
	if err != nil {
		t.Fatalf("database.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	hasher := auth.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash(demoPassword)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if err := db.SeedDemoData(context.Background(), hash); err != nil {
		t.Fatalf("SeedDemoData() error = %v", err)
	}

	engineCfg := recommend.DefaultConfig()
	engineCfg.Cache.Enabled = true
	engine, err := recommend.NewEngine(engineCfg, logging.NewTestLogger(nil))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetDataProvider(db)

	security := &config.SecurityConfig{
		JWTSecret:     "test-secret-with-at-least-32-characters!",
		TokenTTL:      time.Hour,
		LoginAttempts: 3,
		LoginWindow:   time.Minute,
	}
	jwtManager, err := auth.NewJWTManager(security)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
		t.Fatalf("NewEnforcer() error = %v", err)
	}
	limiter := auth.NewLoginLimiter(security.LoginAttempts, security.LoginWindow)

	router, err := NewRouter(&Dependencies{
		DB:       db,
		Engine:   engine,
		JWT:      jwtManager,
		Hasher:   hasher,
		Limiter:  limiter,
		Enforcer: enforcer,
		Security: security,
	})
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	return &testEnv{t: t, db: db, engine: engine, jwt: jwtManager, limiter: limiter, handler: router.Handler()}
}

// tokenFor issues a token for an existing user.
func (e *testEnv) tokenFor(username string) string {
	e.t.Helper()
	user, err := e.db.GetUserByUsername(context.Background(), username)
	if err != nil {
		e.t.Fatalf("GetUserByUsername(%q) error = %v", username, err)
	}
	token, _, err := e.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		e.t.Fatalf("GenerateToken() error = %v", err)
	}
	return token
}

func (e *testEnv) adminToken() string {
	e.t.Helper()
	if _, err := e.db.CreateUser(context.Background(), "administra", "x", database.RoleAdmin); err != nil {
		e.t.Fatalf("CreateUser(admin) error = %v", err)
	}
	return e.tokenFor("administra")
}

func (e *testEnv) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			e.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if ct := rec.Header().Get("Content-Type"); strings.HasPrefix(ct, "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			e.t.Fatalf("decode %s %s: %v (body %q)", method, path, err, rec.Body.String())
		}
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, env.Data)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}

func expectErrorCode(t *testing.T, env envelope, want string) {
	t.Helper()
	if env.Error == nil {
		t.Fatalf("error = nil, want code %q", want)
	}
	if env.Error.Code != want {
		t.Errorf("error code = %q, want %q", env.Error.Code, want)
	}
}

func TestNewRouter_RequiresDependencies(t *testing.T) {
	if _, err := NewRouter(&Dependencies{}); err == nil {
		t.Error("NewRouter() with no dependencies should fail")
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(http.MethodGet, "/api/v1/health", "", nil)
	expectStatus(t, rec, http.StatusOK)

	var status HealthStatus
	decodeData(t, body, &status)
	if status.Status != "healthy" || status.Database != "connected" {
		t.Errorf("health = %+v", status)
	}
	if body.Metadata.RequestID == "" {
		t.Error("metadata.request_id is empty")
	}
}

func TestTags(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(http.MethodGet, "/api/v1/tags", "", nil)
	expectStatus(t, rec, http.StatusOK)

	var tags []database.Tag
	decodeData(t, body, &tags)
	if len(tags) != len(database.CanonicalTags) {
		t.Errorf("len(tags) = %d, want %d", len(tags), len(database.CanonicalTags))
	}
}

func TestIngredientAutocomplete(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		query   string
		wantAny bool
	}{
		{"prefix", "tom", true},
		{"too short", "t", false},
		{"no match", "zzzz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(http.MethodGet, "/api/v1/ingredients/search?q="+tt.query, "", nil)
			expectStatus(t, rec, http.StatusOK)

			var ingredients []database.Ingredient
			decodeData(t, body, &ingredients)
			if (len(ingredients) > 0) != tt.wantAny {
				t.Errorf("got %d ingredients, wantAny %v", len(ingredients), tt.wantAny)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	env.do(http.MethodGet, "/api/v1/tags", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "recetario_api_requests_total") {
		t.Error("metrics output is missing recetario_api_requests_total")
	}
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(http.MethodGet, "/api/v1/health", "", nil)
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header is missing")
	}
}

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package authz

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/recetario/internal/auth"
	"github.com/tomtom215/recetario/internal/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func requestAs(ctx context.Context, method, path, role string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req = req.WithContext(auth.ContextWithClaims(ctx, &auth.Claims{UserID: 9, Username: "maria", Role: role}))
	}
	return req
}

func TestMiddleware_Authorize(t *testing.T) {
	var logBuf bytes.Buffer
	security := logging.NewSecurityLoggerWithLogger(logging.NewTestLogger(&logBuf))
	mw := NewMiddleware(setupEnforcer(t, nil), security, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		role       string
		wantStatus int
	}{
		{"user recommendations", http.MethodGet, "/api/v1/recommendations/smart", "user", http.StatusNoContent},
		{"admin recommendations", http.MethodGet, "/api/v1/recommendations/smart", "admin", http.StatusForbidden},
		{"user like", http.MethodPost, "/api/v1/recipes/3/like", "user", http.StatusNoContent},
		{"admin like", http.MethodPost, "/api/v1/recipes/3/like", "admin", http.StatusForbidden},
		{"admin preferences update", http.MethodPut, "/api/v1/preferences", "admin", http.StatusForbidden},
		{"admin ingredient search", http.MethodGet, "/api/v1/recipes/search/ingredients", "admin", http.StatusNoContent},
		{"no claims", http.MethodGet, "/api/v1/preferences", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mw.Authorize(okHandler()).ServeHTTP(rec, requestAs(context.Background(), tt.method, tt.path, tt.role))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusForbidden && !strings.Contains(rec.Body.String(), "exclusiva para usuarios") {
				t.Errorf("body = %q, want the users-only message", rec.Body.String())
			}
		})
	}

	if !strings.Contains(logBuf.String(), logging.EventAccessDenied) {
		t.Errorf("denials should be audit logged, got %q", logBuf.String())
	}
}

func TestMiddleware_AuthorizeOptional(t *testing.T) {
	var logBuf bytes.Buffer
	security := logging.NewSecurityLoggerWithLogger(logging.NewTestLogger(&logBuf))
	mw := NewMiddleware(setupEnforcer(t, nil), security, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		role       string
		wantStatus int
	}{
		{"anonymous listing", http.MethodGet, "/api/v1/recipes", "", http.StatusNoContent},
		{"anonymous ingredient search", http.MethodGet, "/api/v1/recipes/search/ingredients", "", http.StatusNoContent},
		{"anonymous like", http.MethodPost, "/api/v1/recipes/3/like", "", http.StatusUnauthorized},
		{"anonymous recommendations", http.MethodGet, "/api/v1/recommendations/smart", "", http.StatusUnauthorized},
		{"user ingredient search", http.MethodGet, "/api/v1/recipes/search/ingredients", "user", http.StatusNoContent},
		{"admin recommendations", http.MethodGet, "/api/v1/recommendations/smart", "admin", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mw.AuthorizeOptional(okHandler()).ServeHTTP(rec, requestAs(context.Background(), tt.method, tt.path, tt.role))
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestMethodToAction(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		http.MethodGet:    ActionRead,
		http.MethodHead:   ActionRead,
		http.MethodPost:   ActionWrite,
		http.MethodPut:    ActionWrite,
		http.MethodDelete: ActionWrite,
	}
	for method, want := range tests {
		if got := methodToAction(method); got != want {
			t.Errorf("methodToAction(%s) = %s, want %s", method, got, want)
		}
	}
}

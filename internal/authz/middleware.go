// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package authz

import (
	"net/http"

	"github.com/tomtom215/recetario/internal/auth"
	"github.com/tomtom215/recetario/internal/logging"
)

// ForbiddenMessage is returned when an admin calls a personal feature.
const ForbiddenMessage = "Esta función es exclusiva para usuarios."

// Middleware authorizes authenticated requests against the policy.
type Middleware struct {
	enforcer   *Enforcer
	security   *logging.SecurityLogger
	writeError auth.ErrorWriter
}

// NewMiddleware creates authorization middleware. A nil writeError falls
// back to plain-text http.Error responses.
func NewMiddleware(enforcer *Enforcer, security *logging.SecurityLogger, writeError auth.ErrorWriter) *Middleware {
	if security == nil {
		security = logging.NewSecurityLogger()
	}
	if writeError == nil {
		writeError = func(w http.ResponseWriter, _ *http.Request, status int, _, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{enforcer: enforcer, security: security, writeError: writeError}
}

// AnonymousRole is the policy subject for requests without a token.
const AnonymousRole = "anonymous"

// Authorize checks the caller's role against the request path and method.
// It must run after auth.Middleware.Authenticate.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			m.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		if m.allow(w, r, claims.UserID, claims.Role) {
			next.ServeHTTP(w, r)
		}
	})
}

// AuthorizeOptional is Authorize for routes that also serve anonymous
// callers. It must run after auth.Middleware.OptionalAuthenticate. Requests
// without claims are checked as AnonymousRole, and a denial answers 401 so
// the caller knows a token would help.
func (m *Middleware) AuthorizeOptional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
			if m.allow(w, r, claims.UserID, claims.Role) {
				next.ServeHTTP(w, r)
			}
			return
		}

		allowed, err := m.enforcer.Enforce(AnonymousRole, r.URL.Path, methodToAction(r.Method))
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
			m.writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
			return
		}
		if !allowed {
			m.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allow enforces the policy for an authenticated caller and writes the
// error response when the request is refused.
func (m *Middleware) allow(w http.ResponseWriter, r *http.Request, userID int, role string) bool {
	allowed, err := m.enforcer.Enforce(role, r.URL.Path, methodToAction(r.Method))
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Authorization error")
		m.writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return false
	}
	if !allowed {
		m.security.LogAccessDenied(userID, role, r.URL.Path)
		m.writeError(w, r, http.StatusForbidden, "FORBIDDEN", ForbiddenMessage)
		return false
	}
	return true
}

// methodToAction maps HTTP methods to policy actions.
func methodToAction(method string) string {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ActionRead
	default:
		return ActionWrite
	}
}

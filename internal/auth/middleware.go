// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package auth

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/tomtom215/recetario/internal/logging"
)

type contextKey string

// ClaimsContextKey is the request context key holding *Claims.
const ClaimsContextKey contextKey = "claims"

// TokenCookieName is the cookie checked when no Authorization header is sent.
const TokenCookieName = "token"

var (
	errMissingToken  = errors.New("missing token")
	errInvalidHeader = errors.New("invalid authorization header")
)

// ErrorWriter writes an error response. The API package supplies one that
// renders its JSON envelope.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, code, message string)

// Middleware validates bearer tokens and stores the claims in the context.
type Middleware struct {
	jwtManager     *JWTManager
	writeError     ErrorWriter
	trustedProxies map[string]bool
}

// NewMiddleware creates authentication middleware. A nil writeError falls
// back to plain-text http.Error responses. Forwarding headers are honored
// only for requests arriving from one of trustedProxies.
func NewMiddleware(jwtManager *JWTManager, writeError ErrorWriter, trustedProxies ...string) *Middleware {
	if writeError == nil {
		writeError = func(w http.ResponseWriter, _ *http.Request, status int, _, message string) {
			http.Error(w, message, status)
		}
	}
	trusted := make(map[string]bool, len(trustedProxies))
	for _, proxy := range trustedProxies {
		trusted[proxy] = true
	}
	return &Middleware{jwtManager: jwtManager, writeError: writeError, trustedProxies: trusted}
}

// Authenticate rejects requests without a valid token with 401.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			m.writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).
				Str("token", logging.SanitizeToken(token)).
				Msg("Token validation failed")
			m.writeError(w, r, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// OptionalAuthenticate attaches claims when a valid token is present and
// otherwise serves the request anonymously.
func (m *Middleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err == nil {
			if claims, verr := m.jwtManager.ValidateToken(token); verr == nil {
				r = r.WithContext(ContextWithClaims(r.Context(), claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ContextWithClaims stores claims and the user ID in ctx.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	ctx = context.WithValue(ctx, ClaimsContextKey, claims)
	return logging.ContextWithUserID(ctx, claims.UserID)
}

// ClaimsFromContext returns the authenticated claims, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// extractToken reads the token from the Authorization header or the
// token cookie.
func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie(TokenCookieName)
		if err != nil || cookie.Value == "" {
			return "", errMissingToken
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errInvalidHeader
	}
	return strings.TrimSpace(parts[1]), nil
}

// ClientIP returns the client address, trusting X-Forwarded-For and
// X-Real-IP only when the direct peer is a trusted proxy.
func (m *Middleware) ClientIP(r *http.Request) string {
	remoteIP := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		remoteIP = host
	}

	if !m.trustedProxies[remoteIP] {
		return remoteIP
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}
	return remoteIP
}

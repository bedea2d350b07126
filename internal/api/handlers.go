// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/recetario/internal/auth"
	"github.com/tomtom215/recetario/internal/authz"
	"github.com/tomtom215/recetario/internal/config"
	"github.com/tomtom215/recetario/internal/database"
	"github.com/tomtom215/recetario/internal/logging"
	"github.com/tomtom215/recetario/internal/recommend"
)

// Dependencies are the collaborators the API is built from.
type Dependencies struct {
	DB       *database.DB
	Engine   *recommend.Engine
	Breaker  *database.BreakerProvider // optional, reported by /health
	JWT      *auth.JWTManager
	Hasher   *auth.Hasher
	Limiter  *auth.LoginLimiter
	Enforcer *authz.Enforcer
	Security *config.SecurityConfig

	// Policy defaults to auth.DefaultPasswordPolicy.
	Policy *auth.PasswordPolicy

	// RequestTimeout bounds each request (0 = no timeout).
	RequestTimeout time.Duration

	// TrustedProxies may set X-Forwarded-For.
	TrustedProxies []string
}

func (d *Dependencies) validate() error {
	switch {
	case d.DB == nil:
		return errors.New("api: database is required")
	case d.Engine == nil:
		return errors.New("api: recommendation engine is required")
	case d.JWT == nil:
		return errors.New("api: JWT manager is required")
	case d.Hasher == nil:
		return errors.New("api: password hasher is required")
	case d.Limiter == nil:
		return errors.New("api: login limiter is required")
	case d.Enforcer == nil:
		return errors.New("api: authorization enforcer is required")
	case d.Security == nil:
		return errors.New("api: security config is required")
	}
	return nil
}

// Handler holds the HTTP handlers.
type Handler struct {
	db       *database.DB
	engine   *recommend.Engine
	breaker  *database.BreakerProvider
	jwt      *auth.JWTManager
	hasher   *auth.Hasher
	policy   auth.PasswordPolicy
	limiter  *auth.LoginLimiter
	authMW   *auth.Middleware
	security *logging.SecurityLogger
	logger   zerolog.Logger

	startTime time.Time
}

// currentUser returns the authenticated claims. Routes behind
// auth.Middleware.Authenticate always have them.
func currentUser(r *http.Request) (*auth.Claims, bool) {
	return auth.ClaimsFromContext(r.Context())
}

// requireUser writes 401 and returns false when no claims are present.
func requireUser(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := currentUser(r)
	if !ok {
		respondError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	}
	return claims, ok
}

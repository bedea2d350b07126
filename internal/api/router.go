// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/recetario/internal/auth"
	"github.com/tomtom215/recetario/internal/authz"
	"github.com/tomtom215/recetario/internal/logging"
	"github.com/tomtom215/recetario/internal/middleware"
)

// compressionLevel is the gzip level used for JSON responses.
const compressionLevel = 5

// Router wires handlers and middleware into a chi mux.
type Router struct {
	handler       *Handler
	auth          *auth.Middleware
	authz         *authz.Middleware
	chiMiddleware *ChiMiddleware
	timeout       time.Duration
}

// NewRouter builds the router from deps.
func NewRouter(deps *Dependencies) (*Router, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	policy := auth.DefaultPasswordPolicy()
	if deps.Policy != nil {
		policy = *deps.Policy
	}

	security := logging.NewSecurityLogger()
	authMW := auth.NewMiddleware(deps.JWT, respondError, deps.TrustedProxies...)

	h := &Handler{
		db:        deps.DB,
		engine:    deps.Engine,
		breaker:   deps.Breaker,
		jwt:       deps.JWT,
		hasher:    deps.Hasher,
		policy:    policy,
		limiter:   deps.Limiter,
		authMW:    authMW,
		security:  security,
		logger:    logging.WithComponent("api"),
		startTime: time.Now(),
	}

	return &Router{
		handler:       h,
		auth:          authMW,
		authz:         authz.NewMiddleware(deps.Enforcer, security, respondError),
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(deps.Security)),
		timeout:       deps.RequestTimeout,
	}, nil
}

// Handler returns the fully wired http.Handler.
func (router *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(withStart)
	r.Use(middleware.AccessLog(middleware.DefaultSlowThreshold))
	r.Use(middleware.PrometheusMetrics)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chimiddleware.Compress(compressionLevel, "application/json"))
		r.Use(APISecurityHeaders())
		r.Use(router.chiMiddleware.RateLimit())
		if router.timeout > 0 {
			r.Use(chimiddleware.Timeout(router.timeout))
		}

		r.Get("/health", router.handler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", router.handler.Register)
			r.Post("/login", router.handler.Login)
		})

		// Anonymous catalog lookups.
		r.Get("/ingredients/search", router.handler.IngredientAutocomplete)
		r.Get("/tags", router.handler.Tags)

		// Browsing and searching work anonymously; a token only adds search
		// history.
		r.Group(func(r chi.Router) {
			r.Use(router.auth.OptionalAuthenticate)
			r.Use(router.authz.AuthorizeOptional)

			r.Get("/recipes", router.handler.ListRecipes)
			r.Get("/recipes/search/ingredients", router.handler.SearchByIngredients)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.auth.Authenticate)
			r.Use(router.authz.Authorize)

			r.Post("/recipes/{id}/like", router.handler.ToggleLike)

			r.Get("/recommendations/smart", router.handler.SmartRecommendations)
			r.Get("/recommendations/classic", router.handler.ClassicRecommendations)

			r.Get("/preferences", router.handler.GetPreferences)
			r.Put("/preferences", router.handler.UpdatePreferences)
		})
	})

	return r
}

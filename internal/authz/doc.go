// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package authz gates API routes by account role using Casbin.

The embedded model matches the role against the request path with keyMatch2
and the action with regexMatch. Actions are derived from the HTTP method:
GET and HEAD are "read", everything else is "write".

Roles:

  - user: recipes, search, likes, preferences and recommendations
  - admin: recipes and search only; personal features answer 403

Both roles inherit from "member", which holds the rules shared by every
authenticated account. Requests without a token are checked as
"anonymous" on routes wrapped with AuthorizeOptional; the policy lets them
browse and search recipes.

Usage:

	enforcer, err := authz.NewEnforcer(nil)
	if err != nil {
	    return err
	}
	az := authz.NewMiddleware(enforcer, logging.NewSecurityLogger(), writeError)

	r.Group(func(r chi.Router) {
	    r.Use(authMW.Authenticate, az.Authorize)
	    r.Get("/api/v1/recommendations/smart", h.SmartRecommendations)
	})

A policy file on disk can replace the embedded policy through
EnforcerConfig.PolicyPath.
*/
package authz

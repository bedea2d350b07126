// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

/*
Package auth provides authentication for the Recetario API.

Key Components:

  - JWTManager: HS256 token generation and validation; tokens carry the
    user ID, username and role
  - Hasher: bcrypt password hashing (cost 12 in production)
  - PasswordPolicy: registration password rules
  - LoginLimiter: per-username token buckets that throttle login attempts
  - Middleware: chi-compatible middleware that validates bearer tokens and
    stores Claims in the request context

Usage Example:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(jwtManager, nil)

	r.Group(func(r chi.Router) {
	    r.Use(mw.Authenticate)
	    r.Get("/api/v1/recommendations/smart", handler.Smart)
	})

	// Inside a handler
	claims, ok := auth.ClaimsFromContext(r.Context())

Security Considerations:

  - Tokens are signed with HMAC-SHA256; any other algorithm is rejected
  - JWT_SECRET must be at least 32 characters (enforced by config.Validate)
  - Login failures never reveal whether the username exists
*/
package auth

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/recetario/internal/auth"
	"github.com/tomtom215/recetario/internal/database"
	"github.com/tomtom215/recetario/internal/metrics"
)

// Register handles POST /api/v1/auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}
	if err := h.policy.ValidateWithError(req.Password, req.Username); err != nil {
		metrics.RecordAuthAttempt("register", false)
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondServiceError(w, r, "hash_password", err)
		return
	}

	user, err := h.db.CreateUser(r.Context(), req.Username, hash, database.RoleUser)
	if err != nil {
		metrics.RecordAuthAttempt("register", false)
		respondServiceError(w, r, "create_user", err)
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		respondServiceError(w, r, "generate_token", err)
		return
	}

	metrics.RecordAuthAttempt("register", true)
	h.security.LogRegister(user.ID, user.Username, h.authMW.ClientIP(r))
	setTokenCookie(w, r, token, expiresAt)
	respondOK(w, r, http.StatusCreated, &authResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

// Login handles POST /api/v1/auth/login. Unknown usernames and wrong
// passwords return the same 401 after the same bcrypt work.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	ip := h.authMW.ClientIP(r)
	if !h.limiter.Allow(req.Username) {
		metrics.RecordAuthAttempt("login", false)
		h.security.LogLoginThrottled(req.Username, ip)
		w.Header().Set("Retry-After", "60")
		respondError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "Too many login attempts, try again later")
		return
	}

	user, err := h.db.GetUserByUsername(r.Context(), req.Username)
	switch {
	case errors.Is(err, database.ErrNotFound):
		_ = h.hasher.VerifyUnknownUser(req.Password)
		h.loginFailed(w, r, req.Username, ip, "unknown user")
		return
	case err != nil:
		respondServiceError(w, r, "get_user", err)
		return
	}

	if err := h.hasher.Verify(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			respondServiceError(w, r, "verify_password", err)
			return
		}
		h.loginFailed(w, r, req.Username, ip, "wrong password")
		return
	}

	token, expiresAt, err := h.jwt.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		respondServiceError(w, r, "generate_token", err)
		return
	}

	h.limiter.Reset(req.Username)
	metrics.RecordAuthAttempt("login", true)
	h.security.LogLoginSuccess(user.ID, user.Username, ip)
	setTokenCookie(w, r, token, expiresAt)
	respondOK(w, r, http.StatusOK, &authResponse{Token: token, ExpiresAt: expiresAt, User: user})
}

func (h *Handler) loginFailed(w http.ResponseWriter, r *http.Request, username, ip, reason string) {
	metrics.RecordAuthAttempt("login", false)
	h.security.LogLoginFailure(username, ip, reason)
	respondError(w, r, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
}

// setTokenCookie mirrors the token into an HttpOnly cookie for browser clients.
func setTokenCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteStrictMode,
	})
}

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/recetario/internal/database"
	"github.com/tomtom215/recetario/internal/logging"
	"github.com/tomtom215/recetario/internal/validation"
)

// Response status values.
const (
	statusSuccess = "success"
	statusError   = "error"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// APIResponse is the envelope of every response.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries timing and tracing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms"`
	RequestID   string    `json:"request_id,omitempty"`
}

// APIError is a machine-readable code with a human message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// startKey stores the handler start time for query_time_ms.
type startKey struct{}

// withStart records the request start time on the context.
func withStart(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), startKey{}, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newMetadata(r *http.Request) Metadata {
	md := Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
	if start, ok := r.Context().Value(startKey{}).(time.Time); ok {
		md.QueryTimeMS = time.Since(start).Milliseconds()
	}
	return md
}

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *APIResponse) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondOK sends data in a success envelope.
func respondOK(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, status, &APIResponse{
		Status:   statusSuccess,
		Data:     data,
		Metadata: newMetadata(r),
	})
}

// respondError sends an error envelope. Its signature matches
// auth.ErrorWriter so the auth and authz middleware share the format.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, status, &APIResponse{
		Status:   statusError,
		Metadata: newMetadata(r),
		Error:    &APIError{Code: code, Message: message},
	})
}

// respondValidation sends a 400 with the validator's field details.
func respondValidation(w http.ResponseWriter, r *http.Request, apiErr *validation.APIError) {
	respondJSON(w, http.StatusBadRequest, &APIResponse{
		Status:   statusError,
		Metadata: newMetadata(r),
		Error:    &APIError{Code: apiErr.Code, Message: apiErr.Message, Details: apiErr.Details},
	})
}

// respondServiceError maps a storage or engine error to a status code and
// logs unexpected failures.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case errors.Is(err, database.ErrUserExists):
		respondError(w, r, http.StatusConflict, "CONFLICT", "Username already taken")
	case database.IsBreakerOpen(err):
		logging.Ctx(r.Context()).Warn().Str("operation", op).Msg("Request rejected by open circuit breaker")
		w.Header().Set("Retry-After", "30")
		respondError(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
	case errors.Is(err, context.Canceled):
		logging.Ctx(r.Context()).Debug().Str("operation", op).Msg("Client went away")
	default:
		logging.Ctx(r.Context()).Error().
			Str("operation", op).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// decodeJSON reads a JSON body into dst. It rejects unknown fields and
// trailing data.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes.
func validateRequest(v interface{}) *validation.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}
	return validationErr.ToAPIError()
}

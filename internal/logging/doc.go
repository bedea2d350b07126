// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

// Package logging provides centralized zerolog-based logging for Recetario.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Msg("Server starting")
//	logging.Error().Err(err).Msg("Operation failed")
//
//	// Component loggers
//	logger := logging.WithComponent("database")
//
//	// Context fields (request_id, correlation_id, user_id)
//	logging.Ctx(ctx).Info().Int("recipe_id", id).Msg("Like toggled")
//
// # Integrations
//
// NewSlogLogger adapts zerolog to log/slog for sutureslog. SecurityLogger
// records authentication and authorization events with usernames masked.
//
// Always terminate log chains with .Msg() or .Send().
package logging

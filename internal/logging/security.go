// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package logging

import (
	"strconv"

	"github.com/rs/zerolog"
)

// Security event names.
const (
	EventRegister       = "register"
	EventLoginSuccess   = "login_success"
	EventLoginFailure   = "login_failure"
	EventLoginThrottled = "login_throttled"
	EventAccessDenied   = "access_denied"
)

// SecurityEvent represents a security-relevant event for audit logging.
type SecurityEvent struct {
	Event     string
	UserID    int
	Username  string
	Role      string
	IPAddress string
	Path      string
	Success   bool
	Reason    string
}

// SecurityLogger writes authentication and authorization events with
// usernames masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger on a custom logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogEvent logs a security event. Failures log at warn level.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	var e *zerolog.Event
	status := "success"
	if event.Success {
		e = l.logger.Info()
	} else {
		e = l.logger.Warn()
		status = "failed"
	}

	e = e.Str("event", event.Event).Str("status", status)
	if event.UserID > 0 {
		e = e.Str("user_id", strconv.Itoa(event.UserID))
	}
	if event.Username != "" {
		e = e.Str("username", SanitizeUsername(event.Username))
	}
	if event.Role != "" {
		e = e.Str("role", event.Role)
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.Path != "" {
		e = e.Str("path", event.Path)
	}
	if event.Reason != "" {
		e = e.Str("reason", truncateString(event.Reason, 200))
	}
	e.Msg("security event")
}

// LogRegister logs a new account.
func (l *SecurityLogger) LogRegister(userID int, username, ip string) {
	l.LogEvent(&SecurityEvent{Event: EventRegister, UserID: userID, Username: username, IPAddress: ip, Success: true})
}

// LogLoginSuccess logs a successful login.
func (l *SecurityLogger) LogLoginSuccess(userID int, username, ip string) {
	l.LogEvent(&SecurityEvent{Event: EventLoginSuccess, UserID: userID, Username: username, IPAddress: ip, Success: true})
}

// LogLoginFailure logs a rejected login.
func (l *SecurityLogger) LogLoginFailure(username, ip, reason string) {
	l.LogEvent(&SecurityEvent{Event: EventLoginFailure, Username: username, IPAddress: ip, Reason: reason})
}

// LogLoginThrottled logs a login refused by the per-username limiter.
func (l *SecurityLogger) LogLoginThrottled(username, ip string) {
	l.LogEvent(&SecurityEvent{Event: EventLoginThrottled, Username: username, IPAddress: ip, Reason: "too many attempts"})
}

// LogAccessDenied logs a request rejected by the role policy.
func (l *SecurityLogger) LogAccessDenied(userID int, role, path string) {
	l.LogEvent(&SecurityEvent{Event: EventAccessDenied, UserID: userID, Role: role, Path: path})
}

// SanitizeToken masks a token, showing only the first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeUsername masks a username, keeping the first 2 characters.
// Example: "maria" -> "ma***"
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}
	runes := []rune(username)
	if len(runes) <= 2 {
		return "***"
	}
	return string(runes[:2]) + "***"
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSecurityLogger_LoginFailureMasksUsername(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewSecurityLoggerWithLogger(zerolog.New(&buf))
	l.LogLoginFailure("mariana", "10.0.0.1", "invalid credentials")

	out := buf.String()
	if strings.Contains(out, "mariana") {
		t.Errorf("username should be masked: %s", out)
	}
	for _, want := range []string{
		`"username":"ma***"`,
		`"event":"login_failure"`,
		`"status":"failed"`,
		`"level":"warn"`,
		`"component":"auth"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSecurityLogger_AccessDenied(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewSecurityLoggerWithLogger(zerolog.New(&buf))
	l.LogAccessDenied(3, "admin", "/api/v1/recommendations/smart")

	out := buf.String()
	for _, want := range []string{`"user_id":"3"`, `"role":"admin"`, `"event":"access_denied"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"empty token", SanitizeToken, "", ""},
		{"short token", SanitizeToken, "abc", "***"},
		{"long token", SanitizeToken, "eyJhbGciOiJIUzI1NiJ9.payload", "eyJh...load"},
		{"empty username", SanitizeUsername, "", ""},
		{"short username", SanitizeUsername, "jo", "***"},
		{"accented username", SanitizeUsername, "íñigo", "íñ***"},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

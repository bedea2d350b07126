// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PasswordPolicy defines requirements for account passwords.
type PasswordPolicy struct {
	// MinLength is the minimum password length in characters.
	MinLength int

	// MaxLength caps the length; bcrypt ignores bytes past 72.
	MaxLength int

	// RequireLetter requires at least one letter.
	RequireLetter bool

	// RequireDigit requires at least one digit.
	RequireDigit bool

	// MaxConsecutiveRepeats is the maximum allowed run of one character (0 = disabled).
	MaxConsecutiveRepeats int

	// ForbidCommonPasswords blocks well-known breached passwords.
	ForbidCommonPasswords bool

	// ForbidUsernameSimilarity rejects passwords containing the username.
	ForbidUsernameSimilarity bool
}

// DefaultPasswordPolicy returns the policy applied at registration.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:                8,
		MaxLength:                72,
		RequireLetter:            true,
		RequireDigit:             true,
		MaxConsecutiveRepeats:    4,
		ForbidCommonPasswords:    true,
		ForbidUsernameSimilarity: true,
	}
}

// Validate returns every rule the password breaks. An empty slice means
// the password is acceptable.
func (p PasswordPolicy) Validate(password, username string) []string {
	var problems []string

	length := utf8.RuneCountInString(password)
	if length < p.MinLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", p.MinLength))
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		problems = append(problems, fmt.Sprintf("password must be at most %d bytes", p.MaxLength))
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if p.RequireLetter && !hasLetter {
		problems = append(problems, "password must contain a letter")
	}
	if p.RequireDigit && !hasDigit {
		problems = append(problems, "password must contain a digit")
	}

	if p.MaxConsecutiveRepeats > 0 && longestRun(password) > p.MaxConsecutiveRepeats {
		problems = append(problems,
			fmt.Sprintf("password cannot repeat a character more than %d times in a row", p.MaxConsecutiveRepeats))
	}
	if p.ForbidCommonPasswords && commonPasswords[strings.ToLower(password)] {
		problems = append(problems, "password is too common")
	}
	if p.ForbidUsernameSimilarity && username != "" &&
		strings.Contains(strings.ToLower(password), strings.ToLower(username)) {
		problems = append(problems, "password cannot contain the username")
	}
	return problems
}

// ValidateWithError returns the joined problems as an error, or nil.
func (p PasswordPolicy) ValidateWithError(password, username string) error {
	if problems := p.Validate(password, username); len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// longestRun returns the longest run of one repeated rune.
func longestRun(s string) int {
	longest, current := 0, 0
	var last rune
	for i, r := range []rune(s) {
		if i > 0 && r == last {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
		last = r
	}
	return longest
}

var commonPasswords = map[string]bool{
	"123456": true, "12345678": true, "123456789": true, "1234567890": true,
	"password": true, "password1": true, "password123": true, "passw0rd": true,
	"qwerty123": true, "abc12345": true, "abcd1234": true, "1q2w3e4r": true,
	"iloveyou1": true, "welcome1": true, "letmein1": true, "admin123": true,
	"contraseña1": true, "contrasena1": true, "receta123": true, "recetas123": true,
	"cocina123": true, "recetario1": true, "recetario123": true,
}

// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package validation

import (
	"strings"
	"testing"
)

func TestGetValidator_Singleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() should not return nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same singleton instance")
	}
}

type registerInput struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type filterInput struct {
	Difficulty string `json:"difficulty" validate:"difficulty"`
	Sort       string `json:"sort" validate:"recipesort"`
	Page       int    `json:"page" validate:"min=0"`
}

type preferencesInput struct {
	TagIDs []int `json:"favorite_tag_ids" validate:"max=16,unique,dive,gt=0"`
}

func TestValidateStruct_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     registerInput
		wantField string
		wantMsg   string
	}{
		{name: "valid", input: registerInput{Username: "maria_g", Password: "paella2024"}},
		{name: "missing username", input: registerInput{Password: "paella2024"}, wantField: "username", wantMsg: "username is required"},
		{name: "short username", input: registerInput{Username: "ab", Password: "paella2024"}, wantField: "username", wantMsg: "at least 3 characters"},
		{name: "bad characters", input: registerInput{Username: "maría g", Password: "paella2024"}, wantField: "username", wantMsg: "may only contain"},
		{name: "short password", input: registerInput{Username: "maria", Password: "abc"}, wantField: "password", wantMsg: "at least 8 characters"},
		{name: "long password", input: registerInput{Username: "maria", Password: strings.Repeat("a", 73)}, wantField: "password", wantMsg: "at most 72 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := err.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("field = %q, want %q", got, tt.wantField)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStruct_CustomValidators(t *testing.T) {
	valid := []filterInput{
		{},
		{Difficulty: "facil", Sort: "likes", Page: 2},
		{Difficulty: "intermedio", Sort: "recent"},
		{Difficulty: "dificil"},
	}
	for _, in := range valid {
		if err := ValidateStruct(&in); err != nil {
			t.Errorf("ValidateStruct(%+v) = %v", in, err)
		}
	}

	err := ValidateStruct(&filterInput{Difficulty: "extrema", Sort: "oldest"})
	if err == nil {
		t.Fatal("invalid filter accepted")
	}
	if len(err.Errors()) != 2 {
		t.Fatalf("errors = %v, want 2", err.Errors())
	}
	if err.Errors()[0].Tag() != "difficulty" || err.Errors()[1].Tag() != "recipesort" {
		t.Errorf("tags = %q, %q", err.Errors()[0].Tag(), err.Errors()[1].Tag())
	}
}

func TestValidateStruct_Slices(t *testing.T) {
	if err := ValidateStruct(&preferencesInput{TagIDs: []int{1, 2, 3}}); err != nil {
		t.Errorf("valid ids rejected: %v", err)
	}
	if err := ValidateStruct(&preferencesInput{TagIDs: []int{1, 1}}); err == nil {
		t.Error("duplicate ids accepted")
	}
	if err := ValidateStruct(&preferencesInput{TagIDs: []int{1, -2}}); err == nil {
		t.Error("negative id accepted")
	}
}

func TestRequestValidationError_ToAPIError(t *testing.T) {
	single := ValidateStruct(&registerInput{Username: "maria"})
	if single == nil {
		t.Fatal("expected error")
	}
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q", apiErr.Code)
	}
	if apiErr.Details["field"] != "password" {
		t.Errorf("details = %v", apiErr.Details)
	}

	multi := ValidateStruct(&registerInput{})
	if multi == nil {
		t.Fatal("expected error")
	}
	apiErr = multi.ToAPIError()
	if !strings.Contains(apiErr.Message, "username:") || !strings.Contains(apiErr.Message, "password:") {
		t.Errorf("message = %q", apiErr.Message)
	}
	if fields, ok := apiErr.Details["fields"].([]map[string]interface{}); !ok || len(fields) != 2 {
		t.Errorf("details fields = %v", apiErr.Details["fields"])
	}

	empty := &RequestValidationError{}
	if empty.Error() != "validation failed" || empty.ToAPIError().Message != "Validation failed" {
		t.Error("empty error formatting changed")
	}
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ministryfinder/internal/platform/apperr"
	"github.com/taibuivan/ministryfinder/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "Bible Study", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "office@stmary.org", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"display_name_form", "Bob Smith <bob@example.com>", false},
		{"angle_brackets", "<bob@example.com>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Phone accepts national and international formats.
*/
func TestValidator_Phone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		isValid bool
	}{
		{"national_us", "(312) 555-0142", true},
		{"e164", "+13125550142", true},
		{"too_short", "555", false},
		{"letters", "call me", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Phone("phone", tt.phone)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Date accepts plain dates, RFC 3339 timestamps and local
date-times such as those sent by datetime-local form inputs.
*/
func TestValidator_Date(t *testing.T) {
	tests := []struct {
		value   string
		isValid bool
	}{
		{"2026-09-01", true},
		{"2026-09-01T18:30:00Z", true},
		{"2026-09-01T18:30:00-05:00", true},
		{"2026-09-01T18:30:00.000Z", true},
		{"2026-09-01T18:30:00", true},
		{"2026-09-01T18:30:00.250", true},
		{"2026-09-01T18:30", true},
		{"2026-09-01T18", false},
		{"09/01/2026", false},
		{"next tuesday", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			v := &validate.Validator{}
			v.Date("startDate", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Object only accepts JSON objects.
*/
func TestValidator_Object(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		isValid bool
	}{
		{"object", `{"weekly":{"day":"Tuesday","time":"19:00"}}`, true},
		{"empty_object", ` {} `, true},
		{"array", `[]`, false},
		{"null", `null`, false},
		{"string", `"weekly"`, false},
		{"absent", ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Object("schedule", json.RawMessage(tt.raw))
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("name", "").             // Fails
		MaxLen("description", "abcd", 3). // Fails
		Min("maxParticipants", 0, 1).     // Fails
		Email("contactEmail", "ok@example.com").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/ministryfinder/internal/platform/validate"
	"github.com/taibuivan/ministryfinder/pkg/pointer"
)

// Field limits.
const (
	MaxNameLength        = 200
	MaxDescriptionLength = 1000
)

/*
Input is the inbound JSON body for creating or replacing a ministry.

Pointer and nil-slice fields distinguish "absent" from zero values so
defaults only apply to keys the client omitted.
*/
type Input struct {
	ParishID             *string         `json:"parishId"`
	Name                 *string         `json:"name"`
	Description          *string         `json:"description"`
	Type                 *string         `json:"type"`
	AgeGroups            []string        `json:"ageGroups"`
	Languages            []string        `json:"languages"`
	Schedule             json.RawMessage `json:"schedule"`
	StartDate            *string         `json:"startDate"`
	EndDate              *string         `json:"endDate"`
	IsOngoing            *bool           `json:"isOngoing"`
	ContactName          *string         `json:"contactName"`
	ContactPhone         *string         `json:"contactPhone"`
	ContactEmail         *string         `json:"contactEmail"`
	RequiresRegistration *bool           `json:"requiresRegistration"`
	RegistrationDeadline *string         `json:"registrationDeadline"`
	MaxParticipants      *int            `json:"maxParticipants"`
	CurrentParticipants  *int            `json:"currentParticipants"`
	IsAccessible         *bool           `json:"isAccessible"`
	Requirements         []string        `json:"requirements"`
	Materials            []string        `json:"materials"`
	Cost                 *string         `json:"cost"`
	IsActive             *bool           `json:"isActive"`
	IsPublic             *bool           `json:"isPublic"`
}

/*
ValidateInput checks every field of in and builds the ministry to persist.

Description: All violations are collected into one VALIDATION_ERROR. On
failure no ministry is returned and no defaults are applied. The parish id
is only checked for presence; its existence is left to storage.

Parameters:
  - in: Input

Returns:
  - *Ministry: Trimmed, defaulted record (without ID)
  - error: *apperr.AppError with per-field details
*/
func ValidateInput(in Input) (*Ministry, error) {
	validator := &validate.Validator{}

	name := strings.TrimSpace(pointer.Val(in.Name))
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)

	if in.Description != nil {
		validator.MaxLen(FieldDescription, *in.Description, MaxDescriptionLength)
	}

	// Category
	ministryType := Type(strings.TrimSpace(pointer.Val(in.Type)))
	if ministryType == "" {
		validator.Required(FieldType, "")
	} else {
		validator.Custom(FieldType, !ministryType.IsValid(), fmt.Sprintf("Invalid ministry type: %s", ministryType))
	}

	// Audience
	validator.Custom(FieldAgeGroups, in.AgeGroups == nil, "This field is required")
	ageGroups := make([]AgeGroup, 0, len(in.AgeGroups))
	for _, raw := range in.AgeGroups {
		group := AgeGroup(raw)
		validator.Custom(FieldAgeGroups, !group.IsValid(), fmt.Sprintf("Invalid age group: %s", raw))
		ageGroups = append(ageGroups, group)
	}

	validator.Custom(FieldLanguages, in.Languages == nil, "This field is required")
	validator.Object(FieldSchedule, in.Schedule)

	// Dates
	startDate := optionalDate(validator, FieldStartDate, in.StartDate)
	endDate := optionalDate(validator, FieldEndDate, in.EndDate)
	deadline := optionalDate(validator, FieldRegistrationDeadline, in.RegistrationDeadline)

	// Participation
	if in.MaxParticipants != nil {
		validator.Min(FieldMaxParticipants, *in.MaxParticipants, 1)
	}
	if in.CurrentParticipants != nil {
		validator.Min(FieldCurrentParticipants, *in.CurrentParticipants, 0)
	}

	// Contact; an empty email is allowed
	contactEmail := trimmedOptional(in.ContactEmail)
	if contactEmail != nil {
		validator.Email(FieldContactEmail, *contactEmail)
	}

	validator.Required(FieldParishID, pointer.Val(in.ParishID))

	if err := validator.Err(); err != nil {
		return nil, err
	}

	var schedule Schedule
	if err := json.Unmarshal(in.Schedule, &schedule); err != nil {
		return nil, validate.RequiredError(FieldSchedule, "Must be an object")
	}

	return &Ministry{
		ParishID:             strings.TrimSpace(*in.ParishID),
		Name:                 name,
		Description:          in.Description,
		Type:                 ministryType,
		AgeGroups:            ageGroups,
		Languages:            cleanList(in.Languages),
		Schedule:             schedule,
		StartDate:            startDate,
		EndDate:              endDate,
		IsOngoing:            pointer.Fallback(in.IsOngoing, true),
		ContactName:          in.ContactName,
		ContactPhone:         in.ContactPhone,
		ContactEmail:         contactEmail,
		RequiresRegistration: pointer.Fallback(in.RequiresRegistration, false),
		RegistrationDeadline: deadline,
		MaxParticipants:      in.MaxParticipants,
		CurrentParticipants:  in.CurrentParticipants,
		IsAccessible:         pointer.Fallback(in.IsAccessible, true),
		Requirements:         cleanList(in.Requirements),
		Materials:            cleanList(in.Materials),
		Cost:                 in.Cost,
		IsActive:             pointer.Fallback(in.IsActive, true),
		IsPublic:             pointer.Fallback(in.IsPublic, true),
	}, nil
}

// ValidateFilter rejects unknown enum values before they reach the builder.
func ValidateFilter(f Filter) error {
	validator := &validate.Validator{}

	if f.Type != "" {
		validator.Custom(FieldType, !f.Type.IsValid(), fmt.Sprintf("Invalid ministry type: %s", f.Type))
	}

	for _, group := range f.AgeGroups {
		validator.Custom(FieldAgeGroups, !group.IsValid(), fmt.Sprintf("Invalid age group: %s", group))
	}

	return validator.Err()
}

// optionalDate validates and parses a date field that may be absent or empty.
func optionalDate(validator *validate.Validator, field string, raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}

	validator.Date(field, *raw)
	parsed, err := validate.ParseDate(*raw)
	if err != nil {
		return nil
	}
	return &parsed
}

// cleanList trims entries, drops blanks and never returns nil.
func cleanList(values []string) []string {
	cleaned := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return cleaned
}

// trimmedOptional trims value and maps blanks to nil.
func trimmedOptional(value *string) *string {
	if text := strings.TrimSpace(pointer.Val(value)); text != "" {
		return &text
	}
	return nil
}

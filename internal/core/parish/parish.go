// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package parish manages the parishes that host ministries.

A parish belongs to exactly one diocese and is identified for seeding and
de-duplication by its (name, city, state) triple. Deleting a parish removes
its ministries.
*/
package parish

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/platform/validate"
	"github.com/taibuivan/ministryfinder/pkg/pointer"
)

// # Core Entities

// Parish is a single church location.
type Parish struct {
	ID        string  `json:"id"`
	DioceseID string  `json:"dioceseId"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Website   *string `json:"website"`
	Pastor    *string `json:"pastor"`

	// MassSchedule is stored as received; only its object shape is checked.
	MassSchedule json.RawMessage `json:"massSchedule"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Joined on single-parish reads.
	Diocese    *ministry.DioceseSummary `json:"diocese,omitempty"`
	Ministries []*ministry.Ministry     `json:"ministries,omitempty"`
}

// Filter narrows parish listings. Empty fields are ignored.
type Filter struct {
	DioceseID string
	City      string
	State     string

	// Search is a case-insensitive substring of name or city.
	Search string

	// Location is a case-insensitive substring of city, state or zip.
	Location string
}

// # Field Identifiers

const (
	FieldDioceseID    = "dioceseId"
	FieldName         = "name"
	FieldAddress      = "address"
	FieldCity         = "city"
	FieldState        = "state"
	FieldZip          = "zip"
	FieldLatitude     = "latitude"
	FieldLongitude    = "longitude"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldMassSchedule = "massSchedule"
)

// MaxNameLength bounds parish names.
const MaxNameLength = 200

var (
	stateCode = regexp.MustCompile(`^[A-Za-z]{2}$`)
	zipCode   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// # Validation

// Input is the inbound JSON body for creating or replacing a parish.
type Input struct {
	DioceseID    *string         `json:"dioceseId"`
	Name         *string         `json:"name"`
	Address      *string         `json:"address"`
	City         *string         `json:"city"`
	State        *string         `json:"state"`
	Zip          *string         `json:"zip"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Phone        *string         `json:"phone"`
	Email        *string         `json:"email"`
	Website      *string         `json:"website"`
	Pastor       *string         `json:"pastor"`
	MassSchedule json.RawMessage `json:"massSchedule"`
}

/*
ValidateInput checks in and builds the parish to persist.

Description: Collects every violation into one VALIDATION_ERROR. Text
fields are trimmed and the state code is upper-cased. Coordinates default
to 0 when omitted.
*/
func ValidateInput(in Input) (*Parish, error) {
	validator := &validate.Validator{}

	name := trimmed(in.Name)
	address := trimmed(in.Address)
	city := trimmed(in.City)
	state := strings.ToUpper(trimmed(in.State))
	zip := trimmed(in.Zip)

	validator.Required(FieldDioceseID, trimmed(in.DioceseID))
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLength)
	validator.Required(FieldAddress, address)
	validator.Required(FieldCity, city)

	if state == "" {
		validator.Required(FieldState, state)
	} else {
		validator.Custom(FieldState, !stateCode.MatchString(state), "Must be a two-letter state code")
	}

	if zip == "" {
		validator.Required(FieldZip, zip)
	} else {
		validator.Custom(FieldZip, !zipCode.MatchString(zip), "Must be a 5-digit ZIP or ZIP+4")
	}

	// Coordinates
	if in.Latitude != nil {
		validator.FloatRange(FieldLatitude, *in.Latitude, -90, 90)
	}
	if in.Longitude != nil {
		validator.FloatRange(FieldLongitude, *in.Longitude, -180, 180)
	}

	// Contact
	if phone := trimmed(in.Phone); phone != "" {
		validator.Phone(FieldPhone, phone)
	}
	if email := trimmed(in.Email); email != "" {
		validator.Email(FieldEmail, email)
	}

	massSchedule := normalizeSchedule(in.MassSchedule)
	if massSchedule != nil {
		validator.Object(FieldMassSchedule, massSchedule)
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &Parish{
		DioceseID:    trimmed(in.DioceseID),
		Name:         name,
		Address:      address,
		City:         city,
		State:        state,
		Zip:          zip,
		Latitude:     pointer.Val(in.Latitude),
		Longitude:    pointer.Val(in.Longitude),
		Phone:        optional(in.Phone),
		Email:        optional(in.Email),
		Website:      optional(in.Website),
		Pastor:       optional(in.Pastor),
		MassSchedule: massSchedule,
	}, nil
}

func trimmed(value *string) string {
	return strings.TrimSpace(pointer.Val(value))
}

// optional trims value and maps blanks to nil.
func optional(value *string) *string {
	if text := trimmed(value); text != "" {
		return &text
	}
	return nil
}

// normalizeSchedule maps an absent or null schedule to nil.
func normalizeSchedule(raw json.RawMessage) json.RawMessage {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil
	}
	return json.RawMessage(text)
}

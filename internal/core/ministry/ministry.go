// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ministry defines the core domain of the directory: parish ministries.

It owns the ministry record, the filter builder that selects which ministries
a visitor may see, the write-time validators, and the relevance ordering
used by every listing.

Core Responsibility:

  - Catalogue: Enumerates ministry types and age groups.
  - Discovery: Turns list/search parameters into a composable [Predicate].
  - Integrity: Guarantees unique ministry names within a parish.

Writes run through [Service], which validates fields, checks uniqueness and
only then touches storage.
*/
package ministry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// # Domain Enums

// Type is the fixed category of a ministry.
type Type string

const (
	TypeAdultFaithFormation  Type = "ADULT_FAITH_FORMATION"
	TypeAltarServers         Type = "ALTAR_SERVERS"
	TypeBereavement          Type = "BEREAVEMENT"
	TypeBibleStudy           Type = "BIBLE_STUDY"
	TypeChildrensMinistry    Type = "CHILDRENS_MINISTRY"
	TypeChoirMusic           Type = "CHOIR_MUSIC"
	TypeConfirmationPrep     Type = "CONFIRMATION_PREP"
	TypeDivorcedSeparated    Type = "DIVORCED_SEPARATED"
	TypeEucharisticAdoration Type = "EUCHARISTIC_ADORATION"
	TypeEucharisticMinisters Type = "EUCHARISTIC_MINISTERS"
	TypeEvangelization       Type = "EVANGELIZATION"
	TypeFamilyMinistry       Type = "FAMILY_MINISTRY"
	TypeFoodPantry           Type = "FOOD_PANTRY"
	TypeHealthMinistry       Type = "HEALTH_MINISTRY"
	TypeHomelessOutreach     Type = "HOMELESS_OUTREACH"
	TypeHospitality          Type = "HOSPITALITY"
	TypeLectors              Type = "LECTORS"
	TypeMarriagePrep         Type = "MARRIAGE_PREP"
	TypeMensGroup            Type = "MENS_GROUP"
	TypeMissions             Type = "MISSIONS"
	TypePrayerGroup          Type = "PRAYER_GROUP"
	TypePrisonMinistry       Type = "PRISON_MINISTRY"
	TypeProLife              Type = "PRO_LIFE"
	TypeRCIA                 Type = "RCIA"
	TypeRetreats             Type = "RETREATS"
	TypeSacramentalPrep      Type = "SACRAMENTAL_PREP"
	TypeSeniorsMinistry      Type = "SENIORS_MINISTRY"
	TypeSocialJustice        Type = "SOCIAL_JUSTICE"
	TypeSupportGroup         Type = "SUPPORT_GROUP"
	TypeUshers               Type = "USHERS"
	TypeWomensGroup          Type = "WOMENS_GROUP"
	TypeYoungAdults          Type = "YOUNG_ADULTS"
	TypeYouthMinistry        Type = "YOUTH_MINISTRY"
	TypeOther                Type = "OTHER"

	// TypeTest marks fixture records. It is accepted on write like any other type.
	TypeTest Type = "TEST"
)

// AllTypes lists every [Type] in display order.
var AllTypes = []Type{
	TypeAdultFaithFormation, TypeAltarServers, TypeBereavement, TypeBibleStudy,
	TypeChildrensMinistry, TypeChoirMusic, TypeConfirmationPrep, TypeDivorcedSeparated,
	TypeEucharisticAdoration, TypeEucharisticMinisters, TypeEvangelization, TypeFamilyMinistry,
	TypeFoodPantry, TypeHealthMinistry, TypeHomelessOutreach, TypeHospitality,
	TypeLectors, TypeMarriagePrep, TypeMensGroup, TypeMissions,
	TypePrayerGroup, TypePrisonMinistry, TypeProLife, TypeRCIA,
	TypeRetreats, TypeSacramentalPrep, TypeSeniorsMinistry, TypeSocialJustice,
	TypeSupportGroup, TypeUshers, TypeWomensGroup, TypeYoungAdults,
	TypeYouthMinistry, TypeOther, TypeTest,
}

var validTypes = func() map[Type]struct{} {
	set := make(map[Type]struct{}, len(AllTypes))
	for _, t := range AllTypes {
		set[t] = struct{}{}
	}
	return set
}()

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	_, ok := validTypes[t]
	return ok
}

// AgeGroup is an audience bracket. A ministry may serve several.
type AgeGroup string

const (
	AgeGroupChildren    AgeGroup = "CHILDREN"
	AgeGroupTeenagers   AgeGroup = "TEENAGERS"
	AgeGroupYoungAdults AgeGroup = "YOUNG_ADULTS"
	AgeGroupAdults      AgeGroup = "ADULTS"
	AgeGroupSeniors     AgeGroup = "SENIORS"
	AgeGroupFamilies    AgeGroup = "FAMILIES"
	AgeGroupAllAges     AgeGroup = "ALL_AGES"
)

// AllAgeGroups lists every [AgeGroup] in display order.
var AllAgeGroups = []AgeGroup{
	AgeGroupChildren,
	AgeGroupTeenagers,
	AgeGroupYoungAdults,
	AgeGroupAdults,
	AgeGroupSeniors,
	AgeGroupFamilies,
	AgeGroupAllAges,
}

// IsValid reports whether g is a recognised [AgeGroup] value.
func (g AgeGroup) IsValid() bool {
	switch g {
	case
		AgeGroupChildren,
		AgeGroupTeenagers,
		AgeGroupYoungAdults,
		AgeGroupAdults,
		AgeGroupSeniors,
		AgeGroupFamilies,
		AgeGroupAllAges:
		return true
	}
	return false
}

// # Schedule

// ScheduleKind identifies which variant of [Schedule] is populated.
type ScheduleKind string

const (
	ScheduleWeekly       ScheduleKind = "weekly"
	ScheduleMonthly      ScheduleKind = "monthly"
	ScheduleDescription  ScheduleKind = "description"
	ScheduleUnstructured ScheduleKind = "unstructured"
)

// Recurrence is the {day, time} pair used by weekly and monthly schedules.
// Either field may be empty.
type Recurrence struct {
	Day  string `json:"day,omitempty"`
	Time string `json:"time,omitempty"`
}

/*
Schedule is the meeting pattern of a ministry.

Clients send any JSON object. Known shapes (weekly, monthly, description) are
lifted into typed fields; anything else is kept as [ScheduleUnstructured].
The original object is always preserved in Raw and is what gets stored and
returned, so unknown keys survive a round trip.
*/
type Schedule struct {
	Kind        ScheduleKind
	Weekly      *Recurrence
	Monthly     *Recurrence
	Description string
	Raw         json.RawMessage
}

// UnmarshalJSON classifies a schedule object. Non-object input is an error.
func (s *Schedule) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = Schedule{}
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("ministry: schedule must be a JSON object")
	}

	var probe struct {
		Weekly      *Recurrence `json:"weekly"`
		Monthly     *Recurrence `json:"monthly"`
		Description string      `json:"description"`
	}

	// Sub-shapes of the wrong type degrade to unstructured rather than failing.
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		probe.Weekly, probe.Monthly, probe.Description = nil, nil, ""
		if !json.Valid(trimmed) {
			return err
		}
	}

	*s = Schedule{
		Weekly:      probe.Weekly,
		Monthly:     probe.Monthly,
		Description: strings.TrimSpace(probe.Description),
		Raw:         append(json.RawMessage(nil), trimmed...),
	}

	switch {
	case s.Weekly != nil:
		s.Kind = ScheduleWeekly
	case s.Monthly != nil:
		s.Kind = ScheduleMonthly
	case s.Description != "":
		s.Kind = ScheduleDescription
	default:
		s.Kind = ScheduleUnstructured
	}
	return nil
}

// MarshalJSON writes the schedule exactly as it was received.
func (s Schedule) MarshalJSON() ([]byte, error) {
	if len(s.Raw) == 0 {
		return []byte("{}"), nil
	}
	return s.Raw, nil
}

// Summary renders a short human-readable line, or "" when nothing is known.
func (s Schedule) Summary() string {
	switch s.Kind {
	case ScheduleWeekly:
		return recurrenceSummary("Weekly", s.Weekly)
	case ScheduleMonthly:
		return recurrenceSummary("Monthly", s.Monthly)
	case ScheduleDescription:
		return s.Description
	}
	return ""
}

func recurrenceSummary(prefix string, recurrence *Recurrence) string {
	summary := prefix
	if recurrence.Day != "" {
		summary += " on " + recurrence.Day
	}
	if recurrence.Time != "" {
		summary += " at " + recurrence.Time
	}
	return summary
}

// # Core Entities

// Ministry is a single program run by a parish.
type Ministry struct {
	ID          string     `json:"id"`
	ParishID    string     `json:"parishId"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Type        Type       `json:"type"`
	AgeGroups   []AgeGroup `json:"ageGroups"`
	Languages   []string   `json:"languages"`
	Schedule    Schedule   `json:"schedule"`

	// # Timing
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsOngoing bool       `json:"isOngoing"`

	// # Contact
	ContactName  *string `json:"contactName"`
	ContactPhone *string `json:"contactPhone"`
	ContactEmail *string `json:"contactEmail"`

	// # Participation
	RequiresRegistration bool       `json:"requiresRegistration"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	MaxParticipants      *int       `json:"maxParticipants"`
	CurrentParticipants  *int       `json:"currentParticipants"`
	IsAccessible         bool       `json:"isAccessible"`
	Requirements         []string   `json:"requirements"`
	Materials            []string   `json:"materials"`
	Cost                 *string    `json:"cost"`

	// # Visibility
	IsActive bool `json:"isActive"`
	IsPublic bool `json:"isPublic"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Parish is joined on reads. Nil on records that were never loaded from storage.
	Parish *ParishSummary `json:"parish,omitempty"`
}

// ParishSummary is the parish projection joined onto a ministry.
type ParishSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Zip       string  `json:"zip"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Phone     *string `json:"phone"`
	Website   *string `json:"website"`

	// Diocese is only joined on single-ministry reads.
	Diocese *DioceseSummary `json:"diocese,omitempty"`
}

// DioceseSummary is the diocese projection joined onto a single ministry.
type DioceseSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// # Field Identifiers

// JSON field names used in validation and conflict details.
const (
	FieldName                 = "name"
	FieldDescription          = "description"
	FieldType                 = "type"
	FieldAgeGroups            = "ageGroups"
	FieldLanguages            = "languages"
	FieldSchedule             = "schedule"
	FieldStartDate            = "startDate"
	FieldEndDate              = "endDate"
	FieldRegistrationDeadline = "registrationDeadline"
	FieldMaxParticipants      = "maxParticipants"
	FieldCurrentParticipants  = "currentParticipants"
	FieldContactEmail         = "contactEmail"
	FieldParishID             = "parishId"
)

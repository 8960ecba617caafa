package schema

// MinistryTable represents the 'ministry' table
type MinistryTable struct {
	Table                string
	ID                   string
	ParishID             string
	Name                 string
	Description          string
	Type                 string
	AgeGroups            string
	Languages            string
	Schedule             string
	StartDate            string
	EndDate              string
	IsOngoing            string
	ContactName          string
	ContactPhone         string
	ContactEmail         string
	RequiresRegistration string
	RegistrationDeadline string
	MaxParticipants      string
	CurrentParticipants  string
	IsAccessible         string
	Requirements         string
	Materials            string
	Cost                 string
	IsActive             string
	IsPublic             string
	CreatedAt            string
	UpdatedAt            string

	// NameIndex enforces (parish_id, lower(btrim(name))) uniqueness.
	NameIndex string

	// NameCollation is the ICU root collation names are ordered by. It
	// matches the locale-neutral collator used in memory.
	NameCollation string
}

// Ministry is the schema definition for ministry
var Ministry = MinistryTable{
	Table:                "ministry",
	ID:                   "id",
	ParishID:             "parish_id",
	Name:                 "name",
	Description:          "description",
	Type:                 "type",
	AgeGroups:            "age_groups",
	Languages:            "languages",
	Schedule:             "schedule",
	StartDate:            "start_date",
	EndDate:              "end_date",
	IsOngoing:            "is_ongoing",
	ContactName:          "contact_name",
	ContactPhone:         "contact_phone",
	ContactEmail:         "contact_email",
	RequiresRegistration: "requires_registration",
	RegistrationDeadline: "registration_deadline",
	MaxParticipants:      "max_participants",
	CurrentParticipants:  "current_participants",
	IsAccessible:         "is_accessible",
	Requirements:         "requirements",
	Materials:            "materials",
	Cost:                 "cost",
	IsActive:             "is_active",
	IsPublic:             "is_public",
	CreatedAt:            "created_at",
	UpdatedAt:            "updated_at",
	NameIndex:            "ministry_parish_name_uq",
	NameCollation:        "und-x-icu",
}

func (t MinistryTable) Columns() []string {
	return []string{
		t.ID, t.ParishID, t.Name, t.Description, t.Type, t.AgeGroups, t.Languages, t.Schedule,
		t.StartDate, t.EndDate, t.IsOngoing, t.ContactName, t.ContactPhone, t.ContactEmail,
		t.RequiresRegistration, t.RegistrationDeadline, t.MaxParticipants, t.CurrentParticipants,
		t.IsAccessible, t.Requirements, t.Materials, t.Cost, t.IsActive, t.IsPublic,
		t.CreatedAt, t.UpdatedAt,
	}
}

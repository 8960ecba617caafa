package schema

// ParishTable represents the 'parish' table
type ParishTable struct {
	Table        string
	ID           string
	DioceseID    string
	Name         string
	Address      string
	City         string
	State        string
	Zip          string
	Latitude     string
	Longitude    string
	Phone        string
	Email        string
	Website      string
	Pastor       string
	MassSchedule string
	CreatedAt    string
	UpdatedAt    string

	// IdentityIndex enforces (name, city, state) uniqueness.
	IdentityIndex string
}

// Parish is the schema definition for parish
var Parish = ParishTable{
	Table:         "parish",
	ID:            "id",
	DioceseID:     "diocese_id",
	Name:          "name",
	Address:       "address",
	City:          "city",
	State:         "state",
	Zip:           "zip",
	Latitude:      "latitude",
	Longitude:     "longitude",
	Phone:         "phone",
	Email:         "email",
	Website:       "website",
	Pastor:        "pastor",
	MassSchedule:  "mass_schedule",
	CreatedAt:     "created_at",
	UpdatedAt:     "updated_at",
	IdentityIndex: "parish_identity_uq",
}

func (t ParishTable) Columns() []string {
	return []string{
		t.ID, t.DioceseID, t.Name, t.Address, t.City, t.State, t.Zip, t.Latitude, t.Longitude,
		t.Phone, t.Email, t.Website, t.Pastor, t.MassSchedule, t.CreatedAt, t.UpdatedAt,
	}
}

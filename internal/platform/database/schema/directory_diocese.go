package schema

// DioceseTable represents the 'diocese' table
type DioceseTable struct {
	Table     string
	ID        string
	Name      string
	Location  string
	Website   string
	Phone     string
	Email     string
	CreatedAt string
	UpdatedAt string
}

// Diocese is the schema definition for diocese
var Diocese = DioceseTable{
	Table:     "diocese",
	ID:        "id",
	Name:      "name",
	Location:  "location",
	Website:   "website",
	Phone:     "phone",
	Email:     "email",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t DioceseTable) Columns() []string {
	return []string{t.ID, t.Name, t.Location, t.Website, t.Phone, t.Email, t.CreatedAt, t.UpdatedAt}
}

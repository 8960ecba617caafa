// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ministryfinder/internal/platform/database/schema"
	"github.com/taibuivan/ministryfinder/internal/platform/dberr"
)

const resourceName = "Ministry"

// PostgresRepository implements [Repository] using a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Column Sets

// writableColumns lists the columns written on insert and update, ID first.
func writableColumns() []string {
	t := schema.Ministry
	return []string{
		t.ID, t.ParishID, t.Name, t.Description, t.Type, t.AgeGroups, t.Languages, t.Schedule,
		t.StartDate, t.EndDate, t.IsOngoing, t.ContactName, t.ContactPhone, t.ContactEmail,
		t.RequiresRegistration, t.RegistrationDeadline, t.MaxParticipants, t.CurrentParticipants,
		t.IsAccessible, t.Requirements, t.Materials, t.Cost, t.IsActive, t.IsPublic,
	}
}

// selectColumns is the projection scanned by [scanMinistry].
func selectColumns() string {
	columns := make([]string, 0, 40)
	for _, column := range schema.Ministry.Columns() {
		columns = append(columns, "m."+column)
	}

	p := schema.Parish
	for _, column := range []string{p.ID, p.Name, p.Address, p.City, p.State, p.Zip, p.Latitude, p.Longitude, p.Phone, p.Website} {
		columns = append(columns, "p."+column)
	}
	return strings.Join(columns, ", ")
}

func fromClause() string {
	return fmt.Sprintf("%s m JOIN %s p ON p.%s = m.%s",
		schema.Ministry.Table, schema.Parish.Table, schema.Parish.ID, schema.Ministry.ParishID,
	)
}

// relevanceOrder is the ORDER BY body matching [SortByRelevance]:
// placeholders last, then names under the ICU root collation, then id.
func relevanceOrder(args *Args) string {
	t := schema.Ministry
	rank := PlaceholderPredicate().Render(args)
	return fmt.Sprintf(`CASE WHEN %s THEN 1 ELSE 0 END, m.%s COLLATE "%s" ASC, m.%s ASC`,
		rank, t.Name, t.NameCollation, t.ID)
}

// # Lookups

func (repository *PostgresRepository) List(ctx context.Context, where Predicate, limit, offset int) ([]*Ministry, int, error) {
	args := &Args{}
	whereSQL := where.Render(args)
	countArgs := slices.Clone(args.Values())

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, fromClause(), whereSQL)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_ministries")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s
		LIMIT %s OFFSET %s
	`,
		selectColumns(), fromClause(), whereSQL, relevanceOrder(args),
		args.Add(limit), args.Add(offset),
	)

	rows, err := repository.db.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_ministries")
	}
	defer rows.Close()

	ministries := make([]*Ministry, 0, limit)
	for rows.Next() {
		m, err := scanMinistry(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_ministry")
		}
		ministries = append(ministries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_ministries")
	}

	return ministries, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Ministry, error) {
	d := schema.Diocese
	query := fmt.Sprintf(`
		SELECT %s, d.%s, d.%s, d.%s
		FROM %s JOIN %s d ON d.%s = p.%s
		WHERE m.%s = $1
	`,
		selectColumns(), d.ID, d.Name, d.Location,
		fromClause(), d.Table, d.ID, schema.Parish.DioceseID,
		schema.Ministry.ID,
	)

	diocese := &DioceseSummary{}
	m, err := scanMinistry(repository.db.QueryRow(ctx, query, id), &diocese.ID, &diocese.Name, &diocese.Location)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	m.Parish.Diocese = diocese
	return m, nil
}

func (repository *PostgresRepository) FindConflictingName(ctx context.Context, parishID, normalizedName, excludeID string) (string, error) {
	t := schema.Ministry

	// Same expression as the unique index, so both layers agree on equality.
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s = $1 AND lower(btrim(%s)) = lower($2) AND %s <> $3
		LIMIT 1
	`, t.ID, t.Table, t.ParishID, t.Name, t.ID)

	var id string
	err := repository.db.QueryRow(ctx, query, parishID, normalizedName, excludeID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", dberr.Wrap(err, "find_conflicting_ministry")
	}
	return id, nil
}

func (repository *PostgresRepository) SuggestNames(ctx context.Context, where Predicate, limit int) ([]string, error) {
	args := &Args{}
	query := fmt.Sprintf(`
		SELECT m.%s FROM %s
		WHERE %s
		GROUP BY m.%s
		ORDER BY m.%s ASC
		LIMIT %s
	`,
		schema.Ministry.Name, fromClause(), where.Render(args),
		schema.Ministry.Name, schema.Ministry.Name, args.Add(limit),
	)

	rows, err := repository.db.Query(ctx, query, args.Values()...)
	if err != nil {
		return nil, dberr.Wrap(err, "suggest_ministries")
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "suggest_ministries")
	}
	return names, nil
}

// # Mutations

func (repository *PostgresRepository) Create(ctx context.Context, m *Ministry) error {
	columns := writableColumns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s, %s
	`,
		schema.Ministry.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		schema.Ministry.CreatedAt, schema.Ministry.UpdatedAt,
	)

	values, err := writableValues(m)
	if err != nil {
		return err
	}

	err = repository.db.QueryRow(ctx, query, values...).Scan(&m.CreatedAt, &m.UpdatedAt)
	return translateWriteError(err, m.Name)
}

func (repository *PostgresRepository) Update(ctx context.Context, m *Ministry) error {
	columns := writableColumns()
	assignments := make([]string, 0, len(columns))
	for i, column := range columns[1:] {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, i+2))
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s, %s = NOW()
		WHERE %s = $1
		RETURNING %s, %s
	`,
		schema.Ministry.Table, strings.Join(assignments, ", "), schema.Ministry.UpdatedAt,
		schema.Ministry.ID,
		schema.Ministry.CreatedAt, schema.Ministry.UpdatedAt,
	)

	values, err := writableValues(m)
	if err != nil {
		return err
	}

	err = repository.db.QueryRow(ctx, query, values...).Scan(&m.CreatedAt, &m.UpdatedAt)
	return translateWriteError(err, m.Name)
}

/*
Upsert inserts m, or refreshes the ministry of the same parish whose trimmed,
case-folded name matches. m.ID is replaced with the stored row's id.

Description: Used by the seed loader so repeated runs converge instead of
failing on the name index.
*/
func (repository *PostgresRepository) Upsert(ctx context.Context, m *Ministry) error {
	t := schema.Ministry
	columns := writableColumns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	assignments := make([]string, 0, len(columns))
	for _, column := range columns[2:] {
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		ON CONFLICT (%s, (lower(btrim(%s))))
		DO UPDATE SET %s, %s = NOW()
		RETURNING %s, %s, %s
	`,
		t.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		t.ParishID, t.Name,
		strings.Join(assignments, ", "), t.UpdatedAt,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	values, err := writableValues(m)
	if err != nil {
		return err
	}

	err = repository.db.QueryRow(ctx, query, values...).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	return translateWriteError(err, m.Name)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Ministry.Table, schema.Ministry.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_ministry")
	}

	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName)
	}
	return nil
}

// # Row Mapping

// scanMinistry reads the [selectColumns] projection, followed by extra destinations.
func scanMinistry(row pgx.Row, extra ...any) (*Ministry, error) {
	m := &Ministry{Parish: &ParishSummary{}}
	p := m.Parish

	var (
		ministryType string
		ageGroups    []string
		schedule     []byte
	)

	dest := []any{
		&m.ID, &m.ParishID, &m.Name, &m.Description, &ministryType, &ageGroups, &m.Languages, &schedule,
		&m.StartDate, &m.EndDate, &m.IsOngoing, &m.ContactName, &m.ContactPhone, &m.ContactEmail,
		&m.RequiresRegistration, &m.RegistrationDeadline, &m.MaxParticipants, &m.CurrentParticipants,
		&m.IsAccessible, &m.Requirements, &m.Materials, &m.Cost, &m.IsActive, &m.IsPublic,
		&m.CreatedAt, &m.UpdatedAt,
		&p.ID, &p.Name, &p.Address, &p.City, &p.State, &p.Zip, &p.Latitude, &p.Longitude, &p.Phone, &p.Website,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	m.Type = Type(ministryType)
	m.AgeGroups = make([]AgeGroup, len(ageGroups))
	for i, group := range ageGroups {
		m.AgeGroups[i] = AgeGroup(group)
	}

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &m.Schedule); err != nil {
			return nil, fmt.Errorf("decode schedule: %w", err)
		}
	}

	return m, nil
}

// writableValues returns the arguments for [writableColumns] in order.
func writableValues(m *Ministry) ([]any, error) {
	schedule, err := m.Schedule.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode schedule: %w", err)
	}

	ageGroups := make([]string, len(m.AgeGroups))
	for i, group := range m.AgeGroups {
		ageGroups[i] = string(group)
	}

	return []any{
		m.ID, m.ParishID, m.Name, m.Description, string(m.Type), ageGroups, nonNil(m.Languages), json.RawMessage(schedule),
		m.StartDate, m.EndDate, m.IsOngoing, m.ContactName, m.ContactPhone, m.ContactEmail,
		m.RequiresRegistration, m.RegistrationDeadline, m.MaxParticipants, m.CurrentParticipants,
		m.IsAccessible, nonNil(m.Requirements), nonNil(m.Materials), m.Cost, m.IsActive, m.IsPublic,
	}, nil
}

// translateWriteError maps the name index violation onto the same conflict
// the pre-check produces.
func translateWriteError(err error, name string) error {
	if err == nil {
		return nil
	}

	if dberr.IsUniqueViolation(err) && dberr.Constraint(err) == schema.Ministry.NameIndex {
		return NameConflict(name, err)
	}
	return dberr.Wrap(err, resourceName)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package parish

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/platform/apperr"
	"github.com/taibuivan/ministryfinder/internal/platform/database/schema"
	"github.com/taibuivan/ministryfinder/internal/platform/dberr"
	"github.com/taibuivan/ministryfinder/pkg/query"
)

const resourceName = "Parish"

// PostgresRepository implements [Repository] using a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Lookups

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Parish, int, error) {
	t := schema.Parish
	whereSQL, args := buildWhere(filter)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, t.Table, whereSQL)

	var total int
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_parishes")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s ASC, %s ASC
		LIMIT $%d OFFSET $%d
	`, strings.Join(t.Columns(), ", "), t.Table, whereSQL, t.Name, t.ID, len(args)+1, len(args)+2)

	rows, err := repository.db.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_parishes")
	}
	defer rows.Close()

	parishes := make([]*Parish, 0, limit)
	for rows.Next() {
		p, err := scanParish(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_parish")
		}
		parishes = append(parishes, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_parishes")
	}

	return parishes, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Parish, error) {
	t := schema.Parish
	d := schema.Diocese

	columns := make([]string, 0, len(t.Columns()))
	for _, column := range t.Columns() {
		columns = append(columns, "p."+column)
	}

	query := fmt.Sprintf(`
		SELECT %s, d.%s, d.%s, d.%s
		FROM %s p JOIN %s d ON d.%s = p.%s
		WHERE p.%s = $1
	`,
		strings.Join(columns, ", "), d.ID, d.Name, d.Location,
		t.Table, d.Table, d.ID, t.DioceseID,
		t.ID,
	)

	diocese := &ministry.DioceseSummary{}
	p, err := scanParish(repository.db.QueryRow(ctx, query, id), &diocese.ID, &diocese.Name, &diocese.Location)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	p.Diocese = diocese
	return p, nil
}

func (repository *PostgresRepository) SuggestNames(ctx context.Context, q string, limit int) ([]string, error) {
	t := schema.Parish
	query := fmt.Sprintf(`
		SELECT DISTINCT %s FROM %s
		WHERE %s ILIKE $1
		ORDER BY %s ASC
		LIMIT $2
	`, t.Name, t.Table, t.Name, t.Name)

	return repository.collectStrings(ctx, "suggest_parishes", query, q, limit)
}

func (repository *PostgresRepository) SuggestLocations(ctx context.Context, q string, limit int) ([]string, error) {
	t := schema.Parish
	label := fmt.Sprintf("%s || ', ' || %s", t.City, t.State)
	query := fmt.Sprintf(`
		SELECT DISTINCT %s AS label FROM %s
		WHERE %s ILIKE $1 OR %s ILIKE $1 OR %s ILIKE $1
		ORDER BY label ASC
		LIMIT $2
	`, label, t.Table, t.City, t.State, t.Zip)

	return repository.collectStrings(ctx, "suggest_locations", query, q, limit)
}

func (repository *PostgresRepository) collectStrings(ctx context.Context, op, sql, q string, limit int) ([]string, error) {
	rows, err := repository.db.Query(ctx, sql, query.Substring(q), limit)
	if err != nil {
		return nil, dberr.Wrap(err, op)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, op)
	}
	return values, nil
}

// # Mutations

func (repository *PostgresRepository) Create(ctx context.Context, p *Parish) error {
	t := schema.Parish
	columns := writableColumns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		RETURNING %s, %s
	`, t.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "), t.CreatedAt, t.UpdatedAt)

	err := repository.db.QueryRow(ctx, query, writableValues(p)...).Scan(&p.CreatedAt, &p.UpdatedAt)
	return translateWriteError(err, p)
}

func (repository *PostgresRepository) Update(ctx context.Context, p *Parish) error {
	t := schema.Parish
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
	`, t.Table, strings.Join(assignments, ", "), t.UpdatedAt, t.ID, t.CreatedAt, t.UpdatedAt)

	err := repository.db.QueryRow(ctx, query, writableValues(p)...).Scan(&p.CreatedAt, &p.UpdatedAt)
	return translateWriteError(err, p)
}

// Upsert inserts p, or refreshes the parish sharing its (name, city, state).
// p.ID is replaced with the stored row's id.
func (repository *PostgresRepository) Upsert(ctx context.Context, p *Parish) error {
	t := schema.Parish
	columns := writableColumns()
	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	identity := map[string]bool{t.ID: true, t.Name: true, t.City: true, t.State: true}
	assignments := make([]string, 0, len(columns))
	for _, column := range columns {
		if !identity[column] {
			assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (%s)
		ON CONFLICT (%s, %s, %s)
		DO UPDATE SET %s, %s = NOW()
		RETURNING %s, %s, %s
	`,
		t.Table, strings.Join(columns, ", "), strings.Join(placeholders, ", "),
		t.Name, t.City, t.State,
		strings.Join(assignments, ", "), t.UpdatedAt,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query, writableValues(p)...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translateWriteError(err, p)
}

func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Parish.Table, schema.Parish.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_parish")
	}

	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceName)
	}
	return nil
}

// # Helpers

// buildWhere renders filter as a WHERE body with positional arguments.
func buildWhere(filter Filter) (string, []any) {
	t := schema.Parish
	conditions := []string{"TRUE"}
	var args []any

	add := func(format string, value any) {
		args = append(args, value)
		conditions = append(conditions, strings.ReplaceAll(format, "?", fmt.Sprintf("$%d", len(args))))
	}

	if filter.DioceseID != "" {
		add(t.DioceseID+" = ?", filter.DioceseID)
	}
	if city := strings.TrimSpace(filter.City); city != "" {
		add("lower("+t.City+") = lower(?)", city)
	}
	if state := strings.TrimSpace(filter.State); state != "" {
		add("upper("+t.State+") = upper(?)", state)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		add(fmt.Sprintf("(%s ILIKE ? OR %s ILIKE ?)", t.Name, t.City), query.Substring(search))
	}
	if location := strings.TrimSpace(filter.Location); location != "" {
		add(fmt.Sprintf("(%s ILIKE ? OR %s ILIKE ? OR %s ILIKE ?)", t.City, t.State, t.Zip), query.Substring(location))
	}

	return strings.Join(conditions, " AND "), args
}

// writableColumns lists the columns written on insert and update, ID first.
func writableColumns() []string {
	t := schema.Parish
	return []string{
		t.ID, t.DioceseID, t.Name, t.Address, t.City, t.State, t.Zip, t.Latitude, t.Longitude,
		t.Phone, t.Email, t.Website, t.Pastor, t.MassSchedule,
	}
}

func writableValues(p *Parish) []any {
	var massSchedule []byte
	if len(p.MassSchedule) > 0 {
		massSchedule = p.MassSchedule
	}

	return []any{
		p.ID, p.DioceseID, p.Name, p.Address, p.City, p.State, p.Zip, p.Latitude, p.Longitude,
		p.Phone, p.Email, p.Website, p.Pastor, massSchedule,
	}
}

// scanParish reads [schema.ParishTable.Columns] in order, followed by extra destinations.
func scanParish(row pgx.Row, extra ...any) (*Parish, error) {
	p := &Parish{}
	var massSchedule []byte

	dest := []any{
		&p.ID, &p.DioceseID, &p.Name, &p.Address, &p.City, &p.State, &p.Zip, &p.Latitude, &p.Longitude,
		&p.Phone, &p.Email, &p.Website, &p.Pastor, &massSchedule, &p.CreatedAt, &p.UpdatedAt,
	}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if len(massSchedule) > 0 {
		p.MassSchedule = massSchedule
	}
	return p, nil
}

func translateWriteError(err error, p *Parish) error {
	if err == nil {
		return nil
	}

	if dberr.IsUniqueViolation(err) && dberr.Constraint(err) == schema.Parish.IdentityIndex {
		return IdentityConflict(p).WithCause(err)
	}
	if dberr.IsForeignKeyViolation(err) {
		return apperr.ValidationError("Invalid parish", apperr.FieldError{Field: FieldDioceseID, Message: "Unknown diocese"})
	}
	return dberr.Wrap(err, resourceName)
}

// IdentityConflict is the 409 raised when another parish already uses p's
// (name, city, state).
func IdentityConflict(p *Parish) *apperr.AppError {
	return apperr.Conflict(
		fmt.Sprintf("A parish named %q already exists in %s, %s", p.Name, p.City, p.State),
		apperr.FieldError{Field: FieldName, Message: "Must be unique within the city and state"},
	)
}

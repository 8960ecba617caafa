// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diocese

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/ministryfinder/internal/platform/database/schema"
	"github.com/taibuivan/ministryfinder/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a new [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectQuery joins a per-diocese parish count onto every diocese column.
func selectQuery(where string) string {
	d := schema.Diocese
	p := schema.Parish

	columns := make([]string, 0, len(d.Columns()))
	for _, column := range d.Columns() {
		columns = append(columns, "d."+column)
	}

	return fmt.Sprintf(`
		SELECT %s, (SELECT count(*) FROM %s p WHERE p.%s = d.%s)
		FROM %s d
		%s
		ORDER BY d.%s ASC
	`, strings.Join(columns, ", "), p.Table, p.DioceseID, d.ID, d.Table, where, d.Name)
}

func (repository *PostgresRepository) List(ctx context.Context) ([]*Diocese, error) {
	rows, err := repository.db.Query(ctx, selectQuery(""))
	if err != nil {
		return nil, dberr.Wrap(err, "list_dioceses")
	}

	dioceses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Diocese, error) {
		return scanDiocese(row)
	})
	if err != nil {
		return nil, dberr.Wrap(err, "list_dioceses")
	}
	return dioceses, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Diocese, error) {
	query := selectQuery(fmt.Sprintf("WHERE d.%s = $1", schema.Diocese.ID))

	d, err := scanDiocese(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Diocese")
	}
	return d, nil
}

// Upsert inserts d, or refreshes the diocese of the same name. d.ID is
// replaced with the stored row's id.
func (repository *PostgresRepository) Upsert(ctx context.Context, d *Diocese) error {
	t := schema.Diocese

	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%[3]s)
		DO UPDATE SET %[4]s = EXCLUDED.%[4]s, %[5]s = EXCLUDED.%[5]s, %[6]s = EXCLUDED.%[6]s,
			%[7]s = EXCLUDED.%[7]s, %[8]s = NOW()
		RETURNING %[2]s, %[9]s, %[8]s
	`, t.Table, t.ID, t.Name, t.Location, t.Website, t.Phone, t.Email, t.UpdatedAt, t.CreatedAt)

	err := repository.db.QueryRow(ctx, query, d.ID, d.Name, d.Location, d.Website, d.Phone, d.Email).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_diocese")
	}
	return nil
}

func scanDiocese(row pgx.Row) (*Diocese, error) {
	d := &Diocese{}
	err := row.Scan(&d.ID, &d.Name, &d.Location, &d.Website, &d.Phone, &d.Email, &d.CreatedAt, &d.UpdatedAt, &d.ParishCount)
	return d, err
}

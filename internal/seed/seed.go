// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package seed loads the reference directory (dioceses, parishes and their
ministries) into storage and can pad every parish with placeholder
ministries for demos and load tests.

Loading is idempotent: dioceses are matched by name, parishes by
(name, city, state) and ministries by (parish, trimmed case-folded name),
so a second run refreshes rows instead of duplicating them.
*/
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/ministryfinder/internal/core/diocese"
	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/core/parish"
	"github.com/taibuivan/ministryfinder/internal/platform/validate"
	"github.com/taibuivan/ministryfinder/pkg/pointer"
	"github.com/taibuivan/ministryfinder/pkg/uuid"
)

// # Document

// Document is the root of the seed JSON file.
type Document struct {
	Dioceses []Diocese `json:"dioceses"`
}

// Diocese is one seeded diocese with its parishes.
type Diocese struct {
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Website  *string  `json:"website"`
	Phone    *string  `json:"phone"`
	Email    *string  `json:"email"`
	Parishes []Parish `json:"parishes"`
}

// Parish is one seeded parish. The diocese id is filled in while loading.
type Parish struct {
	parish.Input
	Ministries []ministry.Input `json:"ministries"`
}

// Parse decodes a seed document. Unknown keys are rejected so typos in the
// fixture file surface early.
func Parse(raw []byte) (*Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("seed: decode document: %w", err)
	}
	return &doc, nil
}

// # Storage Contracts

// DioceseWriter persists dioceses by name.
type DioceseWriter interface {
	Upsert(ctx context.Context, d *diocese.Diocese) error
}

// ParishWriter persists parishes by (name, city, state).
type ParishWriter interface {
	Upsert(ctx context.Context, p *parish.Parish) error
}

// MinistryWriter persists ministries by (parish, normalized name).
type MinistryWriter interface {
	Upsert(ctx context.Context, m *ministry.Ministry) error
}

// # Loader

// Options tunes a load run.
type Options struct {
	// Placeholders is the number of generated ministries added to every parish.
	Placeholders int

	// Generator produces the placeholder ministries. Required when
	// Placeholders is positive.
	Generator *Generator
}

// Stats counts the rows written by a load run.
type Stats struct {
	Dioceses     int
	Parishes     int
	Ministries   int
	Placeholders int
}

// Loader writes a [Document] through the repositories.
type Loader struct {
	dioceses   DioceseWriter
	parishes   ParishWriter
	ministries MinistryWriter
	logger     *slog.Logger
}

// NewLoader constructs a [Loader].
func NewLoader(dioceses DioceseWriter, parishes ParishWriter, ministries MinistryWriter, logger *slog.Logger) *Loader {
	return &Loader{dioceses: dioceses, parishes: parishes, ministries: ministries, logger: logger}
}

/*
Load upserts every diocese, parish and ministry of doc in document order.

Description: Parishes and ministries go through the same validation as the
HTTP API. The first invalid or failing record aborts the run; rows written
before it stay committed, and rerunning after a fix converges.

Parameters:
  - ctx: context.Context
  - doc: *Document
  - opts: Options

Returns:
  - Stats: Rows written per kind
  - error: Validation or storage failure, prefixed with the record's path
*/
func (loader *Loader) Load(ctx context.Context, doc *Document, opts Options) (Stats, error) {
	var stats Stats

	if opts.Placeholders > 0 && opts.Generator == nil {
		return stats, fmt.Errorf("seed: placeholders requested without a generator")
	}

	for _, seedDiocese := range doc.Dioceses {
		d, err := buildDiocese(seedDiocese)
		if err != nil {
			return stats, err
		}
		if err := loader.dioceses.Upsert(ctx, d); err != nil {
			return stats, fmt.Errorf("seed: diocese %q: %w", d.Name, err)
		}
		stats.Dioceses++

		for _, seedParish := range seedDiocese.Parishes {
			input := seedParish.Input
			input.DioceseID = &d.ID

			p, err := parish.ValidateInput(input)
			if err != nil {
				return stats, fmt.Errorf("seed: parish %q: %w", pointer.Val(input.Name), err)
			}
			p.ID = uuid.New()

			if err := loader.parishes.Upsert(ctx, p); err != nil {
				return stats, fmt.Errorf("seed: parish %q: %w", p.Name, err)
			}
			stats.Parishes++

			inputs := seedParish.Ministries
			generated := 0
			if opts.Placeholders > 0 {
				placeholders := opts.Generator.Ministries(opts.Placeholders)
				inputs = append(append([]ministry.Input(nil), inputs...), placeholders...)
				generated = len(placeholders)
			}

			for i, in := range inputs {
				in.ParishID = &p.ID

				m, err := ministry.ValidateInput(in)
				if err != nil {
					return stats, fmt.Errorf("seed: ministry %q of %q: %w", pointer.Val(in.Name), p.Name, err)
				}
				m.ID = uuid.New()

				if err := loader.ministries.Upsert(ctx, m); err != nil {
					return stats, fmt.Errorf("seed: ministry %q of %q: %w", m.Name, p.Name, err)
				}

				if i >= len(inputs)-generated {
					stats.Placeholders++
				} else {
					stats.Ministries++
				}
			}

			loader.logger.Debug("seed_parish_loaded",
				slog.String("parish_id", p.ID),
				slog.String("name", p.Name),
				slog.Int("ministries", len(inputs)),
			)
		}
	}

	loader.logger.Info("seed_loaded",
		slog.Int("dioceses", stats.Dioceses),
		slog.Int("parishes", stats.Parishes),
		slog.Int("ministries", stats.Ministries),
		slog.Int("placeholders", stats.Placeholders),
	)
	return stats, nil
}

func buildDiocese(in Diocese) (*diocese.Diocese, error) {
	name := strings.TrimSpace(in.Name)

	validator := &validate.Validator{}
	validator.Required("name", name)
	if email := strings.TrimSpace(pointer.Val(in.Email)); email != "" {
		validator.Email("email", email)
	}
	if err := validator.Err(); err != nil {
		return nil, fmt.Errorf("seed: diocese %q: %w", in.Name, err)
	}

	return &diocese.Diocese{
		ID:       uuid.New(),
		Name:     name,
		Location: strings.TrimSpace(in.Location),
		Website:  in.Website,
		Phone:    in.Phone,
		Email:    in.Email,
	}, nil
}

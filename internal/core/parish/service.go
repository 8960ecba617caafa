// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package parish

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/pkg/pagination"
	"github.com/taibuivan/ministryfinder/pkg/uuid"
)

// MinistryLister lists the visible ministries of a parish.
type MinistryLister interface {
	List(ctx context.Context, filter ministry.Filter, page pagination.Params) ([]*ministry.Ministry, int, error)
}

// # Service Layer

// Service orchestrates parish lookups and management.
type Service struct {
	repo        Repository
	ministries  MinistryLister
	invalidator ministry.Invalidator
	logger      *slog.Logger
}

// NewService constructs a new [Service]. invalidator may be nil.
func NewService(repo Repository, ministries MinistryLister, invalidator ministry.Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		ministries:  ministries,
		invalidator: invalidator,
		logger:      logger,
	}
}

// # Parish Lookups

// List returns one page of parishes ordered by name.
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Parish, int, error) {
	return service.repo.List(ctx, filter, page.Limit, page.Offset)
}

/*
Get returns a parish with its diocese and its visible ministries.

Description: Ministries go through the same filter as the public listing,
so inactive, non-public and placeholder records are not shown. Every
matching ministry is returned; the listing is read page by page.

Returns:
  - *Parish: The parish
  - error: NOT_FOUND or storage errors
*/
func (service *Service) Get(ctx context.Context, id string) (*Parish, error) {
	parish, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ministries, err := service.allMinistries(ctx, id)
	if err != nil {
		return nil, err
	}

	parish.Ministries = ministries
	return parish, nil
}

// allMinistries walks the listing in MaxLimit pages until total is reached.
func (service *Service) allMinistries(ctx context.Context, parishID string) ([]*ministry.Ministry, error) {
	filter := ministry.Filter{ParishID: parishID}
	page := pagination.Params{Limit: pagination.MaxLimit}

	var collected []*ministry.Ministry
	for {
		batch, total, err := service.ministries.List(ctx, filter, page)
		if err != nil {
			return nil, err
		}

		collected = append(collected, batch...)
		if len(batch) == 0 || len(collected) >= total {
			return collected, nil
		}
		page.Offset += len(batch)
	}
}

// SuggestNames returns up to limit parish names containing q.
func (service *Service) SuggestNames(ctx context.Context, q string, limit int) ([]string, error) {
	return service.repo.SuggestNames(ctx, q, limit)
}

// SuggestLocations returns up to limit "City, ST" labels matching q.
func (service *Service) SuggestLocations(ctx context.Context, q string, limit int) ([]string, error) {
	return service.repo.SuggestLocations(ctx, q, limit)
}

// # Parish Management

// Create validates in and inserts the parish.
func (service *Service) Create(ctx context.Context, in Input) (*Parish, error) {
	parish, err := ValidateInput(in)
	if err != nil {
		return nil, err
	}

	parish.ID = uuid.New()
	if err := service.repo.Create(ctx, parish); err != nil {
		return nil, err
	}

	service.invalidate(ctx)
	service.logger.Info("parish_created",
		slog.String("parish_id", parish.ID),
		slog.String("diocese_id", parish.DioceseID),
		slog.String("name", parish.Name),
	)

	return service.repo.FindByID(ctx, parish.ID)
}

// Update replaces every field of the parish id. The parish must exist.
func (service *Service) Update(ctx context.Context, id string, in Input) (*Parish, error) {
	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	parish, err := ValidateInput(in)
	if err != nil {
		return nil, err
	}

	parish.ID = id
	if err := service.repo.Update(ctx, parish); err != nil {
		return nil, err
	}

	service.invalidate(ctx)
	service.logger.Info("parish_updated", slog.String("parish_id", id))

	return service.repo.FindByID(ctx, id)
}

// Delete removes the parish and its ministries.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.invalidate(ctx)
	service.logger.Info("parish_deleted", slog.String("parish_id", id))

	return nil
}

func (service *Service) invalidate(ctx context.Context) {
	if service.invalidator != nil {
		service.invalidator.Invalidate(ctx)
	}
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ministryfinder/internal/platform/metrics"
	"github.com/taibuivan/ministryfinder/pkg/pagination"
	"github.com/taibuivan/ministryfinder/pkg/uuid"
)

// Invalidator drops derived data (such as cached suggestions) after a write.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// # Service Layer

// Service orchestrates ministry discovery and the validated write pipeline.
type Service struct {
	repo        Repository
	checker     *DuplicateChecker
	invalidator Invalidator
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewService constructs a new [Service]. invalidator and m may be nil.
func NewService(repo Repository, invalidator Invalidator, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		checker:     NewDuplicateChecker(repo),
		invalidator: invalidator,
		metrics:     m,
		logger:      logger,
	}
}

// # Ministry Lookups

/*
List returns one page of visible ministries matching filter.

Description: The filter is validated, compiled by [BuildPredicate] and
executed by the repository. The page is then put in relevance order.

Parameters:
  - ctx: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Ministry: Page in relevance order
  - int: Total matches across all pages
  - error: Validation or repository errors
*/
func (service *Service) List(ctx context.Context, filter Filter, page pagination.Params) ([]*Ministry, int, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, 0, err
	}

	ministries, total, err := service.repo.List(ctx, BuildPredicate(filter), page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}

	return SortByRelevance(ministries), total, nil
}

// Get returns a single ministry joined with its parish and diocese.
func (service *Service) Get(ctx context.Context, id string) (*Ministry, error) {
	return service.repo.FindByID(ctx, id)
}

// SuggestNames returns up to limit visible, non-placeholder ministry names
// containing q, case-insensitively.
func (service *Service) SuggestNames(ctx context.Context, q string, limit int) ([]string, error) {
	where := And{BuildPredicate(Filter{}), ContainsFold(ColName, q)}
	return service.repo.SuggestNames(ctx, where, limit)
}

// # Ministry Management

/*
Create validates in, checks name uniqueness and inserts the ministry.

Description: Stages run strictly in order and stop at the first failure:
field validation (400), duplicate check (409), insert. A unique index
violation during the insert is reported as the same 409.

Returns:
  - *Ministry: The stored record joined with its parish
  - error: Validation, conflict, or storage errors
*/
func (service *Service) Create(ctx context.Context, in Input) (*Ministry, error) {
	ministry, err := ValidateInput(in)
	if err != nil {
		return nil, err
	}

	if err := service.checkName(ctx, ministry, ""); err != nil {
		return nil, err
	}

	ministry.ID = uuid.New()
	if err := service.write(ctx, service.repo.Create, ministry); err != nil {
		return nil, err
	}

	service.logger.Info("ministry_created",
		slog.String("ministry_id", ministry.ID),
		slog.String("parish_id", ministry.ParishID),
		slog.String("name", ministry.Name),
	)

	return service.repo.FindByID(ctx, ministry.ID)
}

/*
Update replaces every field of the ministry id with in.

Description: Full-replace semantics: omitted optional fields fall back to
their defaults, not to the stored values. The record must exist (404)
before validation runs. The duplicate check ignores the ministry itself.

Returns:
  - *Ministry: The updated record joined with its parish
  - error: Not-found, validation, conflict, or storage errors
*/
func (service *Service) Update(ctx context.Context, id string, in Input) (*Ministry, error) {
	if _, err := service.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	ministry, err := ValidateInput(in)
	if err != nil {
		return nil, err
	}

	if err := service.checkName(ctx, ministry, id); err != nil {
		return nil, err
	}

	ministry.ID = id
	if err := service.write(ctx, service.repo.Update, ministry); err != nil {
		return nil, err
	}

	service.logger.Info("ministry_updated",
		slog.String("ministry_id", id),
		slog.String("parish_id", ministry.ParishID),
	)

	return service.repo.FindByID(ctx, id)
}

// Delete hard-deletes the ministry id.
func (service *Service) Delete(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}

	service.invalidate(ctx)
	service.logger.Info("ministry_deleted", slog.String("ministry_id", id))

	return nil
}

// # Metadata

// Types returns every ministry type.
func (service *Service) Types() []Type {
	return AllTypes
}

// AgeGroups returns every age group.
func (service *Service) AgeGroups() []AgeGroup {
	return AllAgeGroups
}

// # Pipeline Stages

func (service *Service) checkName(ctx context.Context, ministry *Ministry, excludeID string) error {
	err := service.checker.Check(ctx, ministry.Name, ministry.ParishID, excludeID)
	if IsNameConflict(err) {
		service.metrics.ConflictDetected(metrics.StagePrecheck)
		service.logger.Warn("ministry_name_conflict",
			slog.String("stage", metrics.StagePrecheck),
			slog.String("parish_id", ministry.ParishID),
		)
	}
	return err
}

// write runs a storage mutation and records constraint-level conflicts.
func (service *Service) write(ctx context.Context, mutate func(context.Context, *Ministry) error, ministry *Ministry) error {
	err := mutate(ctx, ministry)
	if IsNameConflict(err) {
		service.metrics.ConflictDetected(metrics.StageConstraint)
		service.logger.Warn("ministry_name_conflict",
			slog.String("stage", metrics.StageConstraint),
			slog.String("parish_id", ministry.ParishID),
		)
	}
	if err != nil {
		return err
	}

	service.invalidate(ctx)
	return nil
}

func (service *Service) invalidate(ctx context.Context) {
	if service.invalidator != nil {
		service.invalidator.Invalidate(ctx)
	}
}

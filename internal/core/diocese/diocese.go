// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package diocese exposes the read-only diocese catalogue.
package diocese

import (
	"context"
	"time"
)

// Diocese groups parishes under one bishop's see.
type Diocese struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Website     *string   `json:"website"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email"`
	ParishCount int       `json:"parishCount"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Repository defines the data access contract for dioceses.
type Repository interface {
	// List returns every diocese ordered by name, with parish counts.
	List(ctx context.Context) ([]*Diocese, error)

	// FindByID returns one diocese with its parish count, or NOT_FOUND.
	FindByID(ctx context.Context, id string) (*Diocese, error)
}

// Service serves diocese lookups.
type Service struct {
	repo Repository
}

// NewService constructs a new [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every diocese.
func (service *Service) List(ctx context.Context) ([]*Diocese, error) {
	return service.repo.List(ctx)
}

// Get returns the diocese id.
func (service *Service) Get(ctx context.Context, id string) (*Diocese, error) {
	return service.repo.FindByID(ctx, id)
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package parish

import "context"

// # Parish Data Access

// Repository defines the data access contract for parishes.
type Repository interface {
	/*
		List returns a filtered, paginated slice of parishes ordered by name,
		and the total count.
	*/
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Parish, int, error)

	// FindByID returns the parish with its diocese joined, or NOT_FOUND.
	FindByID(ctx context.Context, id string) (*Parish, error)

	// Create inserts p (ID already set). Duplicate (name, city, state) is a CONFLICT.
	Create(ctx context.Context, p *Parish) error

	// Update replaces every mutable column of the parish p.ID.
	Update(ctx context.Context, p *Parish) error

	// Delete removes the parish and, by cascade, its ministries.
	Delete(ctx context.Context, id string) error

	// SuggestNames returns up to limit parish names containing q.
	SuggestNames(ctx context.Context, q string, limit int) ([]string, error)

	// SuggestLocations returns up to limit distinct "City, ST" labels containing q.
	SuggestLocations(ctx context.Context, q string, limit int) ([]string, error)
}

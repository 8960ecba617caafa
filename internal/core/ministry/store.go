// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry

import "context"

// # Ministry Data Access

// Repository defines the data access contract for the ministry domain.
type Repository interface {
	NameLookup

	/*
		List returns one page of ministries matching where, joined with their
		parish and ordered placeholders-last then by name, plus the total count.

		Parameters:
		  - ctx: context.Context
		  - where: Predicate (Usually built by [BuildPredicate])
		  - limit: int
		  - offset: int

		Returns:
		  - []*Ministry: Page of records
		  - int: Total number of matches
		  - error: Database retrieval failures
	*/
	List(ctx context.Context, where Predicate, limit, offset int) ([]*Ministry, int, error)

	/*
		FindByID returns the ministry with the given ID, joined with its
		parish and diocese.

		Returns:
		  - *Ministry: The hydrated record
		  - error: NOT_FOUND if missing
	*/
	FindByID(ctx context.Context, id string) (*Ministry, error)

	/*
		Create inserts a new ministry. m.ID must already be set.

		Returns:
		  - error: Name conflict (see [NameConflict]) or storage failure
	*/
	Create(ctx context.Context, m *Ministry) error

	/*
		Update replaces every mutable column of the ministry with m.ID.

		Returns:
		  - error: NOT_FOUND, name conflict, or storage failure
	*/
	Update(ctx context.Context, m *Ministry) error

	// Delete hard-deletes a ministry. It returns NOT_FOUND when nothing was removed.
	Delete(ctx context.Context, id string) error

	// SuggestNames returns up to limit distinct ministry names matching where.
	SuggestNames(ctx context.Context, where Predicate, limit int) ([]string, error)
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taibuivan/ministryfinder/internal/platform/apperr"
)

// ErrDuplicateName is the cause carried by every name conflict, whether it
// was caught by [DuplicateChecker] or by the storage constraint.
var ErrDuplicateName = errors.New("ministry: duplicate name in parish")

// NameLookup finds a ministry in a parish by normalized name.
type NameLookup interface {
	/*
		FindConflictingName returns the id of a ministry in parishID whose
		normalized name equals normalizedName, ignoring excludeID.

		Returns:
		  - string: Conflicting id, or "" when none exists
		  - error: Storage failures only
	*/
	FindConflictingName(ctx context.Context, parishID, normalizedName, excludeID string) (string, error)
}

// NormalizeName is the comparison key for ministry names within a parish.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NameConflict builds the 409 returned for a duplicate ministry name.
// cause is joined with [ErrDuplicateName] for server-side logs.
func NameConflict(name string, cause error) error {
	trimmed := strings.TrimSpace(name)

	conflict := apperr.Conflict(
		fmt.Sprintf("A ministry named %q already exists in this parish", trimmed),
		apperr.FieldError{Field: FieldName, Message: "Must be unique within the parish"},
	)

	if cause == nil {
		return conflict.WithCause(ErrDuplicateName)
	}
	return conflict.WithCause(fmt.Errorf("%w: %w", ErrDuplicateName, cause))
}

// IsNameConflict reports whether err is a duplicate-name rejection.
func IsNameConflict(err error) bool {
	return errors.Is(err, ErrDuplicateName)
}

// DuplicateChecker enforces per-parish name uniqueness ahead of a write.
type DuplicateChecker struct {
	lookup NameLookup
}

// NewDuplicateChecker constructs a [DuplicateChecker] over lookup.
func NewDuplicateChecker(lookup NameLookup) *DuplicateChecker {
	return &DuplicateChecker{lookup: lookup}
}

/*
Check rejects name when another ministry in parishID already uses it.

Description: Names are compared after trimming and case folding. For an
update pass the ministry's own id as excludeID so renaming to the same
name is allowed. A clean check does not reserve the name; the storage
constraint remains the final arbiter.

Parameters:
  - ctx: context.Context
  - name: string (Candidate name)
  - parishID: string
  - excludeID: string (Empty on create)

Returns:
  - error: 409 conflict, or a storage error
*/
func (checker *DuplicateChecker) Check(ctx context.Context, name, parishID, excludeID string) error {
	conflictID, err := checker.lookup.FindConflictingName(ctx, parishID, NormalizeName(name), excludeID)
	if err != nil {
		return err
	}

	if conflictID != "" {
		return NameConflict(name, nil)
	}
	return nil
}

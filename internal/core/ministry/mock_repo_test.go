// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/platform/apperr"
)

// errUniqueIndex stands in for the PostgreSQL 23505 raised by the name index.
var errUniqueIndex = errors.New("duplicate key value violates unique constraint \"ministry_parish_name_uq\"")

// ── Mock Repository ──

// mockRepo keeps ministries in memory, evaluates predicates with Match and
// enforces the per-parish name constraint the way the unique index does.
type mockRepo struct {
	mu         sync.Mutex
	ministries map[string]*ministry.Ministry
	parishes   map[string]*ministry.ParishSummary

	// racing makes FindConflictingName report no conflict, as if another
	// writer committed between the pre-check and the insert.
	racing bool
}

func newMockRepo(parishIDs ...string) *mockRepo {
	repo := &mockRepo{
		ministries: make(map[string]*ministry.Ministry),
		parishes:   make(map[string]*ministry.ParishSummary),
	}
	for _, id := range parishIDs {
		repo.parishes[id] = &ministry.ParishSummary{ID: id, Name: "Parish " + id, City: "Springfield", State: "IL", Zip: "62701"}
	}
	return repo
}

// seed stores m directly, bypassing validation.
func (r *mockRepo) seed(m *ministry.Ministry) *ministry.Ministry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = fmt.Sprintf("seed-%d", len(r.ministries)+1)
	}
	m.Parish = r.parishes[m.ParishID]
	r.ministries[m.ID] = m
	return m
}

func (r *mockRepo) List(_ context.Context, where ministry.Predicate, limit, offset int) ([]*ministry.Ministry, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*ministry.Ministry
	for _, m := range r.ministries {
		if where.Match(m) {
			matched = append(matched, m)
		}
	}
	matched = ministry.SortByRelevance(matched)

	total := len(matched)
	if offset >= total {
		return []*ministry.Ministry{}, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

func (r *mockRepo) FindByID(_ context.Context, id string) (*ministry.Ministry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.ministries[id]
	if !ok {
		return nil, apperr.NotFound("Ministry")
	}
	clone := *m
	return &clone, nil
}

func (r *mockRepo) FindConflictingName(_ context.Context, parishID, normalizedName, excludeID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.racing {
		return "", nil
	}
	return r.conflictLocked(parishID, normalizedName, excludeID), nil
}

func (r *mockRepo) conflictLocked(parishID, normalizedName, excludeID string) string {
	for id, m := range r.ministries {
		if id != excludeID && m.ParishID == parishID && ministry.NormalizeName(m.Name) == normalizedName {
			return id
		}
	}
	return ""
}

func (r *mockRepo) Create(_ context.Context, m *ministry.Ministry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.writeLocked(m, false)
}

func (r *mockRepo) Update(_ context.Context, m *ministry.Ministry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ministries[m.ID]; !ok {
		return apperr.NotFound("Ministry")
	}
	return r.writeLocked(m, true)
}

func (r *mockRepo) writeLocked(m *ministry.Ministry, update bool) error {
	parish, ok := r.parishes[m.ParishID]
	if !ok {
		return apperr.Internal(errors.New("insert or update on table \"ministry\" violates foreign key constraint"))
	}

	excludeID := ""
	if update {
		excludeID = m.ID
	}
	if r.conflictLocked(m.ParishID, ministry.NormalizeName(m.Name), excludeID) != "" {
		return ministry.NameConflict(m.Name, errUniqueIndex)
	}

	now := time.Now()
	stored := *m
	stored.Parish = parish
	stored.UpdatedAt = now
	if !update {
		stored.CreatedAt = now
	}
	r.ministries[m.ID] = &stored
	return nil
}

func (r *mockRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ministries[id]; !ok {
		return apperr.NotFound("Ministry")
	}
	delete(r.ministries, id)
	return nil
}

func (r *mockRepo) SuggestNames(ctx context.Context, where ministry.Predicate, limit int) ([]string, error) {
	matched, _, err := r.List(ctx, where, limit, 0)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(matched))
	for _, m := range matched {
		names = append(names, m.Name)
	}
	return names, nil
}

// ── Mock Invalidator ──

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func (c *countingInvalidator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// ── Helpers ──

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

// validInput returns a minimal payload that passes validation.
func validInput(name, parishID string) ministry.Input {
	return ministry.Input{
		ParishID:  ptr(parishID),
		Name:      ptr(name),
		Type:      ptr(string(ministry.TypeBibleStudy)),
		AgeGroups: []string{string(ministry.AgeGroupAdults)},
		Languages: []string{"English"},
		Schedule:  []byte(`{"weekly":{"day":"Tuesday","time":"19:00"}}`),
	}
}

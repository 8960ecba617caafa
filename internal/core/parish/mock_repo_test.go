// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package parish_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/core/parish"
	"github.com/taibuivan/ministryfinder/internal/platform/apperr"
	"github.com/taibuivan/ministryfinder/pkg/pagination"
)

// ── Mock Repository ──

type mockRepo struct {
	mu       sync.Mutex
	parishes map[string]*parish.Parish
	dioceses map[string]*ministry.DioceseSummary
}

func newMockRepo(dioceseIDs ...string) *mockRepo {
	repo := &mockRepo{
		parishes: make(map[string]*parish.Parish),
		dioceses: make(map[string]*ministry.DioceseSummary),
	}
	for _, id := range dioceseIDs {
		repo.dioceses[id] = &ministry.DioceseSummary{ID: id, Name: "Diocese " + id}
	}
	return repo
}

func (r *mockRepo) List(_ context.Context, filter parish.Filter, limit, offset int) ([]*parish.Parish, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*parish.Parish
	for _, p := range r.parishes {
		if filter.DioceseID != "" && p.DioceseID != filter.DioceseID {
			continue
		}
		if filter.City != "" && !strings.EqualFold(p.City, filter.City) {
			continue
		}
		if filter.State != "" && !strings.EqualFold(p.State, filter.State) {
			continue
		}
		if filter.Search != "" && !containsFold(p.Name, filter.Search) && !containsFold(p.City, filter.Search) {
			continue
		}
		matched = append(matched, p)
	}
	slices.SortFunc(matched, func(a, b *parish.Parish) int { return strings.Compare(a.Name, b.Name) })

	total := len(matched)
	if offset >= total {
		return []*parish.Parish{}, total, nil
	}
	return matched[offset:min(offset+limit, total)], total, nil
}

func (r *mockRepo) FindByID(_ context.Context, id string) (*parish.Parish, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.parishes[id]
	if !ok {
		return nil, apperr.NotFound("Parish")
	}
	clone := *p
	clone.Diocese = r.dioceses[p.DioceseID]
	return &clone, nil
}

func (r *mockRepo) Create(_ context.Context, p *parish.Parish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkWrite(p); err != nil {
		return err
	}
	clone := *p
	r.parishes[p.ID] = &clone
	return nil
}

func (r *mockRepo) Update(_ context.Context, p *parish.Parish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.parishes[p.ID]; !ok {
		return apperr.NotFound("Parish")
	}
	if err := r.checkWrite(p); err != nil {
		return err
	}
	clone := *p
	r.parishes[p.ID] = &clone
	return nil
}

// checkWrite mirrors the foreign key and the (name, city, state) index.
func (r *mockRepo) checkWrite(p *parish.Parish) error {
	if _, ok := r.dioceses[p.DioceseID]; !ok {
		return apperr.ValidationError("Invalid parish", apperr.FieldError{Field: parish.FieldDioceseID, Message: "Unknown diocese"})
	}
	for _, existing := range r.parishes {
		if existing.ID != p.ID && existing.Name == p.Name && existing.City == p.City && existing.State == p.State {
			return parish.IdentityConflict(p)
		}
	}
	return nil
}

func (r *mockRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.parishes[id]; !ok {
		return apperr.NotFound("Parish")
	}
	delete(r.parishes, id)
	return nil
}

func (r *mockRepo) SuggestNames(_ context.Context, q string, limit int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var names []string
	for _, p := range r.parishes {
		if containsFold(p.Name, q) {
			names = append(names, p.Name)
		}
	}
	slices.Sort(names)
	return names[:min(limit, len(names))], nil
}

func (r *mockRepo) SuggestLocations(_ context.Context, q string, limit int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var labels []string
	for _, p := range r.parishes {
		if containsFold(p.City, q) || containsFold(p.State, q) || containsFold(p.Zip, q) {
			labels = append(labels, p.City+", "+p.State)
		}
	}
	slices.Sort(labels)
	labels = slices.Compact(labels)
	return labels[:min(limit, len(labels))], nil
}

// ── Mock Ministry Lister ──

type stubMinistries struct {
	byParish map[string][]*ministry.Ministry
	filters  []ministry.Filter
	pages    []pagination.Params
}

func (s *stubMinistries) List(_ context.Context, filter ministry.Filter, page pagination.Params) ([]*ministry.Ministry, int, error) {
	s.filters = append(s.filters, filter)
	s.pages = append(s.pages, page)

	found := s.byParish[filter.ParishID]
	start := min(page.Offset, len(found))
	end := min(start+page.Limit, len(found))
	return found[start:end], len(found), nil
}

// ── Helpers ──

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

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func containsFold(text, substr string) bool {
	return strings.Contains(strings.ToLower(text), strings.ToLower(substr))
}

func ptr[T any](value T) *T {
	return &value
}

func validInput(name, dioceseID string) parish.Input {
	return parish.Input{
		DioceseID: ptr(dioceseID),
		Name:      ptr(name),
		Address:   ptr("1 Church St"),
		City:      ptr("Springfield"),
		State:     ptr("il"),
		Zip:       ptr("62701"),
		Latitude:  ptr(39.78),
		Longitude: ptr(-89.65),
	}
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package search answers cross-entity queries over ministries and parishes.

Search reuses the ministry filter builder, so placeholders and hidden
ministries never surface here either. Suggestions back the search box's
type-ahead and are cached in Redis when a client is configured.
*/
package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/core/parish"
	"github.com/taibuivan/ministryfinder/internal/platform/metrics"
	"github.com/taibuivan/ministryfinder/internal/platform/validate"
	"github.com/taibuivan/ministryfinder/pkg/pagination"
)

const (
	// DefaultLimit caps each result set when no limit is given.
	DefaultLimit = 20

	// MinSuggestionQuery is the shortest query that produces suggestions.
	MinSuggestionQuery = 2

	// MaxSuggestions caps the combined suggestion list.
	MaxSuggestions = 10

	// suggestionsPerKind caps each source so one kind cannot crowd out the others.
	suggestionsPerKind = 5
)

// # Types

// Params are the inputs of [Service.Search].
type Params struct {
	Q         string
	Type      ministry.Type
	Location  string
	AgeGroups []ministry.AgeGroup
	Languages []string
	Limit     int
}

// Result is the body of GET /search.
type Result struct {
	Ministries   []*ministry.Ministry `json:"ministries"`
	Parishes     []*parish.Parish     `json:"parishes"`
	TotalResults int                  `json:"totalResults"`
}

// SuggestionType tags where a suggestion came from.
type SuggestionType string

const (
	SuggestionMinistry SuggestionType = "ministry"
	SuggestionParish   SuggestionType = "parish"
	SuggestionLocation SuggestionType = "location"
)

// Suggestion is one type-ahead entry.
type Suggestion struct {
	Type SuggestionType `json:"type"`
	Text string         `json:"text"`
}

// MinistrySource is the slice of the ministry service search needs.
type MinistrySource interface {
	List(ctx context.Context, filter ministry.Filter, page pagination.Params) ([]*ministry.Ministry, int, error)
	SuggestNames(ctx context.Context, q string, limit int) ([]string, error)
}

// ParishSource is the slice of the parish service search needs.
type ParishSource interface {
	List(ctx context.Context, filter parish.Filter, page pagination.Params) ([]*parish.Parish, int, error)
	SuggestNames(ctx context.Context, q string, limit int) ([]string, error)
	SuggestLocations(ctx context.Context, q string, limit int) ([]string, error)
}

// # Service Layer

// Service runs searches and type-ahead suggestions.
type Service struct {
	ministries MinistrySource
	parishes   ParishSource
	cache      *Cache
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewService constructs a new [Service]. cache and m may be nil.
func NewService(ministries MinistrySource, parishes ParishSource, cache *Cache, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		ministries: ministries,
		parishes:   parishes,
		cache:      cache,
		metrics:    m,
		logger:     logger,
	}
}

/*
Search matches q as a case-insensitive substring across ministries and parishes.

Description: Ministries match on name, description or parish name and keep
the default visibility and placeholder rules. Parishes match on name or
city. type, ageGroups and languages narrow ministries only; location
narrows both.

Returns:
  - *Result: Up to Limit ministries and Limit parishes. TotalResults counts
    every match of both kinds, not only the returned ones.
  - error: VALIDATION_ERROR when q is blank
*/
func (service *Service) Search(ctx context.Context, params Params) (*Result, error) {
	q := strings.TrimSpace(params.Q)
	if q == "" {
		return nil, validate.RequiredError("q", "This field is required")
	}

	page := pagination.Params{Limit: params.Limit}
	if page.Limit < 1 {
		page.Limit = DefaultLimit
	}
	page.Limit = min(page.Limit, pagination.MaxLimit)

	ministries, ministryTotal, err := service.ministries.List(ctx, ministry.Filter{
		Search:    q,
		Type:      params.Type,
		Location:  params.Location,
		AgeGroups: params.AgeGroups,
		Languages: params.Languages,
	}, page)
	if err != nil {
		return nil, err
	}

	parishes, parishTotal, err := service.parishes.List(ctx, parish.Filter{Search: q, Location: params.Location}, page)
	if err != nil {
		return nil, err
	}

	service.metrics.SearchPerformed()

	return &Result{
		Ministries:   nonNil(ministries),
		Parishes:     nonNil(parishes),
		TotalResults: ministryTotal + parishTotal,
	}, nil
}

/*
Suggestions returns up to [MaxSuggestions] type-ahead entries for q.

Description: Queries shorter than [MinSuggestionQuery] characters return an
empty list without touching storage. Ministry names come first, then parish
names, then "City, ST" locations. Results are cached per lower-cased query.
*/
func (service *Service) Suggestions(ctx context.Context, q string) ([]Suggestion, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < MinSuggestionQuery {
		return []Suggestion{}, nil
	}

	if cached, ok := service.cache.Suggestions(ctx, q); ok {
		return cached, nil
	}

	ministryNames, err := service.ministries.SuggestNames(ctx, q, suggestionsPerKind)
	if err != nil {
		return nil, err
	}

	parishNames, err := service.parishes.SuggestNames(ctx, q, suggestionsPerKind)
	if err != nil {
		return nil, err
	}

	locations, err := service.parishes.SuggestLocations(ctx, q, suggestionsPerKind)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, MaxSuggestions)
	suggestions = appendSuggestions(suggestions, SuggestionMinistry, ministryNames)
	suggestions = appendSuggestions(suggestions, SuggestionParish, parishNames)
	suggestions = appendSuggestions(suggestions, SuggestionLocation, locations)

	service.cache.StoreSuggestions(ctx, q, suggestions)
	return suggestions, nil
}

func appendSuggestions(suggestions []Suggestion, kind SuggestionType, texts []string) []Suggestion {
	for _, text := range texts {
		if len(suggestions) == MaxSuggestions {
			break
		}
		suggestions = append(suggestions, Suggestion{Type: kind, Text: text})
	}
	return suggestions
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

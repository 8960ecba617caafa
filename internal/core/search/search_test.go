// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/core/parish"
	"github.com/taibuivan/ministryfinder/internal/core/search"
	"github.com/taibuivan/ministryfinder/internal/platform/apperr"
	"github.com/taibuivan/ministryfinder/internal/platform/metrics"
	"github.com/taibuivan/ministryfinder/pkg/pagination"
)

// ── Stub Sources ──

type stubMinistries struct {
	found   []*ministry.Ministry
	total   int
	names   []string
	filters []ministry.Filter
	pages   []pagination.Params
	calls   int
}

func (s *stubMinistries) List(_ context.Context, filter ministry.Filter, page pagination.Params) ([]*ministry.Ministry, int, error) {
	s.filters = append(s.filters, filter)
	s.pages = append(s.pages, page)
	return s.found, s.total, nil
}

func (s *stubMinistries) SuggestNames(_ context.Context, _ string, limit int) ([]string, error) {
	s.calls++
	return s.names[:min(limit, len(s.names))], nil
}

type stubParishes struct {
	found     []*parish.Parish
	total     int
	names     []string
	locations []string
	filters   []parish.Filter
}

func (s *stubParishes) List(_ context.Context, filter parish.Filter, _ pagination.Params) ([]*parish.Parish, int, error) {
	s.filters = append(s.filters, filter)
	return s.found, s.total, nil
}

func (s *stubParishes) SuggestNames(_ context.Context, _ string, limit int) ([]string, error) {
	return s.names[:min(limit, len(s.names))], nil
}

func (s *stubParishes) SuggestLocations(_ context.Context, _ string, limit int) ([]string, error) {
	return s.locations[:min(limit, len(s.locations))], nil
}

// ── Helpers ──

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	service    *search.Service
	ministries *stubMinistries
	parishes   *stubParishes
	cache      *search.Cache
	redis      *miniredis.Miniredis
	metrics    *metrics.Metrics
}

func setup(t *testing.T) fixture {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })

	m := metrics.New(prometheus.NewRegistry())
	cache := search.NewCache(client, m, discardLogger())
	ministries := &stubMinistries{}
	parishes := &stubParishes{}

	return fixture{
		service:    search.NewService(ministries, parishes, cache, m, discardLogger()),
		ministries: ministries,
		parishes:   parishes,
		cache:      cache,
		redis:      server,
		metrics:    m,
	}
}

// ── Search ──

/*
TestSearch_RequiresQuery rejects a missing or blank q.
*/
func TestSearch_RequiresQuery(t *testing.T) {
	f := setup(t)

	for _, q := range []string{"", "   "} {
		_, err := f.service.Search(context.Background(), search.Params{Q: q})

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, http.StatusBadRequest, ae.HTTPStatus)
		require.Len(t, ae.Details, 1)
		assert.Equal(t, "q", ae.Details[0].Field)
	}
	assert.Empty(t, f.ministries.filters)
}

/*
TestSearch_SpansMinistriesAndParishes forwards filters to each source and
sums both totals.
*/
func TestSearch_SpansMinistriesAndParishes(t *testing.T) {
	f := setup(t)
	f.ministries.found = []*ministry.Ministry{{ID: "m1", Name: "Bible Study"}}
	f.ministries.total = 7
	f.parishes.total = 2

	result, err := f.service.Search(context.Background(), search.Params{
		Q:         " bible ",
		Type:      ministry.TypeBibleStudy,
		Location:  "Springfield",
		AgeGroups: []ministry.AgeGroup{ministry.AgeGroupAdults},
		Languages: []string{"Spanish"},
	})
	require.NoError(t, err)

	assert.Len(t, result.Ministries, 1)
	assert.NotNil(t, result.Parishes)
	assert.Equal(t, 9, result.TotalResults)

	assert.Equal(t, ministry.Filter{
		Search:    "bible",
		Type:      ministry.TypeBibleStudy,
		Location:  "Springfield",
		AgeGroups: []ministry.AgeGroup{ministry.AgeGroupAdults},
		Languages: []string{"Spanish"},
	}, f.ministries.filters[0])
	assert.Equal(t, parish.Filter{Search: "bible", Location: "Springfield"}, f.parishes.filters[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.SearchesTotal))
}

func TestSearch_Limit(t *testing.T) {
	tests := []struct {
		requested int
		applied   int
	}{
		{0, search.DefaultLimit},
		{-3, search.DefaultLimit},
		{5, 5},
		{1000, pagination.MaxLimit},
	}

	for _, tt := range tests {
		f := setup(t)
		_, err := f.service.Search(context.Background(), search.Params{Q: "choir", Limit: tt.requested})
		require.NoError(t, err)
		assert.Equal(t, tt.applied, f.ministries.pages[0].Limit, "requested %d", tt.requested)
	}
}

// ── Suggestions ──

func TestSuggestions_ShortQuery(t *testing.T) {
	f := setup(t)

	for _, q := range []string{"", "a", " b "} {
		suggestions, err := f.service.Suggestions(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, []search.Suggestion{}, suggestions)
	}
	assert.Zero(t, f.ministries.calls)
}

/*
TestSuggestions_OrderAndCap lists ministries, then parishes, then locations,
and never returns more than ten entries.
*/
func TestSuggestions_OrderAndCap(t *testing.T) {
	f := setup(t)
	f.ministries.names = []string{"M1", "M2", "M3", "M4", "M5", "M6"}
	f.parishes.names = []string{"P1", "P2", "P3"}
	f.parishes.locations = []string{"Springfield, IL", "Springfield, MO", "Springdale, AR"}

	suggestions, err := f.service.Suggestions(context.Background(), "sp")
	require.NoError(t, err)

	require.Len(t, suggestions, search.MaxSuggestions)
	assert.Equal(t, search.Suggestion{Type: search.SuggestionMinistry, Text: "M1"}, suggestions[0])
	assert.Equal(t, search.Suggestion{Type: search.SuggestionParish, Text: "P1"}, suggestions[5])
	assert.Equal(t, search.Suggestion{Type: search.SuggestionLocation, Text: "Springfield, IL"}, suggestions[8])
	assert.Equal(t, search.Suggestion{Type: search.SuggestionLocation, Text: "Springfield, MO"}, suggestions[9])
}

/*
TestSuggestions_Cached serves the second lookup from Redis, keyed by the
lower-cased query, until a write invalidates it.
*/
func TestSuggestions_Cached(t *testing.T) {
	f := setup(t)
	f.ministries.names = []string{"Bible Study"}
	ctx := context.Background()

	first, err := f.service.Suggestions(ctx, "Bib")
	require.NoError(t, err)

	second, err := f.service.Suggestions(ctx, "bib")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, f.ministries.calls)
	assert.True(t, f.redis.Exists(search.SuggestionKey("BIB")))
	assert.Equal(t, search.SuggestionTTL, f.redis.TTL("search:suggest:bib"))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CacheMisses))

	f.cache.Invalidate(ctx)
	assert.False(t, f.redis.Exists("search:suggest:bib"))

	_, err = f.service.Suggestions(ctx, "bib")
	require.NoError(t, err)
	assert.Equal(t, 2, f.ministries.calls)
}

/*
TestCache_InvalidateOnlySuggestions leaves unrelated keys alone.
*/
func TestCache_InvalidateOnlySuggestions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for _, q := range []string{"choir", "youth", "food"} {
		f.cache.StoreSuggestions(ctx, q, []search.Suggestion{{Type: search.SuggestionMinistry, Text: q}})
	}
	require.NoError(t, f.redis.Set("other:key", "keep"))

	f.cache.Invalidate(ctx)

	assert.Equal(t, []string{"other:key"}, f.redis.Keys())
}

/*
TestCache_Degrades treats Redis failures and a missing client as misses.
*/
func TestCache_Degrades(t *testing.T) {
	f := setup(t)
	f.ministries.names = []string{"Choir"}
	f.redis.Close()

	suggestions, err := f.service.Suggestions(context.Background(), "ch")
	require.NoError(t, err)
	assert.Len(t, suggestions, 1)

	var disabled *search.Cache
	_, ok := disabled.Suggestions(context.Background(), "ch")
	assert.False(t, ok)
	disabled.StoreSuggestions(context.Background(), "ch", suggestions)
	disabled.Invalidate(context.Background())

	noClient := search.NewCache(nil, nil, discardLogger())
	_, ok = noClient.Suggestions(context.Background(), "ch")
	assert.False(t, ok)
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seed_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ministryfinder/data"
	"github.com/taibuivan/ministryfinder/internal/core/diocese"
	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/core/parish"
	"github.com/taibuivan/ministryfinder/internal/seed"
)

// ── In-memory writers keyed like the unique indexes ──

type memoryStore struct {
	dioceses   map[string]*diocese.Diocese
	parishes   map[string]*parish.Parish
	ministries map[string]*ministry.Ministry
	failOn     string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		dioceses:   map[string]*diocese.Diocese{},
		parishes:   map[string]*parish.Parish{},
		ministries: map[string]*ministry.Ministry{},
	}
}

type dioceseWriter struct{ *memoryStore }

func (w dioceseWriter) Upsert(_ context.Context, d *diocese.Diocese) error {
	if existing, ok := w.dioceses[d.Name]; ok {
		d.ID = existing.ID
	}
	w.dioceses[d.Name] = d
	return nil
}

type parishWriter struct{ *memoryStore }

func (w parishWriter) Upsert(_ context.Context, p *parish.Parish) error {
	key := p.Name + "|" + p.City + "|" + p.State
	if existing, ok := w.parishes[key]; ok {
		p.ID = existing.ID
	}
	w.parishes[key] = p
	return nil
}

type ministryWriter struct{ *memoryStore }

func (w ministryWriter) Upsert(_ context.Context, m *ministry.Ministry) error {
	if w.failOn != "" && m.Name == w.failOn {
		return errors.New("connection reset")
	}

	key := m.ParishID + "|" + strings.ToLower(strings.TrimSpace(m.Name))
	if existing, ok := w.ministries[key]; ok {
		m.ID = existing.ID
	}
	w.ministries[key] = m
	return nil
}

func newLoader(store *memoryStore) *seed.Loader {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return seed.NewLoader(dioceseWriter{store}, parishWriter{store}, ministryWriter{store}, logger)
}

// ── Tests ──

func TestParse_EmbeddedDocument(t *testing.T) {
	doc, err := seed.Parse(data.Seed)
	require.NoError(t, err)

	require.NotEmpty(t, doc.Dioceses)
	for _, d := range doc.Dioceses {
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Parishes, d.Name)
	}
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := seed.Parse([]byte(`{"dioceses": [{"name": "X", "bishop": "Y"}]}`))
	assert.Error(t, err)
}

func TestLoader_EmbeddedDocument(t *testing.T) {
	doc, err := seed.Parse(data.Seed)
	require.NoError(t, err)

	store := newMemoryStore()
	stats, err := newLoader(store).Load(context.Background(), doc, seed.Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Dioceses)
	assert.Equal(t, 5, stats.Parishes)
	assert.Equal(t, 13, stats.Ministries)
	assert.Zero(t, stats.Placeholders)
	assert.Len(t, store.ministries, 13)

	for _, m := range store.ministries {
		assert.False(t, ministry.IsPlaceholder(m), m.Name)
	}
}

func TestLoader_Idempotent(t *testing.T) {
	doc, err := seed.Parse(data.Seed)
	require.NoError(t, err)

	store := newMemoryStore()
	loader := newLoader(store)

	_, err = loader.Load(context.Background(), doc, seed.Options{})
	require.NoError(t, err)

	parishIDs := map[string]string{}
	for key, p := range store.parishes {
		parishIDs[key] = p.ID
	}

	_, err = loader.Load(context.Background(), doc, seed.Options{})
	require.NoError(t, err)

	assert.Len(t, store.dioceses, 2)
	assert.Len(t, store.parishes, 5)
	assert.Len(t, store.ministries, 13)
	for key, p := range store.parishes {
		assert.Equal(t, parishIDs[key], p.ID, key)
	}
}

func TestLoader_Placeholders(t *testing.T) {
	doc, err := seed.Parse(data.Seed)
	require.NoError(t, err)

	store := newMemoryStore()
	stats, err := newLoader(store).Load(context.Background(), doc, seed.Options{
		Placeholders: 3,
		Generator:    seed.NewGenerator(42),
	})
	require.NoError(t, err)

	assert.Equal(t, 13, stats.Ministries)
	assert.Equal(t, 15, stats.Placeholders)

	placeholders := 0
	for _, m := range store.ministries {
		if ministry.IsPlaceholder(m) {
			placeholders++
		}
	}
	assert.Equal(t, 15, placeholders)
}

func TestLoader_PlaceholdersNeedGenerator(t *testing.T) {
	_, err := newLoader(newMemoryStore()).Load(context.Background(), &seed.Document{}, seed.Options{Placeholders: 1})
	assert.Error(t, err)
}

func TestLoader_InvalidRecord(t *testing.T) {
	doc, err := seed.Parse([]byte(`{
		"dioceses": [{
			"name": "Diocese of Test",
			"parishes": [{"name": "St. Nowhere", "address": "1 Main St", "city": "Town", "state": "Illinois", "zip": "62701"}]
		}]
	}`))
	require.NoError(t, err)

	store := newMemoryStore()
	stats, err := newLoader(store).Load(context.Background(), doc, seed.Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "St. Nowhere")
	assert.Equal(t, 1, stats.Dioceses)
	assert.Empty(t, store.parishes)
}

func TestLoader_StorageFailure(t *testing.T) {
	doc, err := seed.Parse(data.Seed)
	require.NoError(t, err)

	store := newMemoryStore()
	store.failOn = "Youth Group"

	_, err = newLoader(store).Load(context.Background(), doc, seed.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Youth Group"`)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGenerator(t *testing.T) {
	first := seed.NewGenerator(7).Ministries(5)
	second := seed.NewGenerator(7).Ministries(5)
	require.Len(t, first, 5)

	names := map[string]bool{}
	for i, in := range first {
		assert.Equal(t, *in.Name, *second[i].Name, "same seed, same names")
		assert.True(t, strings.HasPrefix(*in.Name, ministry.PlaceholderNameTag))
		assert.Equal(t, ministry.PlaceholderEmail, *in.ContactEmail)
		names[strings.ToLower(*in.Name)] = true

		parishID := "P1"
		in.ParishID = &parishID
		m, err := ministry.ValidateInput(in)
		require.NoError(t, err, *in.Name)
		assert.NotEqual(t, ministry.TypeTest, m.Type)
		assert.True(t, ministry.IsPlaceholder(m))
	}
	assert.Len(t, names, 5)
}

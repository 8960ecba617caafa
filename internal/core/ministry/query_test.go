// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
)

func record(name string, mutate ...func(*ministry.Ministry)) *ministry.Ministry {
	m := &ministry.Ministry{
		ID:        name,
		ParishID:  "P1",
		Name:      name,
		Type:      ministry.TypeBibleStudy,
		AgeGroups: []ministry.AgeGroup{ministry.AgeGroupAdults},
		Languages: []string{"English"},
		IsActive:  true,
		IsPublic:  true,
		Parish:    &ministry.ParishSummary{ID: "P1", Name: "St. Mary", City: "Springfield", State: "IL", Zip: "62701"},
	}
	for _, fn := range mutate {
		fn(m)
	}
	return m
}

/*
TestBuildPredicate_DefaultVisibility hides inactive and non-public records
when the flags are not supplied.
*/
func TestBuildPredicate_DefaultVisibility(t *testing.T) {
	predicate := ministry.BuildPredicate(ministry.Filter{})

	assert.True(t, predicate.Match(record("Choir")))
	assert.False(t, predicate.Match(record("Choir", func(m *ministry.Ministry) { m.IsActive = false })))
	assert.False(t, predicate.Match(record("Choir", func(m *ministry.Ministry) { m.IsPublic = false })))

	inactive := ministry.BuildPredicate(ministry.Filter{IsActive: ptr(false)})
	assert.True(t, inactive.Match(record("Choir", func(m *ministry.Ministry) { m.IsActive = false })))
	assert.False(t, inactive.Match(record("Choir")))
}

/*
TestBuildPredicate_Placeholders excludes tagged fixtures unless asked for.
*/
func TestBuildPredicate_Placeholders(t *testing.T) {
	tests := []struct {
		name        string
		record      *ministry.Ministry
		placeholder bool
	}{
		{"real", record("Food Pantry"), false},
		{"tag", record("[PLACEHOLDER] Food Pantry"), true},
		{"fake", record("FAKE Youth Group"), true},
		{"email", record("Choir", func(m *ministry.Ministry) { m.ContactEmail = ptr("PLACEHOLDER@example.com") }), true},
		{"lowercase_tag_is_real", record("[placeholder] Choir"), false},
		{"lowercase_fake_is_real", record("Fake News Discussion"), false},
		{"nil_email", record("Choir", func(m *ministry.Ministry) { m.ContactEmail = nil }), false},
	}

	exclude := ministry.BuildPredicate(ministry.Filter{})
	include := ministry.BuildPredicate(ministry.Filter{IncludePlaceholders: true})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.placeholder, ministry.IsPlaceholder(tt.record))
			assert.Equal(t, !tt.placeholder, exclude.Match(tt.record))
			assert.True(t, include.Match(tt.record))
		})
	}
}

/*
TestBuildPredicate_AgeGroups matches any overlap with the requested groups.
*/
func TestBuildPredicate_AgeGroups(t *testing.T) {
	seniorsAndAdults := record("Rosary", func(m *ministry.Ministry) {
		m.AgeGroups = []ministry.AgeGroup{ministry.AgeGroupAdults, ministry.AgeGroupSeniors}
	})

	tests := []struct {
		name    string
		groups  []ministry.AgeGroup
		matches bool
	}{
		{"single_hit", []ministry.AgeGroup{ministry.AgeGroupSeniors}, true},
		{"partial_hit", []ministry.AgeGroup{ministry.AgeGroupAdults, ministry.AgeGroupTeenagers}, true},
		{"miss", []ministry.AgeGroup{ministry.AgeGroupChildren}, false},
		{"empty_is_absent", []ministry.AgeGroup{}, true},
		{"nil_is_absent", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predicate := ministry.BuildPredicate(ministry.Filter{AgeGroups: tt.groups})
			assert.Equal(t, tt.matches, predicate.Match(seniorsAndAdults))
		})
	}
}

/*
TestBuildPredicate_Languages uses the same "has some of" rule.
*/
func TestBuildPredicate_Languages(t *testing.T) {
	bilingual := record("Mass Choir", func(m *ministry.Ministry) { m.Languages = []string{"English", "Spanish"} })

	assert.True(t, ministry.BuildPredicate(ministry.Filter{Languages: []string{"Spanish", "Polish"}}).Match(bilingual))
	assert.False(t, ministry.BuildPredicate(ministry.Filter{Languages: []string{"Polish"}}).Match(bilingual))
	assert.True(t, ministry.BuildPredicate(ministry.Filter{Languages: []string{}}).Match(bilingual))
}

/*
TestBuildPredicate_Search matches name, description or parish name as a
case-insensitive substring.
*/
func TestBuildPredicate_Search(t *testing.T) {
	m := record("Men's Bible Study", func(m *ministry.Ministry) { m.Description = ptr("Weekly scripture reading") })

	tests := []struct {
		search  string
		matches bool
	}{
		{"bible", true},
		{"SCRIPTURE", true},
		{"st. mary", true},
		{"  study  ", true},
		{"rosary", false},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			assert.Equal(t, tt.matches, ministry.BuildPredicate(ministry.Filter{Search: tt.search}).Match(m))
		})
	}
}

/*
TestBuildPredicate_ExactFields narrows by parish, type and location.
*/
func TestBuildPredicate_ExactFields(t *testing.T) {
	m := record("Food Pantry", func(m *ministry.Ministry) { m.Type = ministry.TypeFoodPantry })

	assert.True(t, ministry.BuildPredicate(ministry.Filter{ParishID: "P1"}).Match(m))
	assert.False(t, ministry.BuildPredicate(ministry.Filter{ParishID: "P2"}).Match(m))
	assert.True(t, ministry.BuildPredicate(ministry.Filter{Type: ministry.TypeFoodPantry}).Match(m))
	assert.False(t, ministry.BuildPredicate(ministry.Filter{Type: ministry.TypeBibleStudy}).Match(m))
	assert.True(t, ministry.BuildPredicate(ministry.Filter{Location: "springfield"}).Match(m))
	assert.True(t, ministry.BuildPredicate(ministry.Filter{Location: "627"}).Match(m))
	assert.False(t, ministry.BuildPredicate(ministry.Filter{Location: "Chicago"}).Match(m))
}

/*
TestBuildPredicate_Render checks the SQL shape and parameter binding.
*/
func TestBuildPredicate_Render(t *testing.T) {
	args := &ministry.Args{}
	sql := ministry.BuildPredicate(ministry.Filter{
		ParishID:  "P1",
		AgeGroups: []ministry.AgeGroup{ministry.AgeGroupSeniors},
		Search:    "50%_off",
	}).Render(args)

	assert.Equal(t,
		"(m.is_active = $1 AND m.is_public = $2 AND m.parish_id = $3 AND m.age_groups && $4::text[]"+
			" AND (m.name ILIKE $5 OR COALESCE(m.description, '') ILIKE $6 OR p.name ILIKE $7)"+
			" AND NOT ((m.name LIKE $8 OR m.name LIKE $9 OR COALESCE(m.contact_email, '') LIKE $10)))",
		sql,
	)

	values := args.Values()
	require.Len(t, values, 10)
	assert.Equal(t, true, values[0])
	assert.Equal(t, "P1", values[2])
	assert.Equal(t, []string{"SENIORS"}, values[3])
	assert.Equal(t, `%50\%\_off%`, values[4])
	assert.Equal(t, "%[PLACEHOLDER]%", values[7])
	assert.Equal(t, "%FAKE%", values[8])
	assert.Equal(t, "%PLACEHOLDER@example.com%", values[9])
}

/*
TestPredicate_EmptyCombinators renders neutral SQL literals.
*/
func TestPredicate_EmptyCombinators(t *testing.T) {
	args := &ministry.Args{}

	assert.Equal(t, "TRUE", ministry.And{}.Render(args))
	assert.Equal(t, "FALSE", ministry.Or{}.Render(args))
	assert.True(t, ministry.And{}.Match(record("x")))
	assert.False(t, ministry.Or{}.Match(record("x")))
	assert.Empty(t, args.Values())
}

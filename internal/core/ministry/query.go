// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry

import (
	"slices"
	"strconv"
	"strings"

	"github.com/taibuivan/ministryfinder/pkg/query"
)

// # Placeholder Convention

// Seed fixtures are tagged by these substrings. Matching is case-sensitive.
const (
	PlaceholderNameTag  = "[PLACEHOLDER]"
	PlaceholderNameFake = "FAKE"
	PlaceholderEmail    = "PLACEHOLDER@example.com"
)

// IsPlaceholder reports whether m carries any of the placeholder tags.
func IsPlaceholder(m *Ministry) bool {
	return PlaceholderPredicate().Match(m)
}

// # Filter

/*
Filter holds the optional list/search criteria for ministries.

Zero values mean "no constraint" with two exceptions: nil IsActive and nil
IsPublic mean true, and IncludePlaceholders=false excludes fixture records.
*/
type Filter struct {
	ParishID            string
	Type                Type
	AgeGroups           []AgeGroup
	Languages           []string
	IsActive            *bool
	IsPublic            *bool
	Search              string
	Location            string
	IncludePlaceholders bool
}

/*
BuildPredicate translates f into a single predicate over ministries joined
with their parish.

Description: Pure function. Every clause is ANDed:
  - visibility (isActive, isPublic), defaulting to true
  - exact parish and type
  - "has some of" overlap on age groups and languages; empty lists are ignored
  - case-insensitive substring search on name, description or parish name
  - case-insensitive substring match of location on parish city, state or zip
  - placeholder exclusion unless IncludePlaceholders is set

Returns:
  - Predicate: Renderable to SQL and evaluable in memory
*/
func BuildPredicate(f Filter) Predicate {
	clauses := And{
		Eq(ColIsActive, boolOrTrue(f.IsActive)),
		Eq(ColIsPublic, boolOrTrue(f.IsPublic)),
	}

	if f.ParishID != "" {
		clauses = append(clauses, Eq(ColParishID, f.ParishID))
	}

	if f.Type != "" {
		clauses = append(clauses, Eq(ColType, string(f.Type)))
	}

	if len(f.AgeGroups) > 0 {
		groups := make([]string, len(f.AgeGroups))
		for i, group := range f.AgeGroups {
			groups[i] = string(group)
		}
		clauses = append(clauses, Overlaps(ColAgeGroups, groups))
	}

	if len(f.Languages) > 0 {
		clauses = append(clauses, Overlaps(ColLanguages, f.Languages))
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		clauses = append(clauses, Or{
			ContainsFold(ColName, search),
			ContainsFold(ColDescription, search),
			ContainsFold(ColParishName, search),
		})
	}

	if location := strings.TrimSpace(f.Location); location != "" {
		clauses = append(clauses, Or{
			ContainsFold(ColParishCity, location),
			ContainsFold(ColParishState, location),
			ContainsFold(ColParishZip, location),
		})
	}

	if !f.IncludePlaceholders {
		clauses = append(clauses, Not{PlaceholderPredicate()})
	}

	return clauses
}

// PlaceholderPredicate matches records tagged as fixtures.
func PlaceholderPredicate() Predicate {
	return Or{
		Contains(ColName, PlaceholderNameTag),
		Contains(ColName, PlaceholderNameFake),
		Contains(ColContactEmail, PlaceholderEmail),
	}
}

func boolOrTrue(value *bool) bool {
	if value == nil {
		return true
	}
	return *value
}

// # Predicate Algebra

// Predicate is a composable condition over a [Ministry] joined with its parish.
type Predicate interface {
	// Render writes the condition as a PostgreSQL boolean expression, binding
	// values through args.
	Render(args *Args) string

	// Match evaluates the same condition against an in-memory record.
	Match(m *Ministry) bool
}

// Args accumulates positional query parameters ($1, $2, ...).
type Args struct {
	values []any
}

// Add binds value and returns its placeholder.
func (a *Args) Add(value any) string {
	a.values = append(a.values, value)
	return "$" + strconv.Itoa(len(a.values))
}

// Values returns the bound parameters in placeholder order.
func (a *Args) Values() []any {
	return a.values
}

// Column is a queryable attribute of a ministry row (alias m) or its joined
// parish (alias p).
type Column struct {
	sql      string
	nullable bool
	scalar   func(*Ministry) any
	list     func(*Ministry) []string
}

func (c Column) expr() string {
	if c.nullable {
		return "COALESCE(" + c.sql + ", '')"
	}
	return c.sql
}

func (c Column) text(m *Ministry) string {
	value, _ := c.scalar(m).(string)
	return value
}

func textColumn(sql string, nullable bool, get func(*Ministry) string) Column {
	return Column{sql: sql, nullable: nullable, scalar: func(m *Ministry) any { return get(m) }}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func parishField(get func(*ParishSummary) string) func(*Ministry) string {
	return func(m *Ministry) string {
		if m.Parish == nil {
			return ""
		}
		return get(m.Parish)
	}
}

// Columns available to predicates.
var (
	ColParishID     = textColumn("m.parish_id", false, func(m *Ministry) string { return m.ParishID })
	ColType         = textColumn("m.type", false, func(m *Ministry) string { return string(m.Type) })
	ColName         = textColumn("m.name", false, func(m *Ministry) string { return m.Name })
	ColDescription  = textColumn("m.description", true, func(m *Ministry) string { return deref(m.Description) })
	ColContactEmail = textColumn("m.contact_email", true, func(m *Ministry) string { return deref(m.ContactEmail) })

	ColParishName  = textColumn("p.name", false, parishField(func(p *ParishSummary) string { return p.Name }))
	ColParishCity  = textColumn("p.city", false, parishField(func(p *ParishSummary) string { return p.City }))
	ColParishState = textColumn("p.state", false, parishField(func(p *ParishSummary) string { return p.State }))
	ColParishZip   = textColumn("p.zip", false, parishField(func(p *ParishSummary) string { return p.Zip }))

	ColIsActive = Column{sql: "m.is_active", scalar: func(m *Ministry) any { return m.IsActive }}
	ColIsPublic = Column{sql: "m.is_public", scalar: func(m *Ministry) any { return m.IsPublic }}

	ColAgeGroups = Column{sql: "m.age_groups", list: func(m *Ministry) []string {
		groups := make([]string, len(m.AgeGroups))
		for i, group := range m.AgeGroups {
			groups[i] = string(group)
		}
		return groups
	}}
	ColLanguages = Column{sql: "m.languages", list: func(m *Ministry) []string { return m.Languages }}
)

// And matches when every child matches. An empty And matches everything.
type And []Predicate

func (p And) Render(args *Args) string {
	if len(p) == 0 {
		return "TRUE"
	}
	return join(p, " AND ", args)
}

func (p And) Match(m *Ministry) bool {
	for _, child := range p {
		if !child.Match(m) {
			return false
		}
	}
	return true
}

// Or matches when any child matches. An empty Or matches nothing.
type Or []Predicate

func (p Or) Render(args *Args) string {
	if len(p) == 0 {
		return "FALSE"
	}
	return join(p, " OR ", args)
}

func (p Or) Match(m *Ministry) bool {
	return slices.ContainsFunc(p, func(child Predicate) bool { return child.Match(m) })
}

// Not negates its child.
type Not struct {
	Predicate Predicate
}

func (p Not) Render(args *Args) string {
	return "NOT (" + p.Predicate.Render(args) + ")"
}

func (p Not) Match(m *Ministry) bool {
	return !p.Predicate.Match(m)
}

func join(children []Predicate, separator string, args *Args) string {
	parts := make([]string, len(children))
	for i, child := range children {
		parts[i] = child.Render(args)
	}
	return "(" + strings.Join(parts, separator) + ")"
}

type equals struct {
	column Column
	value  any
}

// Eq matches when column equals value. value must be a string or a bool.
func Eq(column Column, value any) Predicate {
	return equals{column: column, value: value}
}

func (p equals) Render(args *Args) string {
	return p.column.sql + " = " + args.Add(p.value)
}

func (p equals) Match(m *Ministry) bool {
	return p.column.scalar(m) == p.value
}

type substring struct {
	column     Column
	value      string
	ignoreCase bool
}

// ContainsFold matches a case-insensitive substring.
func ContainsFold(column Column, value string) Predicate {
	return substring{column: column, value: value, ignoreCase: true}
}

// Contains matches a case-sensitive substring.
func Contains(column Column, value string) Predicate {
	return substring{column: column, value: value}
}

func (p substring) Render(args *Args) string {
	operator := " LIKE "
	if p.ignoreCase {
		operator = " ILIKE "
	}
	return p.column.expr() + operator + args.Add(query.Substring(p.value))
}

func (p substring) Match(m *Ministry) bool {
	text := p.column.text(m)
	if p.ignoreCase {
		return strings.Contains(strings.ToLower(text), strings.ToLower(p.value))
	}
	return strings.Contains(text, p.value)
}

type overlap struct {
	column Column
	values []string
}

// Overlaps matches when the array column shares at least one element with values.
func Overlaps(column Column, values []string) Predicate {
	return overlap{column: column, values: values}
}

func (p overlap) Render(args *Args) string {
	return p.column.sql + " && " + args.Add(p.values) + "::text[]"
}

func (p overlap) Match(m *Ministry) bool {
	return slices.ContainsFunc(p.column.list(m), func(item string) bool {
		return slices.Contains(p.values, item)
	})
}

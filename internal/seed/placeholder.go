// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package seed

import (
	"encoding/json"
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/pkg/pointer"
)

var placeholderLanguages = []string{"English", "Spanish", "Vietnamese", "Tagalog", "Polish", "Korean"}

// placeholderTypes excludes TEST so generated rows look like real listings.
var placeholderTypes = func() []ministry.Type {
	types := make([]ministry.Type, 0, len(ministry.AllTypes))
	for _, t := range ministry.AllTypes {
		if t != ministry.TypeTest {
			types = append(types, t)
		}
	}
	return types
}()

/*
Generator produces placeholder ministries.

Every generated ministry carries both placeholder tags (the name prefix and
the contact email), so default listings and search never return it. A
fixed seed reproduces the same names, which keeps reruns idempotent.
*/
type Generator struct {
	faker *gofakeit.Faker
	count int
}

// NewGenerator constructs a [Generator] seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Ministries returns n placeholder inputs without a parish id.
func (g *Generator) Ministries(n int) []ministry.Input {
	inputs := make([]ministry.Input, 0, n)
	for range n {
		inputs = append(inputs, g.ministry())
	}
	return inputs
}

func (g *Generator) ministry() ministry.Input {
	f := g.faker
	g.count++

	ministryType := placeholderTypes[f.Number(0, len(placeholderTypes)-1)]
	name := fmt.Sprintf("%s %s %s #%d", ministry.PlaceholderNameTag, f.Company(), f.BuzzWord(), g.count)

	ageGroups := []string{string(ministry.AllAgeGroups[f.Number(0, len(ministry.AllAgeGroups)-1)])}
	if f.Bool() {
		ageGroups = append(ageGroups, string(ministry.AgeGroupFamilies))
	}

	schedule, _ := json.Marshal(map[string]ministry.Recurrence{
		"weekly": {Day: f.WeekDay(), Time: fmt.Sprintf("%02d:%02d", f.Number(7, 20), f.RandomInt([]int{0, 15, 30, 45}))},
	})

	return ministry.Input{
		Name:         pointer.To(name),
		Description:  pointer.To(f.Sentence(12)),
		Type:         pointer.To(string(ministryType)),
		AgeGroups:    ageGroups,
		Languages:    []string{f.RandomString(placeholderLanguages)},
		Schedule:     schedule,
		ContactName:  pointer.To(f.Name()),
		ContactPhone: pointer.To(f.Phone()),
		ContactEmail: pointer.To(ministry.PlaceholderEmail),
		IsAccessible: pointer.To(f.Bool()),
	}
}

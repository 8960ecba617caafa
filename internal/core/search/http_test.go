// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/core/search"
)

func get(handler http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func TestHandler_Search(t *testing.T) {
	f := setup(t)
	handler := search.NewHandler(f.service).Routes()

	missing := get(handler, "/")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Contains(t, missing.Body.String(), `"VALIDATION_ERROR"`)

	found := get(handler, "/?q=food&ageGroups=ADULTS,SENIORS&languages=Spanish&limit=3")
	require.Equal(t, http.StatusOK, found.Code)
	assert.JSONEq(t, `{"ministries": [], "parishes": [], "totalResults": 0}`, found.Body.String())

	assert.Equal(t, []ministry.AgeGroup{ministry.AgeGroupAdults, ministry.AgeGroupSeniors}, f.ministries.filters[0].AgeGroups)
	assert.Equal(t, 3, f.ministries.pages[0].Limit)
}

func TestHandler_Suggestions(t *testing.T) {
	f := setup(t)
	f.parishes.locations = []string{"Springfield, IL"}
	handler := search.NewHandler(f.service).Routes()

	short := get(handler, "/suggestions?q=s")
	require.Equal(t, http.StatusOK, short.Code)
	assert.JSONEq(t, `[]`, short.Body.String())

	full := get(handler, "/suggestions?q=spring")
	require.Equal(t, http.StatusOK, full.Code)
	assert.JSONEq(t, `[{"type": "location", "text": "Springfield, IL"}]`, full.Body.String())
}

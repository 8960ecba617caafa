// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package parish_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ministryfinder/internal/core/parish"
)

const stMaryBody = `{
	"dioceseId": "D1",
	"name": "St. Mary",
	"address": "1 Church St",
	"city": "Springfield",
	"state": "IL",
	"zip": "62701",
	"massSchedule": {"sunday": ["09:00"]}
}`

func serve(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandler_Lifecycle(t *testing.T) {
	f := setupService("D1")
	handler := parish.NewHandler(f.service).Routes()

	created := serve(t, handler, http.MethodPost, "/", stMaryBody)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var body parish.Parish
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &body))
	assert.JSONEq(t, `{"sunday": ["09:00"]}`, string(body.MassSchedule))

	assert.Equal(t, http.StatusConflict, serve(t, handler, http.MethodPost, "/", stMaryBody).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, handler, http.MethodPost, "/", `{`).Code)

	fetched := serve(t, handler, http.MethodGet, "/"+body.ID, "")
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.Contains(t, fetched.Body.String(), `"diocese"`)

	assert.Equal(t, http.StatusOK, serve(t, handler, http.MethodPut, "/"+body.ID, stMaryBody).Code)
	assert.Equal(t, http.StatusNotFound, serve(t, handler, http.MethodGet, "/missing", "").Code)
	assert.Equal(t, http.StatusNoContent, serve(t, handler, http.MethodDelete, "/"+body.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, serve(t, handler, http.MethodDelete, "/"+body.ID, "").Code)
}

func TestHandler_List(t *testing.T) {
	f := setupService("D1")
	handler := parish.NewHandler(f.service).Routes()

	empty := serve(t, handler, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, empty.Code)
	assert.JSONEq(t, `{"parishes": [], "pagination": {"total": 0, "limit": 50, "offset": 0, "hasMore": false}}`, empty.Body.String())

	serve(t, handler, http.MethodPost, "/", stMaryBody)

	var body struct {
		Parishes []parish.Parish `json:"parishes"`
	}
	filtered := serve(t, handler, http.MethodGet, "/?state=il&dioceseId=D1", "")
	require.NoError(t, json.Unmarshal(filtered.Body.Bytes(), &body))
	require.Len(t, body.Parishes, 1)
	assert.Equal(t, "St. Mary", body.Parishes[0].Name)
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package search

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ministryfinder/internal/core/ministry"
	"github.com/taibuivan/ministryfinder/internal/platform/respond"
	"github.com/taibuivan/ministryfinder/pkg/convert"
	"github.com/taibuivan/ministryfinder/pkg/query"
)

// Handler implements the HTTP layer for search.
type Handler struct {
	service *Service
}

// NewHandler constructs a new search [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the search endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.search)
	router.Get("/suggestions", handler.suggestions)

	return router
}

/*
GET /api/v1/search.

Request:
  - q: string (Required)
  - type: string (Ministry type)
  - location: string (City, state or zip substring)
  - ageGroups: []string (CSV)
  - languages: []string (CSV)
  - limit: int (default 20, max 100)

Response:
  - 200: Result
  - 400: ErrValidation: q missing
*/
func (handler *Handler) search(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	params := Params{
		Q:         values.Get("q"),
		Type:      ministry.Type(values.Get("type")),
		Location:  values.Get("location"),
		Languages: query.List(values, "languages"),
		Limit:     convert.ToIntD(values.Get("limit"), DefaultLimit),
	}

	for _, group := range query.List(values, "ageGroups") {
		params.AgeGroups = append(params.AgeGroups, ministry.AgeGroup(group))
	}

	result, err := handler.service.Search(request.Context(), params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/search/suggestions.

Response:
  - 200: []Suggestion ([] when q has fewer than 2 characters)
*/
func (handler *Handler) suggestions(writer http.ResponseWriter, request *http.Request) {
	suggestions, err := handler.service.Suggestions(request.Context(), request.URL.Query().Get("q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, suggestions)
}

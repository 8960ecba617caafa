// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package parish

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ministryfinder/internal/platform/request"
	"github.com/taibuivan/ministryfinder/internal/platform/respond"
	"github.com/taibuivan/ministryfinder/pkg/pagination"
)

// Handler implements the HTTP layer for parishes.
type Handler struct {
	service *Service
}

// NewHandler constructs a new parish [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the parish endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listParishes)
	router.Get("/{id}", handler.getParish)

	router.Post("/", handler.createParish)
	router.Put("/{id}", handler.updateParish)
	router.Delete("/{id}", handler.deleteParish)

	return router
}

type listResponse struct {
	Parishes   []*Parish       `json:"parishes"`
	Pagination pagination.Meta `json:"pagination"`
}

/*
GET /api/v1/parishes.

Request:
  - dioceseId: string
  - city: string (Exact, case-insensitive)
  - state: string (Exact, case-insensitive)
  - search: string (Substring of name or city)
  - limit, offset: int

Response:
  - 200: listResponse
*/
func (handler *Handler) listParishes(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()
	page := pagination.FromRequest(request)

	filter := Filter{
		DioceseID: params.Get("dioceseId"),
		City:      params.Get("city"),
		State:     params.Get("state"),
		Search:    params.Get("search"),
	}

	parishes, total, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if parishes == nil {
		parishes = []*Parish{}
	}

	respond.OK(writer, listResponse{
		Parishes:   parishes,
		Pagination: pagination.NewMeta(page, total),
	})
}

// GET /api/v1/parishes/{id}. Includes the diocese and visible ministries.
func (handler *Handler) getParish(writer http.ResponseWriter, request *http.Request) {
	parish, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, parish)
}

// POST /api/v1/parishes.
func (handler *Handler) createParish(writer http.ResponseWriter, request *http.Request) {
	var in Input
	if err := requestutil.DecodeJSON(writer, request, &in); err != nil {
		respond.Error(writer, request, err)
		return
	}

	parish, err := handler.service.Create(request.Context(), in)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, parish)
}

// PUT /api/v1/parishes/{id}. Replaces the whole record.
func (handler *Handler) updateParish(writer http.ResponseWriter, request *http.Request) {
	var in Input
	if err := requestutil.DecodeJSON(writer, request, &in); err != nil {
		respond.Error(writer, request, err)
		return
	}

	parish, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), in)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, parish)
}

// DELETE /api/v1/parishes/{id}.
func (handler *Handler) deleteParish(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

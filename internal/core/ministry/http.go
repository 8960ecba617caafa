// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ministry

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ministryfinder/internal/platform/request"
	"github.com/taibuivan/ministryfinder/internal/platform/respond"
	"github.com/taibuivan/ministryfinder/pkg/convert"
	"github.com/taibuivan/ministryfinder/pkg/pagination"
	"github.com/taibuivan/ministryfinder/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for ministry discovery and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new ministry [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the ministry endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Metadata
	router.Get("/types", handler.listTypes)
	router.Get("/age-groups", handler.listAgeGroups)

	// ## Discovery
	router.Get("/", handler.listMinistries)
	router.Get("/{id}", handler.getMinistry)

	// ## Management
	router.Post("/", handler.createMinistry)
	router.Put("/{id}", handler.updateMinistry)
	router.Delete("/{id}", handler.deleteMinistry)

	return router
}

// listResponse is the body of GET /ministries.
type listResponse struct {
	Ministries []*Ministry     `json:"ministries"`
	Pagination pagination.Meta `json:"pagination"`
}

// # Discovery Endpoints

/*
GET /api/v1/ministries.

Description: Lists visible ministries. Inactive, non-public and placeholder
records are hidden unless explicitly requested.

Request:
  - parishId: string
  - type: string (Ministry type)
  - ageGroups: []string (CSV; matches any)
  - languages: []string (CSV; matches any)
  - isActive: bool (default true)
  - isPublic: bool (default true)
  - search: string (Substring of name, description or parish name)
  - includePlaceholders: bool (default false)
  - limit: int (default 50)
  - offset: int (default 0)

Response:
  - 200: listResponse
  - 400: ErrValidation: Unknown type or age group
*/
func (handler *Handler) listMinistries(writer http.ResponseWriter, request *http.Request) {
	params := request.URL.Query()
	page := pagination.FromRequest(request)

	filter := Filter{
		ParishID:            params.Get("parishId"),
		Type:                Type(params.Get("type")),
		Languages:           query.List(params, "languages"),
		IsActive:            convert.ToBoolPtr(params.Get("isActive")),
		IsPublic:            convert.ToBoolPtr(params.Get("isPublic")),
		Search:              params.Get("search"),
		IncludePlaceholders: convert.ToBool(params.Get("includePlaceholders")),
	}

	for _, group := range query.List(params, "ageGroups") {
		filter.AgeGroups = append(filter.AgeGroups, AgeGroup(group))
	}

	ministries, total, err := handler.service.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if ministries == nil {
		ministries = []*Ministry{}
	}

	respond.OK(writer, listResponse{
		Ministries: ministries,
		Pagination: pagination.NewMeta(page, total),
	})
}

/*
GET /api/v1/ministries/{id}.

Response:
  - 200: Ministry: With parish and diocese
  - 404: ErrNotFound
*/
func (handler *Handler) getMinistry(writer http.ResponseWriter, request *http.Request) {
	ministry, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ministry)
}

// GET /api/v1/ministries/types.
func (handler *Handler) listTypes(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.Types())
}

// GET /api/v1/ministries/age-groups.
func (handler *Handler) listAgeGroups(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, handler.service.AgeGroups())
}

// # Mutation Endpoints

/*
POST /api/v1/ministries.

Request:
  - Body: Input

Response:
  - 201: Ministry: With parish
  - 400: ErrValidation: Field errors
  - 409: ErrConflict: Name already used in the parish
*/
func (handler *Handler) createMinistry(writer http.ResponseWriter, request *http.Request) {
	var in Input
	if err := requestutil.DecodeJSON(writer, request, &in); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ministry, err := handler.service.Create(request.Context(), in)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ministry)
}

/*
PUT /api/v1/ministries/{id}.

Description: Replaces the whole record.

Response:
  - 200: Ministry: With parish
  - 400: ErrValidation
  - 404: ErrNotFound
  - 409: ErrConflict
*/
func (handler *Handler) updateMinistry(writer http.ResponseWriter, request *http.Request) {
	var in Input
	if err := requestutil.DecodeJSON(writer, request, &in); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ministry, err := handler.service.Update(request.Context(), requestutil.ID(request, "id"), in)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, ministry)
}

/*
DELETE /api/v1/ministries/{id}.

Response:
  - 204: No Content
  - 404: ErrNotFound
*/
func (handler *Handler) deleteMinistry(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// Copyright (c) 2026 MinistryFinder. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package diocese

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/ministryfinder/internal/platform/request"
	"github.com/taibuivan/ministryfinder/internal/platform/respond"
)

// Handler implements the HTTP layer for dioceses.
type Handler struct {
	service *Service
}

// NewHandler constructs a new diocese [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the diocese endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listDioceses)
	router.Get("/{id}", handler.getDiocese)

	return router
}

// GET /api/v1/dioceses.
func (handler *Handler) listDioceses(writer http.ResponseWriter, request *http.Request) {
	dioceses, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if dioceses == nil {
		dioceses = []*Diocese{}
	}
	respond.OK(writer, dioceses)
}

// GET /api/v1/dioceses/{id}.
func (handler *Handler) getDiocese(writer http.ResponseWriter, request *http.Request) {
	diocese, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, diocese)
}

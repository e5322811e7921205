// Copyright (c) 2026 CityInfo API. All rights reserved.

package city

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/middleware"
	requestutil "github.com/Dagore-Avanade/cityinfo/internal/platform/request"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/respond"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/validate"
	"github.com/Dagore-Avanade/cityinfo/pkg/pagination"
)

// Field length caps enforced at the transport boundary.
const (
	maxNameLen        = 50
	maxDescriptionLen = 200
)

// Handler exposes the catalog endpoints.
type Handler struct {
	service *Service
}

// NewHandler creates the catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the catalog endpoints on a chi sub-router.
//
// Reads are public; every mutation requires an authenticated caller.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", h.handleListCities)
	router.Get("/{cityID}", h.handleGetCity)

	router.Route("/{cityID}/pointsofinterest", func(r chi.Router) {
		r.Get("/", h.handleListPointsOfInterest)
		r.Get("/{poiID}", h.handleGetPointOfInterest)

		r.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth)
			protected.Post("/", h.handleCreatePointOfInterest)
			protected.Put("/{poiID}", h.handleUpdatePointOfInterest)
			protected.Patch("/{poiID}", h.handlePatchPointOfInterest)
			protected.Delete("/{poiID}", h.handleDeletePointOfInterest)
		})
	})

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)
		protected.Post("/", h.handleCreateCity)
	})

	return router
}

// handleListCities returns a filtered, paginated city listing.
//
// GET /api/v1/cities?name=&search=&pageNumber=&pageSize=
//
// Pagination metadata travels in the X-Pagination response header.
func (h *Handler) handleListCities(writer http.ResponseWriter, request *http.Request) {
	queryValues := request.URL.Query()
	filter := Filter{
		Name:   queryValues.Get("name"),
		Search: queryValues.Get("search"),
	}
	params := pagination.FromRequest(request)

	cities, metadata, err := h.service.ListCities(request.Context(), filter, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cities, metadata)
}

// handleGetCity returns one city, optionally with its points of interest.
//
// GET /api/v1/cities/{cityID}?includePointsOfInterest=true
func (h *Handler) handleGetCity(writer http.ResponseWriter, request *http.Request) {
	cityID, err := requestutil.IntParam(request, "cityID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	includePOIs := requestutil.BoolQuery(request, "includePointsOfInterest")

	result, err := h.service.GetCity(request.Context(), cityID, includePOIs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// handleCreateCity creates a city.
//
// POST /api/v1/cities
func (h *Handler) handleCreateCity(writer http.ResponseWriter, request *http.Request) {
	var input CityInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateCatalogNames(input.Name, input.Description); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := h.service.CreateCity(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	location := fmt.Sprintf("/api/v1/cities/%d", created.ID)
	respond.Created(writer, location, created)
}

// handleListPointsOfInterest lists all POIs of a city.
//
// GET /api/v1/cities/{cityID}/pointsofinterest
func (h *Handler) handleListPointsOfInterest(writer http.ResponseWriter, request *http.Request) {
	cityID, err := requestutil.IntParam(request, "cityID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	pois, err := h.service.ListPointsOfInterest(request.Context(), cityID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pois)
}

// handleGetPointOfInterest fetches one POI.
//
// GET /api/v1/cities/{cityID}/pointsofinterest/{poiID}
func (h *Handler) handleGetPointOfInterest(writer http.ResponseWriter, request *http.Request) {
	cityID, poiID, err := poiParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	poi, err := h.service.GetPointOfInterest(request.Context(), cityID, poiID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, poi)
}

// handleCreatePointOfInterest creates a POI under a city.
//
// POST /api/v1/cities/{cityID}/pointsofinterest
func (h *Handler) handleCreatePointOfInterest(writer http.ResponseWriter, request *http.Request) {
	cityID, err := requestutil.IntParam(request, "cityID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PointOfInterestInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateCatalogNames(input.Name, input.Description); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := h.service.CreatePointOfInterest(request.Context(), cityID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	location := fmt.Sprintf("/api/v1/cities/%d/pointsofinterest/%d", cityID, created.ID)
	respond.Created(writer, location, created)
}

// handleUpdatePointOfInterest fully replaces a POI.
//
// PUT /api/v1/cities/{cityID}/pointsofinterest/{poiID}
func (h *Handler) handleUpdatePointOfInterest(writer http.ResponseWriter, request *http.Request) {
	cityID, poiID, err := poiParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PointOfInterestInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := validateCatalogNames(input.Name, input.Description); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := h.service.UpdatePointOfInterest(request.Context(), cityID, poiID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// handlePatchPointOfInterest partially updates a POI. Absent fields keep
// their stored values.
//
// PATCH /api/v1/cities/{cityID}/pointsofinterest/{poiID}
func (h *Handler) handlePatchPointOfInterest(writer http.ResponseWriter, request *http.Request) {
	cityID, poiID, err := poiParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch PointOfInterestPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if patch.Name != nil {
		validator.MaxLen("name", *patch.Name, maxNameLen)
	}
	if patch.Description != nil {
		validator.MaxLen("description", *patch.Description, maxDescriptionLen)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	patched, err := h.service.PatchPointOfInterest(request.Context(), cityID, poiID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, patched)
}

// handleDeletePointOfInterest removes a POI.
//
// DELETE /api/v1/cities/{cityID}/pointsofinterest/{poiID}
func (h *Handler) handleDeletePointOfInterest(writer http.ResponseWriter, request *http.Request) {
	cityID, poiID, err := poiParams(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := h.service.DeletePointOfInterest(request.Context(), cityID, poiID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// poiParams extracts the cityID/poiID path pair.
func poiParams(request *http.Request) (int, int, error) {
	cityID, err := requestutil.IntParam(request, "cityID")
	if err != nil {
		return 0, 0, err
	}
	poiID, err := requestutil.IntParam(request, "poiID")
	if err != nil {
		return 0, 0, err
	}
	return cityID, poiID, nil
}

// validateCatalogNames applies the shared name/description rules used by
// city and POI creation.
func validateCatalogNames(name, description string) error {
	validator := &validate.Validator{}
	validator.
		Required("name", name).
		MaxLen("name", name, maxNameLen).
		MaxLen("description", description, maxDescriptionLen)
	return validator.Err()
}

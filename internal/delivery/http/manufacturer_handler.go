package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/pagination"
	"github.com/frontandrew/taxi/internal/usecase/manufacturer"
	"github.com/google/uuid"
)

// ManufacturerService - операции над производителями, нужные handler'у
type ManufacturerService interface {
	Create(ctx context.Context, req *manufacturer.ManufacturerRequest) (*domain.Manufacturer, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Manufacturer, error)
	Update(ctx context.Context, id uuid.UUID, req *manufacturer.ManufacturerRequest) (*domain.Manufacturer, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search, page string) (*pagination.Page[*domain.Manufacturer], error)
	Search(ctx context.Context, query string) ([]*domain.Manufacturer, error)
}

// ManufacturerHandler обрабатывает запросы производителей
type ManufacturerHandler struct {
	manufacturerService ManufacturerService
	logger              logger.Logger
}

// NewManufacturerHandler создает новый handler
func NewManufacturerHandler(manufacturerService ManufacturerService, logger logger.Logger) *ManufacturerHandler {
	return &ManufacturerHandler{
		manufacturerService: manufacturerService,
		logger:              logger,
	}
}

// List возвращает страницу производителей
// GET /api/v1/manufacturers?search=&page=
func (h *ManufacturerHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	page, err := h.manufacturerService.List(r.Context(), search, r.URL.Query().Get("page"))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list manufacturers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    page,
		"search":  search,
	})
}

// Search возвращает всех производителей, подходящих под запрос
// GET /api/v1/manufacturers/search?q=
func (h *ManufacturerHandler) Search(w http.ResponseWriter, r *http.Request) {
	manufacturers, err := h.manufacturerService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to search manufacturers")
		return
	}

	respondData(w, http.StatusOK, manufacturers)
}

// Create создает производителя
// POST /api/v1/manufacturers
func (h *ManufacturerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req manufacturer.ManufacturerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.manufacturerService.Create(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to create manufacturer")
		return
	}

	respondRedirect(w, http.StatusCreated, created, manufacturerListURL)
}

// Get возвращает производителя по ID
// GET /api/v1/manufacturers/{id}
func (h *ManufacturerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrManufacturerNotFound.Error())
		return
	}

	m, err := h.manufacturerService.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to get manufacturer")
		return
	}

	respondData(w, http.StatusOK, m)
}

// Update заменяет название и страну производителя
// PUT /api/v1/manufacturers/{id}
func (h *ManufacturerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrManufacturerNotFound.Error())
		return
	}

	var req manufacturer.ManufacturerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.manufacturerService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to update manufacturer")
		return
	}

	respondRedirect(w, http.StatusOK, updated, manufacturerListURL)
}

// Delete удаляет производителя
// DELETE /api/v1/manufacturers/{id}
func (h *ManufacturerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrManufacturerNotFound.Error())
		return
	}

	if err := h.manufacturerService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, h.logger, err, "Failed to delete manufacturer")
		return
	}

	respondRedirect(w, http.StatusOK, nil, manufacturerListURL)
}

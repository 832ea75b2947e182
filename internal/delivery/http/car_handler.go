package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/pagination"
	"github.com/frontandrew/taxi/internal/usecase/car"
	"github.com/google/uuid"
)

// CarService - операции над автомобилями, нужные handler'у
type CarService interface {
	Create(ctx context.Context, req *car.CarRequest) (*domain.Car, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	Update(ctx context.Context, id uuid.UUID, req *car.CarRequest) (*domain.Car, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ToggleAssign(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	List(ctx context.Context, search, page string) (*pagination.Page[*domain.Car], error)
	Search(ctx context.Context, query string) ([]*domain.Car, error)
	DriverIDs(ctx context.Context, carID uuid.UUID) ([]uuid.UUID, error)
	AddDriver(ctx context.Context, carID, driverID uuid.UUID) error
	RemoveDriver(ctx context.Context, carID, driverID uuid.UUID) error
}

// CarHandler обрабатывает запросы автомобилей
type CarHandler struct {
	carService CarService
	logger     logger.Logger
}

// NewCarHandler создает новый handler
func NewCarHandler(carService CarService, logger logger.Logger) *CarHandler {
	return &CarHandler{
		carService: carService,
		logger:     logger,
	}
}

// List возвращает страницу автомобилей вместе с производителями
// GET /api/v1/cars?search=&page=
func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	page, err := h.carService.List(r.Context(), search, r.URL.Query().Get("page"))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list cars")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    page,
		"search":  search,
	})
}

// Search возвращает все автомобили, подходящие под запрос
// GET /api/v1/cars/search?q=
func (h *CarHandler) Search(w http.ResponseWriter, r *http.Request) {
	cars, err := h.carService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to search cars")
		return
	}

	respondData(w, http.StatusOK, cars)
}

// Create создает автомобиль
// POST /api/v1/cars
func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req car.CarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.carService.Create(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to create car")
		return
	}

	respondRedirect(w, http.StatusCreated, created, carListURL)
}

// Get возвращает автомобиль с производителем и водителями
// GET /api/v1/cars/{id}
func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.carID(w, r)
	if !ok {
		return
	}

	c, err := h.carService.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to get car")
		return
	}

	respondData(w, http.StatusOK, c)
}

// Update заменяет модель, производителя и (если передан) набор водителей
// PUT /api/v1/cars/{id}
func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.carID(w, r)
	if !ok {
		return
	}

	var req car.CarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.carService.Update(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to update car")
		return
	}

	respondRedirect(w, http.StatusOK, updated, carListURL)
}

// Delete удаляет автомобиль
// DELETE /api/v1/cars/{id}
func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.carID(w, r)
	if !ok {
		return
	}

	if err := h.carService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, h.logger, err, "Failed to delete car")
		return
	}

	respondRedirect(w, http.StatusOK, nil, carListURL)
}

// ToggleAssign инвертирует флаг is_assigned
// POST /api/v1/cars/{id}/toggle-assign
func (h *CarHandler) ToggleAssign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.carID(w, r)
	if !ok {
		return
	}

	c, err := h.carService.ToggleAssign(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to toggle car assignment")
		return
	}

	respondRedirect(w, http.StatusOK, c, carListURL)
}

// Drivers возвращает ID водителей автомобиля
// GET /api/v1/cars/{id}/drivers
func (h *CarHandler) Drivers(w http.ResponseWriter, r *http.Request) {
	id, ok := h.carID(w, r)
	if !ok {
		return
	}

	ids, err := h.carService.DriverIDs(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to get car drivers")
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"driver_ids": ids,
		"count":      len(ids),
	})
}

// AddDriver привязывает водителя к автомобилю
// POST /api/v1/cars/{id}/drivers/{driver_id}
func (h *CarHandler) AddDriver(w http.ResponseWriter, r *http.Request) {
	carID, driverID, ok := h.linkIDs(w, r)
	if !ok {
		return
	}

	if err := h.carService.AddDriver(r.Context(), carID, driverID); err != nil {
		respondDomainError(w, h.logger, err, "Failed to add driver to car")
		return
	}

	respondRedirect(w, http.StatusOK, nil, carListURL+"/"+carID.String())
}

// RemoveDriver отвязывает водителя от автомобиля
// DELETE /api/v1/cars/{id}/drivers/{driver_id}
func (h *CarHandler) RemoveDriver(w http.ResponseWriter, r *http.Request) {
	carID, driverID, ok := h.linkIDs(w, r)
	if !ok {
		return
	}

	if err := h.carService.RemoveDriver(r.Context(), carID, driverID); err != nil {
		respondDomainError(w, h.logger, err, "Failed to remove driver from car")
		return
	}

	respondRedirect(w, http.StatusOK, nil, carListURL+"/"+carID.String())
}

func (h *CarHandler) carID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrCarNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *CarHandler) linkIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	carID, ok := h.carID(w, r)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	driverID, err := uuidParam(r, "driver_id")
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrDriverNotFound.Error())
		return uuid.Nil, uuid.Nil, false
	}
	return carID, driverID, true
}

package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/pagination"
	"github.com/frontandrew/taxi/internal/usecase/driver"
	"github.com/google/uuid"
)

// DriverService - операции над водителями, нужные handler'у
type DriverService interface {
	Create(ctx context.Context, req *driver.CreateDriverRequest) (*domain.Driver, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Driver, error)
	UpdateLicense(ctx context.Context, id uuid.UUID, req *driver.UpdateLicenseRequest) (*domain.Driver, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search, page string) (*pagination.Page[*domain.Driver], error)
	Search(ctx context.Context, query string) ([]*domain.Driver, error)
}

// DriverHandler обрабатывает запросы водителей
type DriverHandler struct {
	driverService DriverService
	logger        logger.Logger
}

// NewDriverHandler создает новый handler
func NewDriverHandler(driverService DriverService, logger logger.Logger) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		logger:        logger,
	}
}

// List возвращает страницу водителей
// GET /api/v1/drivers?search=&page=
func (h *DriverHandler) List(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	page, err := h.driverService.List(r.Context(), search, r.URL.Query().Get("page"))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list drivers")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    page,
		"search":  search,
	})
}

// Search возвращает всех водителей, подходящих под запрос
// GET /api/v1/drivers/search?q=
func (h *DriverHandler) Search(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.driverService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to search drivers")
		return
	}

	respondData(w, http.StatusOK, drivers)
}

// Create регистрирует водителя
// POST /api/v1/drivers
func (h *DriverHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req driver.CreateDriverRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.driverService.Create(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to create driver")
		return
	}

	respondRedirect(w, http.StatusCreated, created, driverListURL)
}

// Get возвращает водителя вместе с его автомобилями
// GET /api/v1/drivers/{id}
func (h *DriverHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrDriverNotFound.Error())
		return
	}

	d, err := h.driverService.Get(r.Context(), id)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to get driver")
		return
	}

	respondData(w, http.StatusOK, d)
}

// UpdateLicense меняет только номер лицензии; прочие поля тела игнорируются
// PUT /api/v1/drivers/{id}/license
func (h *DriverHandler) UpdateLicense(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrDriverNotFound.Error())
		return
	}

	var req driver.UpdateLicenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.driverService.UpdateLicense(r.Context(), id, &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to update license number")
		return
	}

	respondRedirect(w, http.StatusOK, updated, driverListURL)
}

// Delete удаляет водителя
// DELETE /api/v1/drivers/{id}
func (h *DriverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondError(w, http.StatusNotFound, domain.ErrDriverNotFound.Error())
		return
	}

	if err := h.driverService.Delete(r.Context(), id); err != nil {
		respondDomainError(w, h.logger, err, "Failed to delete driver")
		return
	}

	respondRedirect(w, http.StatusOK, nil, driverListURL)
}

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/pagination"
	"github.com/frontandrew/taxi/internal/usecase/car"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCarHandler_List(t *testing.T) {
	m := &domain.Manufacturer{ID: uuid.New(), Name: "Toyota", Country: "Japan"}
	page := &pagination.Page[*domain.Car]{
		Items: []*domain.Car{
			{ID: uuid.New(), Model: "Camry", ManufacturerID: m.ID, Manufacturer: m},
		},
		CurrentPage: 1,
		PageSize:    5,
		TotalRows:   1,
		TotalPages:  1,
	}

	svc := new(MockCarService)
	svc.On("List", mock.Anything, "cam", "last").Return(page, nil)
	handler := NewCarHandler(svc, logger.NewNoop())

	req := newRequest(t, http.MethodGet, "/api/v1/cars?search=cam&page=last", nil, nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decodeResponse(t, w)
	AssertSuccess(t, response)
	assert.Equal(t, "cam", response["search"])

	items := response["data"].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "Camry", first["model"])
	assert.Equal(t, "Toyota", first["manufacturer"].(map[string]interface{})["name"])
	svc.AssertExpectations(t)
}

func TestCarHandler_Create(t *testing.T) {
	manufacturerID := uuid.New()
	driverID := uuid.New()

	tests := []struct {
		name           string
		body           interface{}
		mockSetup      func(*MockCarService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name: "Создание с водителями",
			body: map[string]interface{}{
				"model":           "Camry",
				"manufacturer_id": manufacturerID.String(),
				"driver_ids":      []string{driverID.String()},
			},
			mockSetup: func(m *MockCarService) {
				m.On("Create", mock.Anything, &car.CarRequest{
					Model:          "Camry",
					ManufacturerID: manufacturerID.String(),
					DriverIDs:      []string{driverID.String()},
				}).Return(&domain.Car{
					ID:             uuid.New(),
					Model:          "Camry",
					ManufacturerID: manufacturerID,
					DriverIDs:      []uuid.UUID{driverID},
				}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				AssertSuccess(t, response)
				assert.Equal(t, "/api/v1/cars", response["redirect_to"])
				data := response["data"].(map[string]interface{})
				assert.Equal(t, []interface{}{driverID.String()}, data["driver_ids"])
			},
		},
		{
			name: "Неизвестный производитель",
			body: map[string]interface{}{
				"model":           "Camry",
				"manufacturer_id": uuid.New().String(),
			},
			mockSetup: func(m *MockCarService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, domain.NewValidationError("manufacturer_id", "select a valid choice"))
			},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				AssertError(t, response)
				fields := response["fields"].(map[string]interface{})
				assert.Equal(t, "select a valid choice", fields["manufacturer_id"])
			},
		},
		{
			name:           "Пустое тело",
			body:           "",
			mockSetup:      func(m *MockCarService) {},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				AssertError(t, response)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCarService)
			tt.mockSetup(svc)
			handler := NewCarHandler(svc, logger.NewNoop())

			req := newRequest(t, http.MethodPost, "/api/v1/cars", tt.body, nil)
			w := httptest.NewRecorder()
			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, decodeResponse(t, w))
			svc.AssertExpectations(t)
		})
	}
}

func TestCarHandler_Update_KeepsDriversWhenOmitted(t *testing.T) {
	id := uuid.New()
	manufacturerID := uuid.New()

	svc := new(MockCarService)
	svc.On("Update", mock.Anything, id, mock.MatchedBy(func(req *car.CarRequest) bool {
		return req.Model == "Corolla" && req.DriverIDs == nil
	})).Return(&domain.Car{ID: id, Model: "Corolla", ManufacturerID: manufacturerID}, nil)
	handler := NewCarHandler(svc, logger.NewNoop())

	req := newRequest(t, http.MethodPut, "/api/v1/cars/"+id.String(), map[string]interface{}{
		"model":           "Corolla",
		"manufacturer_id": manufacturerID.String(),
	}, map[string]string{"id": id.String()})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestCarHandler_Update_ClearsDriversWithEmptyList(t *testing.T) {
	id := uuid.New()

	svc := new(MockCarService)
	svc.On("Update", mock.Anything, id, mock.MatchedBy(func(req *car.CarRequest) bool {
		return req.DriverIDs != nil && len(req.DriverIDs) == 0
	})).Return(&domain.Car{ID: id, Model: "Corolla"}, nil)
	handler := NewCarHandler(svc, logger.NewNoop())

	req := newRequest(t, http.MethodPut, "/api/v1/cars/"+id.String(), map[string]interface{}{
		"model":           "Corolla",
		"manufacturer_id": uuid.New().String(),
		"driver_ids":      []string{},
	}, map[string]string{"id": id.String()})
	w := httptest.NewRecorder()
	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestCarHandler_ToggleAssign(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name           string
		idParam        string
		mockSetup      func(*MockCarService)
		expectedStatus int
		checkResponse  func(*testing.T, map[string]interface{})
	}{
		{
			name:    "Флаг инвертирован",
			idParam: id.String(),
			mockSetup: func(m *MockCarService) {
				m.On("ToggleAssign", mock.Anything, id).Return(&domain.Car{ID: id, Model: "Camry", IsAssigned: true}, nil)
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				AssertSuccess(t, response)
				assert.Equal(t, "/api/v1/cars", response["redirect_to"])
				assert.Equal(t, true, response["data"].(map[string]interface{})["is_assigned"])
			},
		},
		{
			name:    "Автомобиль не найден",
			idParam: id.String(),
			mockSetup: func(m *MockCarService) {
				m.On("ToggleAssign", mock.Anything, id).Return(nil, domain.ErrCarNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				AssertError(t, response)
				assert.Equal(t, "car not found", response["error"])
			},
		},
		{
			name:           "Невалидный ID",
			idParam:        "42",
			mockSetup:      func(m *MockCarService) {},
			expectedStatus: http.StatusNotFound,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				AssertError(t, response)
				assert.Equal(t, "car not found", response["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCarService)
			tt.mockSetup(svc)
			handler := NewCarHandler(svc, logger.NewNoop())

			req := newRequest(t, http.MethodPost, "/api/v1/cars/"+tt.idParam+"/toggle-assign", nil, map[string]string{"id": tt.idParam})
			w := httptest.NewRecorder()
			handler.ToggleAssign(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, decodeResponse(t, w))
			svc.AssertExpectations(t)
		})
	}
}

func TestCarHandler_Drivers(t *testing.T) {
	id := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	svc := new(MockCarService)
	svc.On("DriverIDs", mock.Anything, id).Return(ids, nil)
	handler := NewCarHandler(svc, logger.NewNoop())

	req := newRequest(t, http.MethodGet, "/api/v1/cars/"+id.String()+"/drivers", nil, map[string]string{"id": id.String()})
	w := httptest.NewRecorder()
	handler.Drivers(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["count"])
	assert.Len(t, data["driver_ids"], 2)
	svc.AssertExpectations(t)
}

func TestCarHandler_AddDriver(t *testing.T) {
	carID := uuid.New()
	driverID := uuid.New()

	tests := []struct {
		name           string
		driverParam    string
		mockSetup      func(*MockCarService)
		expectedStatus int
	}{
		{
			name:        "Водитель привязан",
			driverParam: driverID.String(),
			mockSetup: func(m *MockCarService) {
				m.On("AddDriver", mock.Anything, carID, driverID).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "Водитель не найден",
			driverParam: driverID.String(),
			mockSetup: func(m *MockCarService) {
				m.On("AddDriver", mock.Anything, carID, driverID).Return(domain.ErrDriverNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Невалидный ID водителя",
			driverParam:    "bad",
			mockSetup:      func(m *MockCarService) {},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCarService)
			tt.mockSetup(svc)
			handler := NewCarHandler(svc, logger.NewNoop())

			req := newRequest(t, http.MethodPost, "/api/v1/cars/"+carID.String()+"/drivers/"+tt.driverParam, nil,
				map[string]string{"id": carID.String(), "driver_id": tt.driverParam})
			w := httptest.NewRecorder()
			handler.AddDriver(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "/api/v1/cars/"+carID.String(), decodeResponse(t, w)["redirect_to"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestCarHandler_RemoveDriver(t *testing.T) {
	carID := uuid.New()
	driverID := uuid.New()

	svc := new(MockCarService)
	svc.On("RemoveDriver", mock.Anything, carID, driverID).Return(domain.ErrCarDriverNotFound)
	handler := NewCarHandler(svc, logger.NewNoop())

	req := newRequest(t, http.MethodDelete, "/api/v1/cars/"+carID.String()+"/drivers/"+driverID.String(), nil,
		map[string]string{"id": carID.String(), "driver_id": driverID.String()})
	w := httptest.NewRecorder()
	handler.RemoveDriver(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "driver is not assigned to this car", decodeResponse(t, w)["error"])
	svc.AssertExpectations(t)
}

func TestCarHandler_Delete_InternalError(t *testing.T) {
	id := uuid.New()

	svc := new(MockCarService)
	svc.On("Delete", mock.Anything, id).Return(errors.New("connection reset"))
	handler := NewCarHandler(svc, logger.NewNoop())

	req := newRequest(t, http.MethodDelete, "/api/v1/cars/"+id.String(), nil, map[string]string{"id": id.String()})
	w := httptest.NewRecorder()
	handler.Delete(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	response := decodeResponse(t, w)
	AssertError(t, response)
	assert.Equal(t, "Failed to delete car", response["error"])
	svc.AssertExpectations(t)
}

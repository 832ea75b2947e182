package http

import (
	"context"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/pagination"
	"github.com/frontandrew/taxi/internal/pkg/session"
	"github.com/frontandrew/taxi/internal/usecase/auth"
	"github.com/frontandrew/taxi/internal/usecase/car"
	"github.com/frontandrew/taxi/internal/usecase/dashboard"
	"github.com/frontandrew/taxi/internal/usecase/driver"
	"github.com/frontandrew/taxi/internal/usecase/manufacturer"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockManufacturerService - мок для manufacturer service
type MockManufacturerService struct {
	mock.Mock
}

func (m *MockManufacturerService) Create(ctx context.Context, req *manufacturer.ManufacturerRequest) (*domain.Manufacturer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manufacturer), args.Error(1)
}

func (m *MockManufacturerService) Get(ctx context.Context, id uuid.UUID) (*domain.Manufacturer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manufacturer), args.Error(1)
}

func (m *MockManufacturerService) Update(ctx context.Context, id uuid.UUID, req *manufacturer.ManufacturerRequest) (*domain.Manufacturer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Manufacturer), args.Error(1)
}

func (m *MockManufacturerService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockManufacturerService) List(ctx context.Context, search, page string) (*pagination.Page[*domain.Manufacturer], error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[*domain.Manufacturer]), args.Error(1)
}

func (m *MockManufacturerService) Search(ctx context.Context, query string) ([]*domain.Manufacturer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Manufacturer), args.Error(1)
}

// MockCarService - мок для car service
type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) Create(ctx context.Context, req *car.CarRequest) (*domain.Car, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarService) Get(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarService) Update(ctx context.Context, id uuid.UUID, req *car.CarRequest) (*domain.Car, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCarService) ToggleAssign(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

func (m *MockCarService) List(ctx context.Context, search, page string) (*pagination.Page[*domain.Car], error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[*domain.Car]), args.Error(1)
}

func (m *MockCarService) Search(ctx context.Context, query string) ([]*domain.Car, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Car), args.Error(1)
}

func (m *MockCarService) DriverIDs(ctx context.Context, carID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCarService) AddDriver(ctx context.Context, carID, driverID uuid.UUID) error {
	return m.Called(ctx, carID, driverID).Error(0)
}

func (m *MockCarService) RemoveDriver(ctx context.Context, carID, driverID uuid.UUID) error {
	return m.Called(ctx, carID, driverID).Error(0)
}

// MockDriverService - мок для driver service
type MockDriverService struct {
	mock.Mock
}

func (m *MockDriverService) Create(ctx context.Context, req *driver.CreateDriverRequest) (*domain.Driver, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverService) Get(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverService) UpdateLicense(ctx context.Context, id uuid.UUID, req *driver.UpdateLicenseRequest) (*domain.Driver, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

func (m *MockDriverService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockDriverService) List(ctx context.Context, search, page string) (*pagination.Page[*domain.Driver], error) {
	args := m.Called(ctx, search, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.Page[*domain.Driver]), args.Error(1)
}

func (m *MockDriverService) Search(ctx context.Context, query string) ([]*domain.Driver, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Driver), args.Error(1)
}

// MockDashboardService - мок для dashboard service
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Index(ctx context.Context, sess session.Session) (*dashboard.Summary, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Summary), args.Error(1)
}

// MockAuthService - мок для auth service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, req *auth.RefreshRequest) (*auth.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, req *auth.RefreshRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthService) GetDriverByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Driver), args.Error(1)
}

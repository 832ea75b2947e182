package car

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/pagination"
	"github.com/frontandrew/taxi/internal/pkg/validate"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/google/uuid"
)

const invalidChoice = "select a valid choice"

// CarRequest - данные формы автомобиля (создание и полная замена).
// DriverIDs == nil означает, что набор водителей не меняется.
type CarRequest struct {
	Model          string   `json:"model" validate:"required,max=255"`
	ManufacturerID string   `json:"manufacturer_id" validate:"required,uuid"`
	DriverIDs      []string `json:"driver_ids" validate:"omitempty,dive,uuid"`
}

// Service содержит бизнес-логику работы с автомобилями
type Service struct {
	carRepo          repository.CarRepository
	carDriverRepo    repository.CarDriverRepository
	manufacturerRepo repository.ManufacturerRepository
	driverRepo       repository.DriverRepository
	pageSize         int
	logger           logger.Logger
}

// NewService создает новый экземпляр CarService
func NewService(
	carRepo repository.CarRepository,
	carDriverRepo repository.CarDriverRepository,
	manufacturerRepo repository.ManufacturerRepository,
	driverRepo repository.DriverRepository,
	pageSize int,
	logger logger.Logger,
) *Service {
	return &Service{
		carRepo:          carRepo,
		carDriverRepo:    carDriverRepo,
		manufacturerRepo: manufacturerRepo,
		driverRepo:       driverRepo,
		pageSize:         pageSize,
		logger:           logger,
	}
}

// Create создает автомобиль и, если указаны, привязывает водителей
func (s *Service) Create(ctx context.Context, req *CarRequest) (*domain.Car, error) {
	car, err := s.carFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		if errors.Is(err, domain.ErrIntegrityViolation) {
			return nil, err
		}
		s.logger.Error("Failed to create car", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	s.logger.Info("Car created", map[string]interface{}{
		"car_id":  car.ID,
		"model":   car.Model,
		"drivers": len(car.DriverIDs),
	})

	return s.Get(ctx, car.ID)
}

// Get возвращает автомобиль вместе с производителем и водителями
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	driverIDs, err := s.carDriverRepo.DriverIDs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get car drivers: %w", err)
	}

	drivers, err := s.driverRepo.GetByIDs(ctx, driverIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get car drivers: %w", err)
	}

	car.DriverIDs = driverIDs
	car.Drivers = drivers
	return car, nil
}

// Update заменяет модель и производителя; набор водителей - только если он передан
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *CarRequest) (*domain.Car, error) {
	if _, err := s.carRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	car, err := s.carFromRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	car.ID = id

	if err := s.carRepo.Update(ctx, car); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrIntegrityViolation) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update car: %w", err)
	}

	s.logger.Info("Car updated", map[string]interface{}{
		"car_id":          id,
		"drivers_changed": car.DriverIDs != nil,
	})

	return s.Get(ctx, id)
}

// Delete удаляет автомобиль вместе с привязками водителей
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.carRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete car: %w", err)
	}

	s.logger.Info("Car deleted", map[string]interface{}{
		"car_id": id,
	})

	return nil
}

// ToggleAssign инвертирует флаг is_assigned автомобиля
func (s *Service) ToggleAssign(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	assigned := car.ToggleAssigned()
	if err := s.carRepo.SetAssigned(ctx, id, assigned); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to toggle car assignment: %w", err)
	}

	s.logger.Info("Car assignment toggled", map[string]interface{}{
		"car_id":      id,
		"is_assigned": assigned,
	})

	return car, nil
}

// List возвращает страницу автомобилей, отфильтрованных по модели
func (s *Service) List(ctx context.Context, search, page string) (*pagination.Page[*domain.Car], error) {
	return pagination.List[*domain.Car](ctx, s.carRepo, domain.NewSearchFilter(search), page, s.pageSize)
}

// Search возвращает все автомобили, модель которых содержит query
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Car, error) {
	cars, err := s.carRepo.List(ctx, domain.NewSearchFilter(query), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to search cars: %w", err)
	}
	return cars, nil
}

// DriverIDs возвращает водителей, привязанных к автомобилю
func (s *Service) DriverIDs(ctx context.Context, carID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return nil, err
	}
	return s.carDriverRepo.DriverIDs(ctx, carID)
}

// AddDriver привязывает водителя к автомобилю; повторная привязка ничего не меняет
func (s *Service) AddDriver(ctx context.Context, carID, driverID uuid.UUID) error {
	if _, err := s.carRepo.GetByID(ctx, carID); err != nil {
		return err
	}
	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return err
	}

	if err := s.carDriverRepo.Add(ctx, carID, driverID); err != nil {
		if errors.Is(err, domain.ErrIntegrityViolation) {
			return err
		}
		return fmt.Errorf("failed to add driver to car: %w", err)
	}

	s.logger.Info("Driver added to car", map[string]interface{}{
		"car_id":    carID,
		"driver_id": driverID,
	})

	return nil
}

// RemoveDriver отвязывает водителя от автомобиля
func (s *Service) RemoveDriver(ctx context.Context, carID, driverID uuid.UUID) error {
	if err := s.carDriverRepo.Remove(ctx, carID, driverID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove driver from car: %w", err)
	}

	s.logger.Info("Driver removed from car", map[string]interface{}{
		"car_id":    carID,
		"driver_id": driverID,
	})

	return nil
}

// carFromRequest проверяет форму и ссылки на производителя и водителей
func (s *Service) carFromRequest(ctx context.Context, req *CarRequest) (*domain.Car, error) {
	req.Model = strings.TrimSpace(req.Model)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	manufacturerID, err := uuid.Parse(req.ManufacturerID)
	if err != nil {
		return nil, domain.NewValidationError("manufacturer_id", "enter a valid UUID")
	}
	car := &domain.Car{
		Model:          req.Model,
		ManufacturerID: manufacturerID,
	}

	if _, err := s.manufacturerRepo.GetByID(ctx, car.ManufacturerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("manufacturer_id", invalidChoice)
		}
		return nil, fmt.Errorf("failed to get manufacturer: %w", err)
	}

	if req.DriverIDs == nil {
		return car, nil
	}

	ids := make([]uuid.UUID, 0, len(req.DriverIDs))
	for _, raw := range req.DriverIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, domain.NewValidationError("driver_ids", "enter a valid UUID")
		}
		ids = append(ids, id)
	}
	car.DriverIDs = domain.UniqueDriverIDs(ids)

	drivers, err := s.driverRepo.GetByIDs(ctx, car.DriverIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get drivers: %w", err)
	}
	if len(drivers) != len(car.DriverIDs) {
		return nil, domain.NewValidationError("driver_ids", invalidChoice)
	}

	return car, nil
}

package manufacturer

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

// ManufacturerRequest - данные формы производителя (создание и полная замена)
type ManufacturerRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Country string `json:"country" validate:"required,max=255"`
}

func (r *ManufacturerRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Country = strings.TrimSpace(r.Country)
}

// Service содержит бизнес-логику работы с производителями
type Service struct {
	manufacturerRepo repository.ManufacturerRepository
	pageSize         int
	logger           logger.Logger
}

// NewService создает новый экземпляр ManufacturerService
func NewService(
	manufacturerRepo repository.ManufacturerRepository,
	pageSize int,
	logger logger.Logger,
) *Service {
	return &Service{
		manufacturerRepo: manufacturerRepo,
		pageSize:         pageSize,
		logger:           logger,
	}
}

// Create создает производителя
func (s *Service) Create(ctx context.Context, req *ManufacturerRequest) (*domain.Manufacturer, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	manufacturer := &domain.Manufacturer{
		Name:    req.Name,
		Country: req.Country,
	}

	if err := s.manufacturerRepo.Create(ctx, manufacturer); err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			s.logger.Warn("Manufacturer already exists", map[string]interface{}{
				"name": req.Name,
			})
			return nil, err
		}
		s.logger.Error("Failed to create manufacturer", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create manufacturer: %w", err)
	}

	s.logger.Info("Manufacturer created", map[string]interface{}{
		"manufacturer_id": manufacturer.ID,
		"name":            manufacturer.Name,
	})

	return manufacturer, nil
}

// Get возвращает производителя по ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Manufacturer, error) {
	return s.manufacturerRepo.GetByID(ctx, id)
}

// Update полностью заменяет название и страну производителя
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *ManufacturerRequest) (*domain.Manufacturer, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	manufacturer, err := s.manufacturerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	manufacturer.Name = req.Name
	manufacturer.Country = req.Country

	if err := s.manufacturerRepo.Update(ctx, manufacturer); err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update manufacturer: %w", err)
	}

	s.logger.Info("Manufacturer updated", map[string]interface{}{
		"manufacturer_id": manufacturer.ID,
	})

	return manufacturer, nil
}

// Delete удаляет производителя; запрещено, пока на него ссылаются автомобили
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.manufacturerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrIntegrityViolation) {
			s.logger.Warn("Manufacturer is in use", map[string]interface{}{
				"manufacturer_id": id,
			})
			return err
		}
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete manufacturer: %w", err)
	}

	s.logger.Info("Manufacturer deleted", map[string]interface{}{
		"manufacturer_id": id,
	})

	return nil
}

// List возвращает страницу производителей, отфильтрованных по названию
func (s *Service) List(ctx context.Context, search, page string) (*pagination.Page[*domain.Manufacturer], error) {
	return pagination.List[*domain.Manufacturer](ctx, s.manufacturerRepo, domain.NewSearchFilter(search), page, s.pageSize)
}

// Search возвращает всех производителей, название которых содержит query
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Manufacturer, error) {
	manufacturers, err := s.manufacturerRepo.List(ctx, domain.NewSearchFilter(query), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to search manufacturers: %w", err)
	}
	return manufacturers, nil
}

package dashboard

import (
	"context"
	"fmt"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/session"
	"github.com/frontandrew/taxi/internal/repository"
)

// VisitsKey - ключ счетчика посещений в сессии
const VisitsKey = "num_visits"

// Summary - данные главной страницы
type Summary struct {
	NumDrivers       int64 `json:"num_drivers"`
	NumCars          int64 `json:"num_cars"`
	NumManufacturers int64 `json:"num_manufacturers"`
	NumVisits        int   `json:"num_visits"`
}

// Service собирает счетчики главной страницы
type Service struct {
	driverRepo       repository.DriverRepository
	carRepo          repository.CarRepository
	manufacturerRepo repository.ManufacturerRepository
	logger           logger.Logger
}

// NewService создает новый экземпляр DashboardService
func NewService(
	driverRepo repository.DriverRepository,
	carRepo repository.CarRepository,
	manufacturerRepo repository.ManufacturerRepository,
	logger logger.Logger,
) *Service {
	return &Service{
		driverRepo:       driverRepo,
		carRepo:          carRepo,
		manufacturerRepo: manufacturerRepo,
		logger:           logger,
	}
}

// Index считает сущности и увеличивает счетчик посещений сессии.
// Возвращается уже увеличенное значение: первый визит - 1.
func (s *Service) Index(ctx context.Context, sess session.Session) (*Summary, error) {
	all := domain.NewSearchFilter("")

	numDrivers, err := s.driverRepo.Count(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("failed to count drivers: %w", err)
	}
	numCars, err := s.carRepo.Count(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("failed to count cars: %w", err)
	}
	numManufacturers, err := s.manufacturerRepo.Count(ctx, all)
	if err != nil {
		return nil, fmt.Errorf("failed to count manufacturers: %w", err)
	}

	visits, err := session.GetInt(ctx, sess, VisitsKey, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to read visit counter: %w", err)
	}
	visits++
	if err := sess.Set(ctx, VisitsKey, visits); err != nil {
		return nil, fmt.Errorf("failed to store visit counter: %w", err)
	}

	s.logger.Debug("Dashboard visited", map[string]interface{}{
		"session_id": sess.ID(),
		"num_visits": visits,
	})

	return &Summary{
		NumDrivers:       numDrivers,
		NumCars:          numCars,
		NumManufacturers: numManufacturers,
		NumVisits:        visits,
	}, nil
}

package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/hash"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/pagination"
	"github.com/frontandrew/taxi/internal/pkg/validate"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// passwordTooLongError - ответ на пароль, превышающий лимит bcrypt в байтах
func passwordTooLongError() error {
	return domain.NewValidationError(
		"password",
		fmt.Sprintf("ensure this value has at most %d bytes", hash.MaxPasswordBytes),
	)
}

// PasswordHasher хеширует пароли новых водителей
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// CreateDriverRequest - форма регистрации водителя
type CreateDriverRequest struct {
	Username        string `json:"username" validate:"required,max=150"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" validate:"max=150"`
	LicenseNumber   string `json:"license_number" validate:"required,max=255"`
}

func (r *CreateDriverRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.LicenseNumber = strings.TrimSpace(r.LicenseNumber)
}

// UpdateLicenseRequest - единственное поле, которое водитель может изменить
type UpdateLicenseRequest struct {
	LicenseNumber string `json:"license_number" validate:"required,max=255"`
}

// Service содержит бизнес-логику работы с водителями
type Service struct {
	driverRepo repository.DriverRepository
	carRepo    repository.CarRepository
	hasher     PasswordHasher
	pageSize   int
	logger     logger.Logger
}

// NewService создает новый экземпляр DriverService
func NewService(
	driverRepo repository.DriverRepository,
	carRepo repository.CarRepository,
	hasher PasswordHasher,
	pageSize int,
	logger logger.Logger,
) *Service {
	return &Service{
		driverRepo: driverRepo,
		carRepo:    carRepo,
		hasher:     hasher,
		pageSize:   pageSize,
		logger:     logger,
	}
}

// Create регистрирует нового водителя
func (s *Service) Create(ctx context.Context, req *CreateDriverRequest) (*domain.Driver, error) {
	req.normalize()
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	// max=72 в теге считает символы, bcrypt - байты
	if hash.IsTooLong(req.Password) {
		return nil, passwordTooLongError()
	}

	s.logger.Info("Registering new driver", map[string]interface{}{
		"username": req.Username,
	})

	passwordHash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, passwordTooLongError()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	driver := &domain.Driver{
		Username:      req.Username,
		PasswordHash:  passwordHash,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		LicenseNumber: req.LicenseNumber,
		IsActive:      true,
	}

	if err := driver.Validate(); err != nil {
		return nil, err
	}

	if err := s.driverRepo.Create(ctx, driver); err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			s.logger.Warn("Driver already exists", map[string]interface{}{
				"username": req.Username,
			})
			return nil, err
		}
		s.logger.Error("Failed to create driver", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	s.logger.Info("Driver registered successfully", map[string]interface{}{
		"driver_id": driver.ID,
		"username":  driver.Username,
	})

	// Не возвращаем password_hash
	driver.PasswordHash = ""

	return driver, nil
}

// Get возвращает водителя вместе с его автомобилями
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cars, err := s.carRepo.ListByDriver(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get driver cars: %w", err)
	}

	driver.Cars = cars
	driver.PasswordHash = ""
	return driver, nil
}

// UpdateLicense меняет номер лицензии; остальные поля водителя не трогаются
func (s *Service) UpdateLicense(ctx context.Context, id uuid.UUID, req *UpdateLicenseRequest) (*domain.Driver, error) {
	req.LicenseNumber = strings.TrimSpace(req.LicenseNumber)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	if err := s.driverRepo.UpdateLicenseNumber(ctx, id, req.LicenseNumber); err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update license number: %w", err)
	}

	s.logger.Info("Driver license updated", map[string]interface{}{
		"driver_id": id,
	})

	return s.Get(ctx, id)
}

// Delete удаляет водителя; его привязки к автомобилям удаляются вместе с ним
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.driverRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete driver: %w", err)
	}

	s.logger.Info("Driver deleted", map[string]interface{}{
		"driver_id": id,
	})

	return nil
}

// List возвращает страницу водителей, отфильтрованных по логину
func (s *Service) List(ctx context.Context, search, page string) (*pagination.Page[*domain.Driver], error) {
	return pagination.List[*domain.Driver](ctx, s.driverRepo, domain.NewSearchFilter(search), page, s.pageSize)
}

// Search возвращает всех водителей, логин которых содержит query
func (s *Service) Search(ctx context.Context, query string) ([]*domain.Driver, error) {
	drivers, err := s.driverRepo.List(ctx, domain.NewSearchFilter(query), 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to search drivers: %w", err)
	}
	return drivers, nil
}

package repository

import (
	"context"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/google/uuid"
)

// Во всех методах List limit <= 0 означает "без ограничения".
// Порядок выдачи стабильный: по времени создания, затем по id.

// ManufacturerRepository определяет методы для работы с производителями
type ManufacturerRepository interface {
	// Create создает производителя (ErrManufacturerAlreadyExists при дубликате названия)
	Create(ctx context.Context, manufacturer *domain.Manufacturer) error

	// GetByID возвращает производителя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Manufacturer, error)

	// Update полностью заменяет название и страну
	Update(ctx context.Context, manufacturer *domain.Manufacturer) error

	// Delete удаляет производителя (ErrManufacturerInUse, если на него ссылаются автомобили)
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает производителей, название которых содержит запрос фильтра
	List(ctx context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Manufacturer, error)

	// Count возвращает количество производителей, подходящих под фильтр
	Count(ctx context.Context, filter domain.SearchFilter) (int64, error)
}

// DriverRepository определяет методы для работы с водителями
type DriverRepository interface {
	// Create создает водителя
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID возвращает водителя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error)

	// GetByUsername возвращает водителя по логину
	GetByUsername(ctx context.Context, username string) (*domain.Driver, error)

	// GetByIDs возвращает водителей с указанными ID (отсутствующие пропускаются)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Driver, error)

	// UpdateLicenseNumber меняет только номер лицензии
	UpdateLicenseNumber(ctx context.Context, id uuid.UUID, licenseNumber string) error

	// UpdateLastLogin обновляет время последнего входа
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	// Delete удаляет водителя вместе с его привязками к автомобилям
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает водителей, логин которых содержит запрос фильтра
	List(ctx context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Driver, error)

	// Count возвращает количество водителей, подходящих под фильтр
	Count(ctx context.Context, filter domain.SearchFilter) (int64, error)
}

// CarRepository определяет методы для работы с автомобилями.
// Все методы чтения заполняют Car.Manufacturer в том же запросе.
type CarRepository interface {
	// Create создает автомобиль; если DriverIDs != nil, привязывает водителей в той же транзакции
	Create(ctx context.Context, car *domain.Car) error

	// GetByID возвращает автомобиль по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)

	// Update заменяет модель и производителя; если DriverIDs != nil, заменяет и набор водителей
	Update(ctx context.Context, car *domain.Car) error

	// SetAssigned сохраняет флаг is_assigned
	SetAssigned(ctx context.Context, id uuid.UUID, assigned bool) error

	// Delete удаляет автомобиль вместе с привязками водителей
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает автомобили, модель которых содержит запрос фильтра
	List(ctx context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Car, error)

	// Count возвращает количество автомобилей, подходящих под фильтр
	Count(ctx context.Context, filter domain.SearchFilter) (int64, error)

	// ListByDriver возвращает автомобили, к которым привязан водитель
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*domain.Car, error)
}

// CarDriverRepository определяет методы для связи автомобиль-водитель (many-to-many)
type CarDriverRepository interface {
	// Add привязывает водителя к автомобилю (повторная привязка ничего не меняет)
	Add(ctx context.Context, carID, driverID uuid.UUID) error

	// Remove отвязывает водителя (ErrCarDriverNotFound, если связи нет)
	Remove(ctx context.Context, carID, driverID uuid.UUID) error

	// DriverIDs возвращает ID водителей автомобиля в порядке привязки
	DriverIDs(ctx context.Context, carID uuid.UUID) ([]uuid.UUID, error)
}

// RefreshTokenRepository определяет методы для работы с refresh токенами
type RefreshTokenRepository interface {
	// Create сохраняет новый refresh token
	Create(ctx context.Context, token *domain.RefreshToken) error

	// GetByTokenHash возвращает refresh token по хешу (ErrInvalidToken, если не найден)
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// Revoke отзывает refresh token
	Revoke(ctx context.Context, tokenHash string) error

	// RevokeAllDriverTokens отзывает все токены водителя
	RevokeAllDriverTokens(ctx context.Context, driverID uuid.UUID) error

	// DeleteExpired удаляет истекшие токены
	DeleteExpired(ctx context.Context) error
}

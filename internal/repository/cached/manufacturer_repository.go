package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/google/uuid"
)

const (
	manufacturerCachePrefix = "manufacturer:"
	manufacturerCacheTTL    = 1 * time.Hour
)

// Cache - операции Redis, нужные кэшу (реализует *redis.Client из internal/pkg/redis)
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// ManufacturerRepository добавляет кэширование GetByID к manufacturer repository.
// Производитель читается при каждой валидации автомобиля, а меняется редко.
type ManufacturerRepository struct {
	repository.ManufacturerRepository
	cache  Cache
	logger logger.Logger
}

// NewManufacturerRepository создает новый кэшируемый manufacturer repository
func NewManufacturerRepository(repo repository.ManufacturerRepository, cache Cache, logger logger.Logger) *ManufacturerRepository {
	return &ManufacturerRepository{
		ManufacturerRepository: repo,
		cache:                  cache,
		logger:                 logger,
	}
}

// GetByID возвращает производителя (с кэшированием)
func (r *ManufacturerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Manufacturer, error) {
	cacheKey := manufacturerCachePrefix + id.String()

	// 1. Проверяем кэш
	raw, found, err := r.cache.Get(ctx, cacheKey)
	if err != nil {
		// Ошибка кэша не мешает работе с БД
		r.logger.Warn("Manufacturer cache read failed", map[string]interface{}{
			"manufacturer_id": id,
			"error":           err.Error(),
		})
	}
	if found {
		var m domain.Manufacturer
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			return &m, nil
		}
		_ = r.cache.Del(ctx, cacheKey)
	}

	// 2. Cache miss - идем в БД
	m, err := r.ManufacturerRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем результат в кэш
	if data, err := json.Marshal(m); err == nil {
		if err := r.cache.Set(ctx, cacheKey, data, manufacturerCacheTTL); err != nil {
			r.logger.Warn("Manufacturer cache write failed", map[string]interface{}{
				"manufacturer_id": id,
				"error":           err.Error(),
			})
		}
	}

	return m, nil
}

// Update обновляет производителя и инвалидирует кэш
func (r *ManufacturerRepository) Update(ctx context.Context, manufacturer *domain.Manufacturer) error {
	if err := r.ManufacturerRepository.Update(ctx, manufacturer); err != nil {
		return err
	}
	r.invalidate(ctx, manufacturer.ID)
	return nil
}

// Delete удаляет производителя и инвалидирует кэш
func (r *ManufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ManufacturerRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *ManufacturerRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Del(ctx, manufacturerCachePrefix+id.String()); err != nil {
		r.logger.Warn("Manufacturer cache invalidation failed", map[string]interface{}{
			"manufacturer_id": id,
			"error":           err.Error(),
		})
	}
}

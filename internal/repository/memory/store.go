// Package memory - хранилище в памяти процесса с теми же ограничениями,
// что и схема PostgreSQL (уникальность, внешние ключи, каскады).
// Используется в тестах и при STORAGE_DRIVER=memory.
package memory

import (
	"sort"
	"sync"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/google/uuid"
)

type carDriverKey struct {
	carID    uuid.UUID
	driverID uuid.UUID
}

type manufacturerRow struct {
	seq uint64
	domain.Manufacturer
}

type driverRow struct {
	seq uint64
	domain.Driver
}

type carRow struct {
	seq uint64
	domain.Car
}

// Store хранит все таблицы под одним мьютексом
type Store struct {
	mu            sync.RWMutex
	seq           uint64
	manufacturers map[uuid.UUID]*manufacturerRow
	drivers       map[uuid.UUID]*driverRow
	cars          map[uuid.UUID]*carRow
	carDrivers    map[carDriverKey]uint64
	refreshTokens map[string]*domain.RefreshToken
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		manufacturers: make(map[uuid.UUID]*manufacturerRow),
		drivers:       make(map[uuid.UUID]*driverRow),
		cars:          make(map[uuid.UUID]*carRow),
		carDrivers:    make(map[carDriverKey]uint64),
		refreshTokens: make(map[string]*domain.RefreshToken),
	}
}

// Manufacturers возвращает репозиторий производителей
func (s *Store) Manufacturers() repository.ManufacturerRepository {
	return &manufacturerRepository{s: s}
}

// Drivers возвращает репозиторий водителей
func (s *Store) Drivers() repository.DriverRepository {
	return &driverRepository{s: s}
}

// Cars возвращает репозиторий автомобилей
func (s *Store) Cars() repository.CarRepository {
	return &carRepository{s: s}
}

// CarDrivers возвращает репозиторий связей автомобиль-водитель
func (s *Store) CarDrivers() repository.CarDriverRepository {
	return &carDriverRepository{s: s}
}

// RefreshTokens возвращает репозиторий refresh токенов
func (s *Store) RefreshTokens() repository.RefreshTokenRepository {
	return &refreshTokenRepository{s: s}
}

func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// page применяет offset/limit к уже отсортированному срезу
func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return make([]T, 0)
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// driverIDsLocked возвращает водителей автомобиля в порядке привязки
func (s *Store) driverIDsLocked(carID uuid.UUID) []uuid.UUID {
	type link struct {
		seq uint64
		id  uuid.UUID
	}

	links := make([]link, 0)
	for key, seq := range s.carDrivers {
		if key.carID == carID {
			links = append(links, link{seq: seq, id: key.driverID})
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].seq < links[j].seq })

	ids := make([]uuid.UUID, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.id)
	}
	return ids
}

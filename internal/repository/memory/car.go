package memory

import (
	"context"
	"sort"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/google/uuid"
)

type carRepository struct {
	s *Store
}

func (r *carRepository) Create(_ context.Context, car *domain.Car) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	car.DriverIDs = domain.UniqueDriverIDs(car.DriverIDs)
	if err := r.checkReferencesLocked(car); err != nil {
		return err
	}

	car.ID = uuid.New()
	car.CreatedAt = time.Now()
	car.UpdatedAt = car.CreatedAt

	r.s.cars[car.ID] = &carRow{seq: r.s.nextSeq(), Car: stripRelations(car)}
	for _, driverID := range car.DriverIDs {
		r.s.carDrivers[carDriverKey{carID: car.ID, driverID: driverID}] = r.s.nextSeq()
	}
	return nil
}

func (r *carRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Car, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.cars[id]
	if !ok {
		return nil, domain.ErrCarNotFound
	}
	return r.withManufacturerLocked(row), nil
}

func (r *carRepository) Update(_ context.Context, car *domain.Car) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.cars[car.ID]
	if !ok {
		return domain.ErrCarNotFound
	}

	car.DriverIDs = domain.UniqueDriverIDs(car.DriverIDs)
	if err := r.checkReferencesLocked(car); err != nil {
		return err
	}

	row.Model = car.Model
	row.ManufacturerID = car.ManufacturerID
	row.UpdatedAt = time.Now()
	car.IsAssigned = row.IsAssigned
	car.CreatedAt = row.CreatedAt
	car.UpdatedAt = row.UpdatedAt

	if car.DriverIDs == nil {
		return nil
	}
	for key := range r.s.carDrivers {
		if key.carID == car.ID {
			delete(r.s.carDrivers, key)
		}
	}
	for _, driverID := range car.DriverIDs {
		r.s.carDrivers[carDriverKey{carID: car.ID, driverID: driverID}] = r.s.nextSeq()
	}
	return nil
}

func (r *carRepository) SetAssigned(_ context.Context, id uuid.UUID, assigned bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.cars[id]
	if !ok {
		return domain.ErrCarNotFound
	}
	row.IsAssigned = assigned
	row.UpdatedAt = time.Now()
	return nil
}

func (r *carRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[id]; !ok {
		return domain.ErrCarNotFound
	}

	delete(r.s.cars, id)
	for key := range r.s.carDrivers {
		if key.carID == id {
			delete(r.s.carDrivers, key)
		}
	}
	return nil
}

func (r *carRepository) List(_ context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Car, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*carRow, 0, len(r.s.cars))
	for _, row := range r.s.cars {
		if filter.Matches(row.Model) {
			rows = append(rows, row)
		}
	}
	return page(r.sortLocked(rows), limit, offset), nil
}

func (r *carRepository) Count(_ context.Context, filter domain.SearchFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, row := range r.s.cars {
		if filter.Matches(row.Model) {
			count++
		}
	}
	return count, nil
}

func (r *carRepository) ListByDriver(_ context.Context, driverID uuid.UUID) ([]*domain.Car, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*carRow, 0)
	for key := range r.s.carDrivers {
		if key.driverID != driverID {
			continue
		}
		if row, ok := r.s.cars[key.carID]; ok {
			rows = append(rows, row)
		}
	}
	return r.sortLocked(rows), nil
}

// checkReferencesLocked повторяет внешние ключи схемы
func (r *carRepository) checkReferencesLocked(car *domain.Car) error {
	if _, ok := r.s.manufacturers[car.ManufacturerID]; !ok {
		return domain.IntegrityViolation("cars_manufacturer_id_fkey")
	}
	for _, driverID := range car.DriverIDs {
		if _, ok := r.s.drivers[driverID]; !ok {
			return domain.IntegrityViolation("car_drivers_driver_id_fkey")
		}
	}
	return nil
}

func (r *carRepository) sortLocked(rows []*carRow) []*domain.Car {
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]*domain.Car, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.withManufacturerLocked(row))
	}
	return out
}

func (r *carRepository) withManufacturerLocked(row *carRow) *domain.Car {
	car := row.Car
	if m, ok := r.s.manufacturers[car.ManufacturerID]; ok {
		manufacturer := m.Manufacturer
		car.Manufacturer = &manufacturer
	}
	return &car
}

func stripRelations(car *domain.Car) domain.Car {
	stored := *car
	stored.DriverIDs = nil
	stored.Drivers = nil
	stored.Manufacturer = nil
	return stored
}

package memory

import (
	"context"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/google/uuid"
)

type carDriverRepository struct {
	s *Store
}

func (r *carDriverRepository) Add(_ context.Context, carID, driverID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.cars[carID]; !ok {
		return domain.IntegrityViolation("car_drivers_car_id_fkey")
	}
	if _, ok := r.s.drivers[driverID]; !ok {
		return domain.IntegrityViolation("car_drivers_driver_id_fkey")
	}

	key := carDriverKey{carID: carID, driverID: driverID}
	if _, exists := r.s.carDrivers[key]; !exists {
		r.s.carDrivers[key] = r.s.nextSeq()
	}
	return nil
}

func (r *carDriverRepository) Remove(_ context.Context, carID, driverID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := carDriverKey{carID: carID, driverID: driverID}
	if _, ok := r.s.carDrivers[key]; !ok {
		return domain.ErrCarDriverNotFound
	}
	delete(r.s.carDrivers, key)
	return nil
}

func (r *carDriverRepository) DriverIDs(_ context.Context, carID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.driverIDsLocked(carID), nil
}

package memory

import (
	"context"
	"sort"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/google/uuid"
)

type driverRepository struct {
	s *Store
}

func (r *driverRepository) Create(_ context.Context, driver *domain.Driver) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, row := range r.s.drivers {
		if row.Username == driver.Username {
			return domain.ErrUsernameTaken
		}
		if row.LicenseNumber == driver.LicenseNumber {
			return domain.ErrLicenseNumberTaken
		}
	}

	driver.ID = uuid.New()
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = driver.CreatedAt

	stored := *driver
	stored.Cars = nil
	r.s.drivers[driver.ID] = &driverRow{seq: r.s.nextSeq(), Driver: stored}
	return nil
}

func (r *driverRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.drivers[id]
	if !ok {
		return nil, domain.ErrDriverNotFound
	}
	d := row.Driver
	return &d, nil
}

func (r *driverRepository) GetByUsername(_ context.Context, username string) (*domain.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, row := range r.s.drivers {
		if row.Username == username {
			d := row.Driver
			return &d, nil
		}
	}
	return nil, domain.ErrDriverNotFound
}

func (r *driverRepository) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*driverRow, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if row, ok := r.s.drivers[id]; ok {
			rows = append(rows, row)
		}
	}
	return sortDrivers(rows), nil
}

func (r *driverRepository) UpdateLicenseNumber(_ context.Context, id uuid.UUID, licenseNumber string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.drivers[id]
	if !ok {
		return domain.ErrDriverNotFound
	}
	for otherID, other := range r.s.drivers {
		if otherID != id && other.LicenseNumber == licenseNumber {
			return domain.ErrLicenseNumberTaken
		}
	}

	row.LicenseNumber = licenseNumber
	row.UpdatedAt = time.Now()
	return nil
}

func (r *driverRepository) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.drivers[id]
	if !ok {
		return domain.ErrDriverNotFound
	}
	now := time.Now()
	row.LastLoginAt = &now
	return nil
}

func (r *driverRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drivers[id]; !ok {
		return domain.ErrDriverNotFound
	}

	delete(r.s.drivers, id)
	for key := range r.s.carDrivers {
		if key.driverID == id {
			delete(r.s.carDrivers, key)
		}
	}
	for hash, token := range r.s.refreshTokens {
		if token.DriverID == id {
			delete(r.s.refreshTokens, hash)
		}
	}
	return nil
}

func (r *driverRepository) List(_ context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Driver, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return page(r.matchLocked(filter), limit, offset), nil
}

func (r *driverRepository) Count(_ context.Context, filter domain.SearchFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.matchLocked(filter))), nil
}

func (r *driverRepository) matchLocked(filter domain.SearchFilter) []*domain.Driver {
	rows := make([]*driverRow, 0, len(r.s.drivers))
	for _, row := range r.s.drivers {
		if filter.Matches(row.Username) {
			rows = append(rows, row)
		}
	}
	return sortDrivers(rows)
}

func sortDrivers(rows []*driverRow) []*domain.Driver {
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]*domain.Driver, 0, len(rows))
	for _, row := range rows {
		d := row.Driver
		out = append(out, &d)
	}
	return out
}

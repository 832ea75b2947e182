package memory

import (
	"context"
	"sort"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/google/uuid"
)

type manufacturerRepository struct {
	s *Store
}

func (r *manufacturerRepository) Create(_ context.Context, manufacturer *domain.Manufacturer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.nameTakenLocked(manufacturer.Name, uuid.Nil) {
		return domain.ErrManufacturerAlreadyExists
	}

	manufacturer.ID = uuid.New()
	manufacturer.CreatedAt = time.Now()
	manufacturer.UpdatedAt = manufacturer.CreatedAt

	r.s.manufacturers[manufacturer.ID] = &manufacturerRow{seq: r.s.nextSeq(), Manufacturer: *manufacturer}
	return nil
}

func (r *manufacturerRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Manufacturer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.manufacturers[id]
	if !ok {
		return nil, domain.ErrManufacturerNotFound
	}
	m := row.Manufacturer
	return &m, nil
}

func (r *manufacturerRepository) Update(_ context.Context, manufacturer *domain.Manufacturer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.manufacturers[manufacturer.ID]
	if !ok {
		return domain.ErrManufacturerNotFound
	}
	if r.nameTakenLocked(manufacturer.Name, manufacturer.ID) {
		return domain.ErrManufacturerAlreadyExists
	}

	manufacturer.CreatedAt = row.CreatedAt
	manufacturer.UpdatedAt = time.Now()
	row.Manufacturer = *manufacturer
	return nil
}

func (r *manufacturerRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.manufacturers[id]; !ok {
		return domain.ErrManufacturerNotFound
	}
	for _, car := range r.s.cars {
		if car.ManufacturerID == id {
			return domain.ErrManufacturerInUse
		}
	}

	delete(r.s.manufacturers, id)
	return nil
}

func (r *manufacturerRepository) List(_ context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Manufacturer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return page(r.matchLocked(filter), limit, offset), nil
}

func (r *manufacturerRepository) Count(_ context.Context, filter domain.SearchFilter) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return int64(len(r.matchLocked(filter))), nil
}

func (r *manufacturerRepository) matchLocked(filter domain.SearchFilter) []*domain.Manufacturer {
	rows := make([]*manufacturerRow, 0, len(r.s.manufacturers))
	for _, row := range r.s.manufacturers {
		if filter.Matches(row.Name) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	out := make([]*domain.Manufacturer, 0, len(rows))
	for _, row := range rows {
		m := row.Manufacturer
		out = append(out, &m)
	}
	return out
}

func (r *manufacturerRepository) nameTakenLocked(name string, except uuid.UUID) bool {
	for id, row := range r.s.manufacturers {
		if id != except && row.Name == name {
			return true
		}
	}
	return false
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type manufacturerRepository struct {
	db *pgxpool.Pool
}

// NewManufacturerRepository создает PostgreSQL реализацию ManufacturerRepository
func NewManufacturerRepository(db *pgxpool.Pool) repository.ManufacturerRepository {
	return &manufacturerRepository{db: db}
}

func (r *manufacturerRepository) Create(ctx context.Context, manufacturer *domain.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (id, name, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	manufacturer.ID = uuid.New()
	manufacturer.CreatedAt = time.Now()
	manufacturer.UpdatedAt = manufacturer.CreatedAt

	_, err := r.db.Exec(ctx, query,
		manufacturer.ID,
		manufacturer.Name,
		manufacturer.Country,
		manufacturer.CreatedAt,
		manufacturer.UpdatedAt,
	)

	return mapError(err)
}

func (r *manufacturerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Manufacturer, error) {
	query := `
		SELECT id, name, country, created_at, updated_at
		FROM manufacturers
		WHERE id = $1
	`

	manufacturer := &domain.Manufacturer{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&manufacturer.ID,
		&manufacturer.Name,
		&manufacturer.Country,
		&manufacturer.CreatedAt,
		&manufacturer.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrManufacturerNotFound
		}
		return nil, err
	}

	return manufacturer, nil
}

func (r *manufacturerRepository) Update(ctx context.Context, manufacturer *domain.Manufacturer) error {
	query := `
		UPDATE manufacturers
		SET name = $2, country = $3, updated_at = $4
		WHERE id = $1
	`

	manufacturer.UpdatedAt = time.Now()

	result, err := r.db.Exec(ctx, query,
		manufacturer.ID,
		manufacturer.Name,
		manufacturer.Country,
		manufacturer.UpdatedAt,
	)
	if err != nil {
		return mapError(err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrManufacturerNotFound
	}

	return nil
}

func (r *manufacturerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		err = mapError(err)
		// cars.manufacturer_id объявлен с ON DELETE RESTRICT
		if errors.Is(err, domain.ErrIntegrityViolation) {
			return domain.ErrManufacturerInUse
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrManufacturerNotFound
	}

	return nil
}

func (r *manufacturerRepository) List(ctx context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Manufacturer, error) {
	query := `
		SELECT id, name, country, created_at, updated_at
		FROM manufacturers
		WHERE ` + searchCondition("name", 1) + `
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, filter.Query, limitArg(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	manufacturers := make([]*domain.Manufacturer, 0)
	for rows.Next() {
		manufacturer := &domain.Manufacturer{}
		err := rows.Scan(
			&manufacturer.ID,
			&manufacturer.Name,
			&manufacturer.Country,
			&manufacturer.CreatedAt,
			&manufacturer.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		manufacturers = append(manufacturers, manufacturer)
	}

	return manufacturers, rows.Err()
}

func (r *manufacturerRepository) Count(ctx context.Context, filter domain.SearchFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM manufacturers WHERE ` + searchCondition("name", 1)

	var count int64
	if err := r.db.QueryRow(ctx, query, filter.Query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

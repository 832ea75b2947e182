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

// Производитель загружается тем же запросом, без отдельного запроса на каждую строку
const carSelect = `
	SELECT c.id, c.model, c.manufacturer_id, c.is_assigned, c.created_at, c.updated_at,
	       m.id, m.name, m.country, m.created_at, m.updated_at
	FROM cars c
	JOIN manufacturers m ON m.id = c.manufacturer_id
`

type carRepository struct {
	db *pgxpool.Pool
}

// NewCarRepository создает PostgreSQL реализацию CarRepository
func NewCarRepository(db *pgxpool.Pool) repository.CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `
		INSERT INTO cars (id, model, manufacturer_id, is_assigned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	car.ID = uuid.New()
	car.CreatedAt = time.Now()
	car.UpdatedAt = car.CreatedAt
	car.DriverIDs = domain.UniqueDriverIDs(car.DriverIDs)

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			car.ID,
			car.Model,
			car.ManufacturerID,
			car.IsAssigned,
			car.CreatedAt,
			car.UpdatedAt,
		)
		if err != nil {
			return err
		}

		return insertCarDrivers(ctx, tx, car.ID, car.DriverIDs)
	})

	return mapError(err)
}

func (r *carRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	car, err := scanCar(r.db.QueryRow(ctx, carSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCarNotFound
		}
		return nil, err
	}

	return car, nil
}

func (r *carRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `
		UPDATE cars
		SET model = $2, manufacturer_id = $3, updated_at = $4
		WHERE id = $1
	`

	car.UpdatedAt = time.Now()
	car.DriverIDs = domain.UniqueDriverIDs(car.DriverIDs)

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, query,
			car.ID,
			car.Model,
			car.ManufacturerID,
			car.UpdatedAt,
		)
		if err != nil {
			return err
		}

		if result.RowsAffected() == 0 {
			return domain.ErrCarNotFound
		}

		// nil - форма не содержала водителей, набор не меняем
		if car.DriverIDs == nil {
			return nil
		}

		if _, err := tx.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1`, car.ID); err != nil {
			return err
		}

		return insertCarDrivers(ctx, tx, car.ID, car.DriverIDs)
	})

	return mapError(err)
}

func (r *carRepository) SetAssigned(ctx context.Context, id uuid.UUID, assigned bool) error {
	query := `
		UPDATE cars
		SET is_assigned = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, assigned, time.Now())
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCarNotFound
	}

	return nil
}

func (r *carRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// car_drivers удаляются каскадно
	result, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCarNotFound
	}

	return nil
}

func (r *carRepository) List(ctx context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Car, error) {
	query := carSelect + `
		WHERE ` + searchCondition("c.model", 1) + `
		ORDER BY c.created_at, c.id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, filter.Query, limitArg(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCars(rows)
}

func (r *carRepository) Count(ctx context.Context, filter domain.SearchFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM cars WHERE ` + searchCondition("model", 1)

	var count int64
	if err := r.db.QueryRow(ctx, query, filter.Query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *carRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]*domain.Car, error) {
	query := carSelect + `
		JOIN car_drivers cd ON cd.car_id = c.id
		WHERE cd.driver_id = $1
		ORDER BY c.created_at, c.id
	`

	rows, err := r.db.Query(ctx, query, driverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCars(rows)
}

func insertCarDrivers(ctx context.Context, tx pgx.Tx, carID uuid.UUID, driverIDs []uuid.UUID) error {
	if len(driverIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, driverID := range driverIDs {
		batch.Queue(`INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, carID, driverID)
	}

	return tx.SendBatch(ctx, batch).Close()
}

func scanCars(rows pgx.Rows) ([]*domain.Car, error) {
	cars := make([]*domain.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}

	return cars, rows.Err()
}

func scanCar(row pgx.Row) (*domain.Car, error) {
	car := &domain.Car{Manufacturer: &domain.Manufacturer{}}
	err := row.Scan(
		&car.ID,
		&car.Model,
		&car.ManufacturerID,
		&car.IsAssigned,
		&car.CreatedAt,
		&car.UpdatedAt,
		&car.Manufacturer.ID,
		&car.Manufacturer.Name,
		&car.Manufacturer.Country,
		&car.Manufacturer.CreatedAt,
		&car.Manufacturer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return car, nil
}

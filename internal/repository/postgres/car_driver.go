package postgres

import (
	"context"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type carDriverRepository struct {
	db *pgxpool.Pool
}

// NewCarDriverRepository создает PostgreSQL реализацию CarDriverRepository
func NewCarDriverRepository(db *pgxpool.Pool) repository.CarDriverRepository {
	return &carDriverRepository{db: db}
}

func (r *carDriverRepository) Add(ctx context.Context, carID, driverID uuid.UUID) error {
	query := `
		INSERT INTO car_drivers (car_id, driver_id)
		VALUES ($1, $2)
		ON CONFLICT (car_id, driver_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, carID, driverID)
	return mapError(err)
}

func (r *carDriverRepository) Remove(ctx context.Context, carID, driverID uuid.UUID) error {
	query := `DELETE FROM car_drivers WHERE car_id = $1 AND driver_id = $2`

	result, err := r.db.Exec(ctx, query, carID, driverID)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCarDriverNotFound
	}

	return nil
}

// driverIDsQuery отдает водителей в порядке назначения: seq растет с каждой вставкой,
// в том числе внутри одного batch, где added_at одинаков
const driverIDsQuery = `
	SELECT driver_id
	FROM car_drivers
	WHERE car_id = $1
	ORDER BY seq
`

func (r *carDriverRepository) DriverIDs(ctx context.Context, carID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, driverIDsQuery, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

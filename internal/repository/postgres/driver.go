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

const driverColumns = `id, username, password_hash, first_name, last_name, license_number, is_active, last_login_at, created_at, updated_at`

// driverRepository - PostgreSQL реализация DriverRepository
type driverRepository struct {
	db *pgxpool.Pool
}

// NewDriverRepository создает новый экземпляр driverRepository
func NewDriverRepository(db *pgxpool.Pool) repository.DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	query := `
		INSERT INTO drivers (` + driverColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	driver.ID = uuid.New()
	driver.CreatedAt = time.Now()
	driver.UpdatedAt = driver.CreatedAt

	_, err := r.db.Exec(ctx, query,
		driver.ID,
		driver.Username,
		driver.PasswordHash,
		driver.FirstName,
		driver.LastName,
		driver.LicenseNumber,
		driver.IsActive,
		driver.LastLoginAt,
		driver.CreatedAt,
		driver.UpdatedAt,
	)

	return mapError(err)
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *driverRepository) GetByUsername(ctx context.Context, username string) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE username = $1`
	return r.getOne(ctx, query, username)
}

func (r *driverRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Driver, error) {
	if len(ids) == 0 {
		return []*domain.Driver{}, nil
	}

	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE id = ANY($1)
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanDrivers(rows)
}

func (r *driverRepository) UpdateLicenseNumber(ctx context.Context, id uuid.UUID, licenseNumber string) error {
	query := `
		UPDATE drivers
		SET license_number = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, licenseNumber, time.Now())
	if err != nil {
		return mapError(err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}

	return nil
}

func (r *driverRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE drivers
		SET last_login_at = $2
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, time.Now())
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}

	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// car_drivers и refresh_tokens удаляются каскадно
	result, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrDriverNotFound
	}

	return nil
}

func (r *driverRepository) List(ctx context.Context, filter domain.SearchFilter, limit, offset int) ([]*domain.Driver, error) {
	query := `
		SELECT ` + driverColumns + `
		FROM drivers
		WHERE ` + searchCondition("username", 1) + `
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, filter.Query, limitArg(limit), offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanDrivers(rows)
}

func (r *driverRepository) Count(ctx context.Context, filter domain.SearchFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM drivers WHERE ` + searchCondition("username", 1)

	var count int64
	if err := r.db.QueryRow(ctx, query, filter.Query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *driverRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Driver, error) {
	driver, err := scanDriver(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDriverNotFound
		}
		return nil, err
	}

	return driver, nil
}

func (r *driverRepository) scanDrivers(rows pgx.Rows) ([]*domain.Driver, error) {
	drivers := make([]*domain.Driver, 0)
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}

	return drivers, rows.Err()
}

func scanDriver(row pgx.Row) (*domain.Driver, error) {
	driver := &domain.Driver{}
	err := row.Scan(
		&driver.ID,
		&driver.Username,
		&driver.PasswordHash,
		&driver.FirstName,
		&driver.LastName,
		&driver.LicenseNumber,
		&driver.IsActive,
		&driver.LastLoginAt,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return driver, nil
}

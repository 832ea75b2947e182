package postgres

import (
	"errors"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// Коды ошибок PostgreSQL
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Ошибки уникальности по имени constraint из migrations/000001_init.up.sql
var uniqueConstraintErrors = map[string]error{
	"manufacturers_name_key":     domain.ErrManufacturerAlreadyExists,
	"drivers_username_key":       domain.ErrUsernameTaken,
	"drivers_license_number_key": domain.ErrLicenseNumberTaken,
}

// mapError переводит ошибки ограничений PostgreSQL в доменные.
// Остальные ошибки возвращаются как есть.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
		return domain.UniqueViolation(pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return domain.IntegrityViolation(pgErr.ConstraintName)
	}

	return err
}

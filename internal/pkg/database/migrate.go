package database

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/frontandrew/taxi/internal/pkg/config"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Migrate применяет SQL миграции из cfg.Path к базе данных.
// Отсутствие новых миграций ошибкой не считается.
func Migrate(dbCfg *config.DatabaseConfig, cfg *config.MigrationsConfig, log logger.Logger) error {
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return fmt.Errorf("resolve migrations path: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(path), dbCfg.URL())
	if err != nil {
		return fmt.Errorf("migration init: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			log.Warn("failed to close migrator", map[string]interface{}{
				"source_error":   srcErr,
				"database_error": dbErr,
			})
		}
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("no migrations to apply")
			return nil
		}
		return fmt.Errorf("migration up: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return fmt.Errorf("migration version: %w", err)
	}

	log.Info("migrations applied", map[string]interface{}{
		"version": version,
		"dirty":   dirty,
	})
	return nil
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/config"
	"github.com/frontandrew/taxi/internal/pkg/database"
	"github.com/frontandrew/taxi/internal/pkg/hash"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/repository/postgres"
	"github.com/frontandrew/taxi/internal/usecase/driver"
)

// Создание первого водителя, чтобы было с кем войти в систему:
// go run ./cmd/createdriver -username admin -password secret123 -license ADM00001
func main() {
	username := flag.String("username", "", "login of the new driver")
	password := flag.String("password", "", "password (8-72 characters)")
	firstName := flag.String("first-name", "", "first name")
	lastName := flag.String("last-name", "", "last name")
	license := flag.String("license", "", "unique license number")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Storage.Driver != config.StoragePostgres {
		fmt.Fprintln(os.Stderr, "createdriver requires STORAGE_DRIVER=postgres")
		os.Exit(1)
	}

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Migrations.Enabled {
		if err := database.Migrate(&cfg.Database, &cfg.Migrations, log); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to apply migrations: %v\n", err)
			os.Exit(1)
		}
	}

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close(db)

	service := driver.NewService(
		postgres.NewDriverRepository(db),
		postgres.NewCarRepository(db),
		hash.New(hash.DefaultCost),
		cfg.Pagination.PageSize,
		log,
	)

	created, err := service.Create(ctx, &driver.CreateDriverRequest{
		Username:        *username,
		Password:        *password,
		PasswordConfirm: *password,
		FirstName:       *firstName,
		LastName:        *lastName,
		LicenseNumber:   *license,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			for field, message := range verr.Fields {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, message)
			}
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "Failed to create driver: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Driver %s created (id %s)\n", created, created.ID)
}

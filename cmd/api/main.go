package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryHTTP "github.com/frontandrew/taxi/internal/delivery/http"
	"github.com/frontandrew/taxi/internal/pkg/config"
	"github.com/frontandrew/taxi/internal/pkg/database"
	"github.com/frontandrew/taxi/internal/pkg/hash"
	"github.com/frontandrew/taxi/internal/pkg/jwt"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/redis"
	"github.com/frontandrew/taxi/internal/pkg/session"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/frontandrew/taxi/internal/repository/cached"
	"github.com/frontandrew/taxi/internal/repository/memory"
	"github.com/frontandrew/taxi/internal/repository/postgres"
	"github.com/frontandrew/taxi/internal/usecase/auth"
	"github.com/frontandrew/taxi/internal/usecase/car"
	"github.com/frontandrew/taxi/internal/usecase/dashboard"
	"github.com/frontandrew/taxi/internal/usecase/driver"
	"github.com/frontandrew/taxi/internal/usecase/manufacturer"
)

// purgeInterval - как часто удаляются истекшие refresh токены
const purgeInterval = time.Hour

// repositories - набор репозиториев выбранного хранилища
type repositories struct {
	manufacturers repository.ManufacturerRepository
	drivers       repository.DriverRepository
	cars          repository.CarRepository
	carDrivers    repository.CarDriverRepository
	refreshTokens repository.RefreshTokenRepository
}

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting taxi API server", map[string]interface{}{
		"storage": cfg.Storage.Driver,
		"session": cfg.Session.Driver,
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	healthChecks := make(map[string]deliveryHTTP.HealthChecker)

	// =========================================================================
	// Хранилище: PostgreSQL или память процесса
	// =========================================================================

	var repos repositories

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if cfg.Migrations.Enabled {
			if err := database.Migrate(&cfg.Database, &cfg.Migrations, log); err != nil {
				log.Fatal("Failed to apply migrations", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		db, err := database.Connect(ctx, &cfg.Database)
		if err != nil {
			log.Fatal("Failed to connect to database", map[string]interface{}{
				"error": err.Error(),
			})
		}
		defer database.Close(db)

		log.Info("Connected to PostgreSQL", map[string]interface{}{
			"host":     cfg.Database.Host,
			"port":     cfg.Database.Port,
			"database": cfg.Database.Database,
		})

		if err := database.CheckCaseFolding(ctx, db); err != nil {
			log.Warn("Case-insensitive search is limited to ASCII, use a UTF8 database with a non-C locale", map[string]interface{}{
				"error": err.Error(),
			})
		}

		repos = repositories{
			manufacturers: postgres.NewManufacturerRepository(db),
			drivers:       postgres.NewDriverRepository(db),
			cars:          postgres.NewCarRepository(db),
			carDrivers:    postgres.NewCarDriverRepository(db),
			refreshTokens: postgres.NewRefreshTokenRepository(db),
		}
		healthChecks["postgres"] = db.Ping

	case config.StorageMemory:
		store := memory.NewStore()
		repos = repositories{
			manufacturers: store.Manufacturers(),
			drivers:       store.Drivers(),
			cars:          store.Cars(),
			carDrivers:    store.CarDrivers(),
			refreshTokens: store.RefreshTokens(),
		}
		log.Warn("Using in-memory storage, data is lost on restart")
	}

	log.Info("Repositories initialized")

	// =========================================================================
	// Хранилище сессий: Redis или память процесса
	// =========================================================================

	var (
		sessions    session.Store
		redisClient *redis.Client
	)

	switch cfg.Session.Driver {
	case config.SessionRedis:
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", map[string]interface{}{
				"error":   err.Error(),
				"address": cfg.Redis.Address(),
			})
		}
		defer redisClient.Close()

		log.Info("Connected to Redis", map[string]interface{}{
			"address": cfg.Redis.Address(),
			"db":      cfg.Redis.DB,
		})

		sessions = session.NewRedisStore(redisClient, cfg.Session.KeyPrefix, cfg.Session.TTL)
		healthChecks["redis"] = redisClient.Ping

	case config.StorageMemory:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	// Производители читаются при каждой валидации автомобиля - кэшируем их в Redis
	if redisClient != nil && cfg.Storage.Driver == config.StoragePostgres {
		repos.manufacturers = cached.NewManufacturerRepository(repos.manufacturers, redisClient, log)
		log.Info("Manufacturer cache enabled")
	}

	// =========================================================================
	// Создание JWT token service
	// =========================================================================

	tokenService := jwt.NewTokenService(
		cfg.JWT.SecretKey,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	log.Info("JWT token service initialized")

	// =========================================================================
	// Создание use case services
	// =========================================================================

	hasher := hash.New(hash.DefaultCost)
	pageSize := cfg.Pagination.PageSize

	authService := auth.NewService(repos.drivers, repos.refreshTokens, tokenService, hasher, sessions, log)
	dashboardService := dashboard.NewService(repos.drivers, repos.cars, repos.manufacturers, log)
	manufacturerService := manufacturer.NewService(repos.manufacturers, pageSize, log)
	carService := car.NewService(repos.cars, repos.carDrivers, repos.manufacturers, repos.drivers, pageSize, log)
	driverService := driver.NewService(repos.drivers, repos.cars, hasher, pageSize, log)

	log.Info("Use case services initialized")

	// =========================================================================
	// Создание HTTP handlers и router
	// =========================================================================

	router := deliveryHTTP.NewRouter(
		deliveryHTTP.NewAuthHandler(authService, log),
		deliveryHTTP.NewDashboardHandler(dashboardService, log),
		deliveryHTTP.NewManufacturerHandler(manufacturerService, log),
		deliveryHTTP.NewCarHandler(carService, log),
		deliveryHTTP.NewDriverHandler(driverService, log),
		authService,
		authService,
		healthChecks,
		cfg,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Фоновая очистка истекших refresh токенов
	// =========================================================================

	go purgeExpiredTokens(ctx, authService, log)

	// =========================================================================
	// Создание и запуск HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			// Принудительное закрытие
			if err := srv.Close(); err != nil {
				log.Error("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}

// purgeExpiredTokens периодически удаляет истекшие refresh токены до отмены ctx
func purgeExpiredTokens(ctx context.Context, authService *auth.Service, log logger.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := authService.PurgeExpiredTokens(ctx); err != nil {
				log.Error("Failed to purge expired refresh tokens", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

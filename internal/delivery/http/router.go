package http

import (
	"context"
	"net/http"
	"time"

	"github.com/frontandrew/taxi/internal/delivery/http/middleware"
	"github.com/frontandrew/taxi/internal/pkg/config"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// HealthChecker проверяет доступность внешней зависимости (PostgreSQL, Redis)
type HealthChecker func(ctx context.Context) error

// Router содержит все зависимости для HTTP роутера
type Router struct {
	authHandler         *AuthHandler
	dashboardHandler    *DashboardHandler
	manufacturerHandler *ManufacturerHandler
	carHandler          *CarHandler
	driverHandler       *DriverHandler
	tokenValidator      middleware.TokenValidator
	sessions            middleware.SessionProvider
	healthChecks        map[string]HealthChecker
	config              *config.Config
	logger              logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	authHandler *AuthHandler,
	dashboardHandler *DashboardHandler,
	manufacturerHandler *ManufacturerHandler,
	carHandler *CarHandler,
	driverHandler *DriverHandler,
	tokenValidator middleware.TokenValidator,
	sessions middleware.SessionProvider,
	healthChecks map[string]HealthChecker,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		authHandler:         authHandler,
		dashboardHandler:    dashboardHandler,
		manufacturerHandler: manufacturerHandler,
		carHandler:          carHandler,
		driverHandler:       driverHandler,
		tokenValidator:      tokenValidator,
		sessions:            sessions,
		healthChecks:        healthChecks,
		config:              config,
		logger:              logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.config.CORS.AllowedOrigins,
		AllowedMethods:   rt.config.CORS.AllowedMethods,
		AllowedHeaders:   rt.config.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint (публичный)
	r.Get("/health", rt.health)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (без аутентификации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", rt.authHandler.Login)
			r.Post("/refresh", rt.authHandler.Refresh)
			r.Post("/logout", rt.authHandler.Logout)
		})

		// Protected routes (требуют аутентификации)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokenValidator))
			r.Use(middleware.SessionMiddleware(rt.sessions))

			r.Get("/auth/me", rt.authHandler.GetMe)
			r.Get("/dashboard", rt.dashboardHandler.Index)

			r.Route("/manufacturers", func(r chi.Router) {
				r.Get("/", rt.manufacturerHandler.List)
				r.Post("/", rt.manufacturerHandler.Create)
				r.Get("/search", rt.manufacturerHandler.Search)
				r.Get("/{id}", rt.manufacturerHandler.Get)
				r.Put("/{id}", rt.manufacturerHandler.Update)
				r.Delete("/{id}", rt.manufacturerHandler.Delete)
			})

			r.Route("/cars", func(r chi.Router) {
				r.Get("/", rt.carHandler.List)
				r.Post("/", rt.carHandler.Create)
				r.Get("/search", rt.carHandler.Search)
				r.Get("/{id}", rt.carHandler.Get)
				r.Put("/{id}", rt.carHandler.Update)
				r.Delete("/{id}", rt.carHandler.Delete)
				r.Post("/{id}/toggle-assign", rt.carHandler.ToggleAssign)
				r.Get("/{id}/drivers", rt.carHandler.Drivers)
				r.Post("/{id}/drivers/{driver_id}", rt.carHandler.AddDriver)
				r.Delete("/{id}/drivers/{driver_id}", rt.carHandler.RemoveDriver)
			})

			r.Route("/drivers", func(r chi.Router) {
				r.Get("/", rt.driverHandler.List)
				r.Post("/", rt.driverHandler.Create)
				r.Get("/search", rt.driverHandler.Search)
				r.Get("/{id}", rt.driverHandler.Get)
				r.Put("/{id}/license", rt.driverHandler.UpdateLicense)
				r.Delete("/{id}", rt.driverHandler.Delete)
			})
		})
	})

	return r
}

// health проверяет зависимости сервиса
// GET /health
func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(rt.healthChecks))
	status, code := "healthy", http.StatusOK
	for name, check := range rt.healthChecks {
		if err := check(ctx); err != nil {
			rt.logger.Warn("Health check failed", map[string]interface{}{
				"dependency": name,
				"error":      err.Error(),
			})
			checks[name] = "unavailable"
			status, code = "unhealthy", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	respondJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}

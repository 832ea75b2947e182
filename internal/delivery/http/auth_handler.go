package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/taxi/internal/delivery/http/middleware"
	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/usecase/auth"
	"github.com/google/uuid"
)

// AuthService - операции аутентификации, нужные handler'у
type AuthService interface {
	Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error)
	Refresh(ctx context.Context, req *auth.RefreshRequest) (*auth.LoginResponse, error)
	Logout(ctx context.Context, req *auth.RefreshRequest) error
	GetDriverByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error)
}

// AuthHandler обрабатывает запросы аутентификации
type AuthHandler struct {
	authService AuthService
	logger      logger.Logger
}

// NewAuthHandler создает новый handler
func NewAuthHandler(authService AuthService, logger logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login обрабатывает вход водителя
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to login")
		return
	}

	respondData(w, http.StatusOK, response)
}

// Refresh обновляет пару токенов по refresh токену
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	response, err := h.authService.Refresh(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to refresh token")
		return
	}

	respondData(w, http.StatusOK, response)
}

// Logout завершает сессию водителя
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.authService.Logout(r.Context(), &req); err != nil {
		respondDomainError(w, h.logger, err, "Failed to logout")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// GetMe возвращает текущего водителя
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	// Claims добавлены AuthMiddleware
	claims, ok := middleware.GetDriverClaims(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	d, err := h.authService.GetDriverByID(r.Context(), claims.DriverID)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to get driver")
		return
	}

	respondData(w, http.StatusOK, d)
}

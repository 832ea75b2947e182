package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/jwt"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/frontandrew/taxi/internal/pkg/session"
	"github.com/frontandrew/taxi/internal/pkg/validate"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/google/uuid"
)

// PasswordChecker сверяет пароль с bcrypt хешем
type PasswordChecker interface {
	Check(hashedPassword, password string) bool
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest - запрос на обновление или отзыв токенов
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LoginResponse - ответ на вход и обновление токенов
type LoginResponse struct {
	Driver       *domain.Driver `json:"driver"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	ExpiresAt    string         `json:"expires_at"`
}

// Service содержит бизнес-логику аутентификации водителей
type Service struct {
	driverRepo       repository.DriverRepository
	refreshTokenRepo repository.RefreshTokenRepository
	tokenService     *jwt.TokenService
	passwords        PasswordChecker
	sessions         session.Store
	logger           logger.Logger
}

// NewService создает новый экземпляр AuthService
func NewService(
	driverRepo repository.DriverRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	tokenService *jwt.TokenService,
	passwords PasswordChecker,
	sessions session.Store,
	logger logger.Logger,
) *Service {
	return &Service{
		driverRepo:       driverRepo,
		refreshTokenRepo: refreshTokenRepo,
		tokenService:     tokenService,
		passwords:        passwords,
		sessions:         sessions,
		logger:           logger,
	}
}

// Login аутентифицирует водителя, открывает новую сессию и выдает JWT токены
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	s.logger.Info("Driver login attempt", map[string]interface{}{
		"username": req.Username,
	})

	driver, err := s.driverRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrDriverNotFound) {
			s.logger.Warn("Login failed: driver not found", map[string]interface{}{
				"username": req.Username,
			})
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}

	// Проверяем пароль до статуса, чтобы не раскрывать существование аккаунта
	if !s.passwords.Check(driver.PasswordHash, req.Password) {
		s.logger.Warn("Login failed: invalid password", map[string]interface{}{
			"driver_id": driver.ID,
		})
		return nil, domain.ErrInvalidCredentials
	}

	if !driver.IsActive {
		s.logger.Warn("Login failed: driver inactive", map[string]interface{}{
			"driver_id": driver.ID,
		})
		return nil, domain.ErrUserInactive
	}

	resp, err := s.issueTokens(ctx, driver, uuid.New())
	if err != nil {
		return nil, err
	}

	if err := s.driverRepo.UpdateLastLogin(ctx, driver.ID); err != nil {
		s.logger.Error("Failed to update last login", map[string]interface{}{
			"error": err.Error(),
		})
	}

	s.logger.Info("Driver logged in successfully", map[string]interface{}{
		"driver_id": driver.ID,
	})

	return resp, nil
}

// Refresh обменивает refresh токен на новую пару; старый токен отзывается, сессия сохраняется
func (s *Service) Refresh(ctx context.Context, req *RefreshRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	claims, err := s.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	tokenHash := jwt.HashToken(req.RefreshToken)
	stored, err := s.refreshTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if stored.DriverID != claims.DriverID {
		return nil, domain.ErrInvalidToken
	}
	if stored.RevokedAt != nil {
		// повторное использование отозванного токена: отзываем все токены водителя
		s.logger.Warn("Refresh token reuse detected", map[string]interface{}{
			"driver_id":  claims.DriverID,
			"session_id": stored.SessionID,
		})
		if err := s.refreshTokenRepo.RevokeAllDriverTokens(ctx, claims.DriverID); err != nil {
			s.logger.Error("Failed to revoke driver tokens", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, domain.ErrInvalidToken
	}
	if !stored.IsValid() {
		return nil, domain.ErrTokenExpired
	}

	driver, err := s.driverRepo.GetByID(ctx, claims.DriverID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	if !driver.IsActive {
		return nil, domain.ErrUserInactive
	}

	if err := s.refreshTokenRepo.Revoke(ctx, tokenHash); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, driver, stored.SessionID)
}

// Logout отзывает refresh токен и удаляет данные сессии
func (s *Service) Logout(ctx context.Context, req *RefreshRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	claims, err := s.tokenService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return err
	}

	if err := s.refreshTokenRepo.Revoke(ctx, jwt.HashToken(req.RefreshToken)); err != nil {
		return err
	}

	if err := s.sessions.Destroy(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}

	s.logger.Info("Driver logged out", map[string]interface{}{
		"driver_id":  claims.DriverID,
		"session_id": claims.SessionID,
	})

	return nil
}

// GetDriverByID возвращает водителя по ID
func (s *Service) GetDriverByID(ctx context.Context, id uuid.UUID) (*domain.Driver, error) {
	driver, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Не возвращаем password_hash
	driver.PasswordHash = ""

	return driver, nil
}

// ValidateToken валидирует access токен и возвращает claims
func (s *Service) ValidateToken(tokenString string) (*jwt.Claims, error) {
	return s.tokenService.ValidateToken(tokenString)
}

// Session возвращает сессию, открытую при входе
func (s *Service) Session(id uuid.UUID) session.Session {
	return s.sessions.Load(id)
}

// PurgeExpiredTokens удаляет истекшие refresh токены
func (s *Service) PurgeExpiredTokens(ctx context.Context) error {
	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		return fmt.Errorf("failed to purge expired tokens: %w", err)
	}
	return nil
}

func (s *Service) issueTokens(ctx context.Context, driver *domain.Driver, sessionID uuid.UUID) (*LoginResponse, error) {
	pair, err := s.tokenService.GenerateTokenPair(driver, sessionID)
	if err != nil {
		s.logger.Error("Failed to generate tokens", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	refreshToken := &domain.RefreshToken{
		DriverID:  driver.ID,
		SessionID: sessionID,
		TokenHash: jwt.HashToken(pair.RefreshToken),
		ExpiresAt: pair.RefreshExpiresAt,
		CreatedAt: time.Now(),
	}
	if err := s.refreshTokenRepo.Create(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	// Не возвращаем password_hash
	driver.PasswordHash = ""

	return &LoginResponse{
		Driver:       driver,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt.Format(time.RFC3339),
	}, nil
}

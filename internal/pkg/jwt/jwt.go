package jwt

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "taxi-service"

// Типы токенов
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims содержит payload JWT токена
type Claims struct {
	DriverID  uuid.UUID `json:"driver_id"`
	Username  string    `json:"username"`
	SessionID uuid.UUID `json:"sid"`
	TokenType string    `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService управляет созданием и валидацией JWT токенов
type TokenService struct {
	secretKey     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// TokenPair содержит access и refresh токены
type TokenPair struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// NewTokenService создает новый сервис для работы с токенами
func NewTokenService(secretKey string, accessExpiry, refreshExpiry time.Duration) *TokenService {
	return &TokenService{
		secretKey:     secretKey,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// RefreshExpiry возвращает время жизни refresh токена
func (ts *TokenService) RefreshExpiry() time.Duration {
	return ts.refreshExpiry
}

// GenerateTokenPair генерирует пару токенов для водителя в рамках сессии
func (ts *TokenService) GenerateTokenPair(driver *domain.Driver, sessionID uuid.UUID) (*TokenPair, error) {
	accessToken, expiresAt, err := ts.generateToken(driver, sessionID, TokenTypeAccess, ts.accessExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := ts.generateToken(driver, sessionID, TokenTypeRefresh, ts.refreshExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresAt:        expiresAt,
		RefreshExpiresAt: refreshExpiresAt,
	}, nil
}

func (ts *TokenService) generateToken(driver *domain.Driver, sessionID uuid.UUID, tokenType string, expiry time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(expiry)

	claims := &Claims{
		DriverID:  driver.ID,
		Username:  driver.Username,
		SessionID: sessionID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti делает каждый токен уникальным, даже если выпущен в ту же секунду
			ID:        uuid.NewString(),
			Subject:   driver.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(ts.secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken валидирует access токен и возвращает claims
func (ts *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	return ts.validate(tokenString, TokenTypeAccess)
}

// ValidateRefreshToken валидирует refresh токен и возвращает claims
func (ts *TokenService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return ts.validate(tokenString, TokenTypeRefresh)
}

func (ts *TokenService) validate(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, ts.keyFunc, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != tokenType {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

func (ts *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	// Проверяем алгоритм подписи
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return []byte(ts.secretKey), nil
}

// HashToken создает SHA-256 хеш токена для хранения в БД
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

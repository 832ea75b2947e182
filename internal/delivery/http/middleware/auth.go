package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/jwt"
)

// contextKey - тип для ключей контекста
type contextKey string

const (
	// DriverClaimsKey - ключ для сохранения claims водителя в контексте
	DriverClaimsKey contextKey = "driver_claims"
)

// TokenValidator проверяет access токен
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware проверяет наличие и валидность JWT токена
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			// Проверяем формат: "Bearer <token>"
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					respondError(w, http.StatusUnauthorized, "Token expired")
					return
				}
				respondError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithClaims(r.Context(), claims)))
		})
	}
}

// GetDriverClaims извлекает claims водителя из контекста
func GetDriverClaims(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(DriverClaimsKey).(*jwt.Claims)
	return claims, ok
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	body, _ := json.Marshal(map[string]interface{}{
		"success": false,
		"error":   message,
	})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

func contextWithClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	return context.WithValue(ctx, DriverClaimsKey, claims)
}

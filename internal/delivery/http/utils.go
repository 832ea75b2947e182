package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Адреса списков, на которые клиент переходит после изменений
const (
	manufacturerListURL = "/api/v1/manufacturers"
	carListURL          = "/api/v1/cars"
	driverListURL       = "/api/v1/drivers"
)

// maxBodyBytes ограничивает размер JSON тела запроса
const maxBodyBytes = 1 << 20

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondData отправляет успешный ответ с данными
func respondData(w http.ResponseWriter, code int, data interface{}) {
	respondJSON(w, code, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// respondRedirect отправляет успешный ответ изменения с адресом для перехода
func respondRedirect(w http.ResponseWriter, code int, data interface{}, redirectTo string) {
	payload := map[string]interface{}{
		"success":     true,
		"redirect_to": redirectTo,
	}
	if data != nil {
		payload["data"] = data
	}
	respondJSON(w, code, payload)
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// respondDomainError выбирает HTTP статус по виду ошибки.
// Неизвестные ошибки логируются и скрываются за fallback сообщением.
func respondDomainError(w http.ResponseWriter, log logger.Logger, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "Validation failed",
			"fields":  verr.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUniqueViolation), errors.Is(err, domain.ErrIntegrityViolation):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrTokenExpired):
		respondError(w, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, domain.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, domain.ErrUserInactive):
		respondError(w, http.StatusForbidden, "Driver account is inactive")
	default:
		log.Error(fallback, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

// decodeJSON читает тело запроса в dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// uuidParam извлекает UUID из параметра маршрута chi
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

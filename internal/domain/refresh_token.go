package domain

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken - refresh токен, выданный водителю при входе
type RefreshToken struct {
	ID        uuid.UUID  `json:"id"`
	DriverID  uuid.UUID  `json:"driver_id"`
	SessionID uuid.UUID  `json:"session_id"`
	TokenHash string     `json:"-"` // Храним только хеш
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// IsValid - токен не отозван и не истек
func (rt *RefreshToken) IsValid() bool {
	if rt.RevokedAt != nil {
		return false
	}
	return time.Now().Before(rt.ExpiresAt)
}

// Revoke отзывает токен
func (rt *RefreshToken) Revoke() {
	now := time.Now()
	rt.RevokedAt = &now
}

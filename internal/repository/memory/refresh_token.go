package memory

import (
	"context"
	"time"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/google/uuid"
)

type refreshTokenRepository struct {
	s *Store
}

func (r *refreshTokenRepository) Create(_ context.Context, token *domain.RefreshToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.drivers[token.DriverID]; !ok {
		return domain.IntegrityViolation("refresh_tokens_driver_id_fkey")
	}
	if _, exists := r.s.refreshTokens[token.TokenHash]; exists {
		return domain.UniqueViolation("refresh_tokens_token_hash_key")
	}

	token.ID = uuid.New()
	stored := *token
	r.s.refreshTokens[token.TokenHash] = &stored
	return nil
}

func (r *refreshTokenRepository) GetByTokenHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	token, ok := r.s.refreshTokens[tokenHash]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	out := *token
	return &out, nil
}

func (r *refreshTokenRepository) Revoke(_ context.Context, tokenHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	token, ok := r.s.refreshTokens[tokenHash]
	if !ok || token.RevokedAt != nil {
		return domain.ErrInvalidToken
	}
	token.Revoke()
	return nil
}

func (r *refreshTokenRepository) RevokeAllDriverTokens(_ context.Context, driverID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, token := range r.s.refreshTokens {
		if token.DriverID == driverID && token.RevokedAt == nil {
			token.Revoke()
		}
	}
	return nil
}

func (r *refreshTokenRepository) DeleteExpired(_ context.Context) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for hash, token := range r.s.refreshTokens {
		if token.ExpiresAt.Before(now) {
			delete(r.s.refreshTokens, hash)
		}
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/taxi/internal/domain"
	"github.com/frontandrew/taxi/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type refreshTokenRepository struct {
	db *pgxpool.Pool
}

// NewRefreshTokenRepository создает новый экземпляр RefreshTokenRepository
func NewRefreshTokenRepository(db *pgxpool.Pool) repository.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Create сохраняет новый refresh token
func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (driver_id, session_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		token.DriverID,
		token.SessionID,
		token.TokenHash,
		token.ExpiresAt,
		token.CreatedAt,
	).Scan(&token.ID)

	if err != nil {
		return fmt.Errorf("failed to create refresh token: %w", err)
	}

	return nil
}

// GetByTokenHash возвращает refresh token по хешу
func (r *refreshTokenRepository) GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	query := `
		SELECT id, driver_id, session_id, token_hash, expires_at, created_at, revoked_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`

	var token domain.RefreshToken
	err := r.db.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.DriverID,
		&token.SessionID,
		&token.TokenHash,
		&token.ExpiresAt,
		&token.CreatedAt,
		&token.RevokedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &token, nil
}

// Revoke отзывает refresh token
func (r *refreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrInvalidToken
	}

	return nil
}

// RevokeAllDriverTokens отзывает все токены водителя
func (r *refreshTokenRepository) RevokeAllDriverTokens(ctx context.Context, driverID uuid.UUID) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE driver_id = $1 AND revoked_at IS NULL
	`

	if _, err := r.db.Exec(ctx, query, driverID); err != nil {
		return fmt.Errorf("failed to revoke driver tokens: %w", err)
	}

	return nil
}

// DeleteExpired удаляет истекшие токены
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`); err != nil {
		return fmt.Errorf("failed to delete expired tokens: %w", err)
	}

	return nil
}

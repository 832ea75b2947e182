// Package session - серверные сессии водителей.
// Сессия создается при входе, ее id передается в claim "sid" токенов.
package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// Session - хранилище ключ-значение одной сессии
type Session interface {
	ID() uuid.UUID

	// Get возвращает значение по ключу или def, если ключа нет
	Get(ctx context.Context, key string, def interface{}) (interface{}, error)

	// Set сохраняет значение по ключу
	Set(ctx context.Context, key string, value interface{}) error
}

// Store выдает сессии по id и удаляет их
type Store interface {
	// Load возвращает сессию; несуществующая сессия пуста и создается при первой записи
	Load(id uuid.UUID) Session

	// Destroy удаляет все данные сессии
	Destroy(ctx context.Context, id uuid.UUID) error
}

// GetInt читает целое значение. Redis хранит строки, поэтому
// значение приводится через cast.
func GetInt(ctx context.Context, s Session, key string, def int) (int, error) {
	raw, err := s.Get(ctx, key, def)
	if err != nil {
		return 0, err
	}

	value, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("session value %q is not an integer: %w", key, err)
	}
	return value, nil
}

type contextKey struct{}

// WithSession кладет сессию в контекст запроса
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext достает сессию из контекста запроса
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

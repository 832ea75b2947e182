package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Backend - операции Redis, которые нужны сессиям (реализует *redis.Client из internal/pkg/redis)
type Backend interface {
	HGet(ctx context.Context, key, field string) (string, bool, error)
	HSetWithTTL(ctx context.Context, key, field string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// RedisStore хранит каждую сессию в хеше <prefix><sid>
type RedisStore struct {
	backend Backend
	prefix  string
	ttl     time.Duration
}

// NewRedisStore создает хранилище сессий в Redis; каждая запись продлевает TTL
func NewRedisStore(backend Backend, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{backend: backend, prefix: prefix, ttl: ttl}
}

// Load возвращает сессию по id
func (s *RedisStore) Load(id uuid.UUID) Session {
	return &redisSession{store: s, id: id}
}

// Destroy удаляет хеш сессии
func (s *RedisStore) Destroy(ctx context.Context, id uuid.UUID) error {
	if err := s.backend.Del(ctx, s.key(id)); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

func (s *RedisStore) key(id uuid.UUID) string {
	return s.prefix + id.String()
}

type redisSession struct {
	store *RedisStore
	id    uuid.UUID
}

func (rs *redisSession) ID() uuid.UUID {
	return rs.id
}

func (rs *redisSession) Get(ctx context.Context, key string, def interface{}) (interface{}, error) {
	value, found, err := rs.store.backend.HGet(ctx, rs.store.key(rs.id), key)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !found {
		return def, nil
	}
	return value, nil
}

func (rs *redisSession) Set(ctx context.Context, key string, value interface{}) error {
	if err := rs.store.backend.HSetWithTTL(ctx, rs.store.key(rs.id), key, value, rs.store.ttl); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	values    map[string]interface{}
	expiresAt time.Time
}

// MemoryStore - хранилище сессий в памяти процесса (тесты, SESSION_DRIVER=memory)
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[uuid.UUID]*memoryEntry
}

// NewMemoryStore создает хранилище; ttl <= 0 означает бессрочные сессии
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, sessions: make(map[uuid.UUID]*memoryEntry)}
}

// Load возвращает сессию по id
func (s *MemoryStore) Load(id uuid.UUID) Session {
	return &memorySession{store: s, id: id}
}

// Destroy удаляет данные сессии
func (s *MemoryStore) Destroy(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// entryLocked возвращает живую запись сессии, удаляя просроченную
func (s *MemoryStore) entryLocked(id uuid.UUID) (*memoryEntry, bool) {
	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return entry, true
}

type memorySession struct {
	store *MemoryStore
	id    uuid.UUID
}

func (ms *memorySession) ID() uuid.UUID {
	return ms.id
}

func (ms *memorySession) Get(_ context.Context, key string, def interface{}) (interface{}, error) {
	ms.store.mu.Lock()
	defer ms.store.mu.Unlock()

	entry, ok := ms.store.entryLocked(ms.id)
	if !ok {
		return def, nil
	}
	value, ok := entry.values[key]
	if !ok {
		return def, nil
	}
	return value, nil
}

func (ms *memorySession) Set(_ context.Context, key string, value interface{}) error {
	ms.store.mu.Lock()
	defer ms.store.mu.Unlock()

	entry, ok := ms.store.entryLocked(ms.id)
	if !ok {
		entry = &memoryEntry{values: make(map[string]interface{})}
		ms.store.sessions[ms.id] = entry
	}
	entry.values[key] = value
	if ms.store.ttl > 0 {
		entry.expiresAt = time.Now().Add(ms.store.ttl)
	}
	return nil
}

package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeBackend хранит хеши как строки, так же как Redis
type fakeBackend struct {
	hashes map[string]map[string]string
	ttls   map[string]time.Duration
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{hashes: map[string]map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeBackend) HGet(_ context.Context, key, field string) (string, bool, error) {
	v, ok := f.hashes[key][field]
	return v, ok, nil
}

func (f *fakeBackend) HSetWithTTL(_ context.Context, key, field string, value interface{}, ttl time.Duration) error {
	if f.hashes[key] == nil {
		f.hashes[key] = map[string]string{}
	}
	f.hashes[key][field] = fmt.Sprint(value)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeBackend) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.hashes, k)
	}
	return nil
}

type mockBackend struct {
	mock.Mock
}

func (m *mockBackend) HGet(ctx context.Context, key, field string) (string, bool, error) {
	args := m.Called(ctx, key, field)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockBackend) HSetWithTTL(ctx context.Context, key, field string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, field, value, ttl).Error(0)
}

func (m *mockBackend) Del(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func stores() map[string]func() Store {
	return map[string]func() Store{
		"redis":  func() Store { return NewRedisStore(newFakeBackend(), "session:", time.Hour) },
		"memory": func() Store { return NewMemoryStore(time.Hour) },
	}
}

func TestStore_GetSetDestroy(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore()
			id := uuid.New()
			s := store.Load(id)
			assert.Equal(t, id, s.ID())

			v, err := GetInt(ctx, s, "num_visits", 0)
			require.NoError(t, err)
			assert.Equal(t, 0, v)

			require.NoError(t, s.Set(ctx, "num_visits", 3))
			v, err = GetInt(ctx, store.Load(id), "num_visits", 0)
			require.NoError(t, err)
			assert.Equal(t, 3, v)

			// другая сессия не видит чужих значений
			v, err = GetInt(ctx, store.Load(uuid.New()), "num_visits", 0)
			require.NoError(t, err)
			assert.Equal(t, 0, v)

			require.NoError(t, store.Destroy(ctx, id))
			v, err = GetInt(ctx, store.Load(id), "num_visits", 7)
			require.NoError(t, err)
			assert.Equal(t, 7, v)
		})
	}
}

func TestRedisStore_KeyAndTTL(t *testing.T) {
	backend := newFakeBackend()
	store := NewRedisStore(backend, "session:", 2*time.Hour)
	id := uuid.New()

	require.NoError(t, store.Load(id).Set(context.Background(), "num_visits", 1))

	key := "session:" + id.String()
	assert.Equal(t, "1", backend.hashes[key]["num_visits"])
	assert.Equal(t, 2*time.Hour, backend.ttls[key])
}

func TestRedisStore_BackendErrors(t *testing.T) {
	ctx := context.Background()
	backend := new(mockBackend)
	store := NewRedisStore(backend, "session:", time.Hour)
	id := uuid.New()
	key := "session:" + id.String()
	boom := errors.New("connection refused")

	backend.On("HGet", ctx, key, "num_visits").Return("", false, boom)
	backend.On("HSetWithTTL", ctx, key, "num_visits", 1, time.Hour).Return(boom)
	backend.On("Del", ctx, []string{key}).Return(boom)

	_, err := store.Load(id).Get(ctx, "num_visits", 0)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Load(id).Set(ctx, "num_visits", 1), boom)
	assert.ErrorIs(t, store.Destroy(ctx, id), boom)

	backend.AssertExpectations(t)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Millisecond)
	s := store.Load(uuid.New())

	require.NoError(t, s.Set(ctx, "k", "v"))
	time.Sleep(5 * time.Millisecond)

	v, err := s.Get(ctx, "k", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", v)
}

func TestGetInt_NotInteger(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0).Load(uuid.New())
	require.NoError(t, s.Set(ctx, "num_visits", "many"))

	_, err := GetInt(ctx, s, "num_visits", 0)
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := NewMemoryStore(0).Load(uuid.New())
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Equal(t, s.ID(), got.ID())
}

package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-property/pkg/selection"
	"github.com/redis/go-redis/v9"
)

// StateStore persists the selection state of a session between requests.
type StateStore interface {
	Load(ctx context.Context, id string) (selection.State, bool, error)
	Save(ctx context.Context, id string, state selection.State) error
	Close() error
}

type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]selection.State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]selection.State)}
}

func (m *MemoryStore) Load(_ context.Context, id string) (selection.State, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.states[id]
	return s, ok, nil
}

func (m *MemoryStore) Save(_ context.Context, id string, state selection.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = state
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

const redisKeyPrefix = "property-session:"

type RedisStore struct {
	client     *redis.Client
	expiration time.Duration
}

func NewRedisStore(addr, password string, db int, expiration time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb, expiration: expiration}
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Load(ctx context.Context, id string) (selection.State, bool, error) {
	state := selection.DefaultState()
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return state, false, nil
	}
	if err != nil {
		return state, false, err
	}
	if err = sonic.Unmarshal(data, &state); err != nil {
		return selection.DefaultState(), false, err
	}
	return state, true, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, state selection.State) error {
	data, err := sonic.Marshal(state)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKey(id), data, r.expiration).Err()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

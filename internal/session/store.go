package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// Store persists the identity bound to a session id.
type Store interface {
	Load(ctx context.Context, sid string) (models.Identity, bool, error)
	Save(ctx context.Context, sid string, id models.Identity, ttl time.Duration) error
	Delete(ctx context.Context, sid string) error
}

// ======================================================
// MEMORY
// ======================================================

type memoryEntry struct {
	identity models.Identity
	expires  time.Time
}

type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(_ context.Context, sid string) (models.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sid]
	if !ok {
		return models.Identity{}, false, nil
	}
	if !e.expires.IsZero() && s.now().After(e.expires) {
		delete(s.entries, sid)
		return models.Identity{}, false, nil
	}
	return e.identity, true, nil
}

func (s *MemoryStore) Save(_ context.Context, sid string, id models.Identity, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := memoryEntry{identity: id}
	if ttl > 0 {
		e.expires = s.now().Add(ttl)
	}
	s.entries[sid] = e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sid)
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// ======================================================
// REDIS
// ======================================================

const redisPrefix = "session:"

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, sid string) (models.Identity, bool, error) {
	raw, err := s.rdb.Get(ctx, redisPrefix+sid).Bytes()
	if err == redis.Nil {
		return models.Identity{}, false, nil
	}
	if err != nil {
		return models.Identity{}, false, err
	}

	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		// A corrupt record behaves like no session.
		return models.Identity{}, false, nil
	}
	return id, true, nil
}

func (s *RedisStore) Save(ctx context.Context, sid string, id models.Identity, ttl time.Duration) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, redisPrefix+sid, raw, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, redisPrefix+sid).Err()
}

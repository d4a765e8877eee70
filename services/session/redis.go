// File: services/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tablebooker/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "tb:session:"

// RedisStore keeps sessions in Redis with a TTL refreshed on every write.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		locks:  make(map[string]*sync.Mutex),
	}
}

// Get loads a session, returning a fresh one when the key is absent.
func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Result()
	if err == redis.Nil {
		return models.NewSession(id), nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Put stores a session and refreshes its TTL.
func (s *RedisStore) Put(ctx context.Context, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+sess.ID, b, s.ttl).Err()
}

// Expire removes a session, and its turn lock, immediately.
func (s *RedisStore) Expire(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.locks, id)
	s.mu.Unlock()
	return s.client.Del(ctx, sessionPrefix+id).Err()
}

// Lock serializes turns for one session within this process. Redis expiry
// handles cross-process lifetime; turn ordering is a per-instance concern
// because a client sticks to one instance for the life of a conversation.
func (s *RedisStore) Lock(id string) func() {
	s.mu.Lock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

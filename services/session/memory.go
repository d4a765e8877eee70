package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tablebooker/models"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Used in development and
// tests; entries are evicted lazily once past their TTL.
type MemoryStore struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]memoryEntry

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewMemoryStore creates an in-memory session store. A zero ttl means
// process-lifetime sessions.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]memoryEntry),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Get loads a session, returning a fresh one when absent or expired.
func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return models.NewSession(id), nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return models.NewSession(id), nil
	}

	var sess models.Session
	if err := json.Unmarshal(entry.data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Put stores a session and refreshes its TTL.
func (s *MemoryStore) Put(ctx context.Context, sess *models.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[sess.ID] = memoryEntry{data: b, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

// Expire removes a session, and its turn lock, immediately.
func (s *MemoryStore) Expire(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	s.lockMu.Lock()
	delete(s.locks, id)
	s.lockMu.Unlock()
	return nil
}

// Lock serializes turns for one session.
func (s *MemoryStore) Lock(id string) func() {
	s.lockMu.Lock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	s.lockMu.Unlock()

	m.Lock()
	return m.Unlock
}

package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process session store. It is safe for concurrent
// use. When full, it drops expired sessions first and then the session
// closest to expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	now      func() time.Time
}

// NewMemoryStore creates a store holding at most max sessions. A max of
// zero or less means DefaultMaxSessions.
func NewMemoryStore(max int) *MemoryStore {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		max:      max,
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	if s.IsExpired(m.now()) {
		m.removeExpired(s)
		return nil, notFound(id)
	}
	return s, nil
}

// removeExpired deletes s unless its ID was stored again since it was
// read.
func (m *MemoryStore) removeExpired(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[s.ID] == s {
		delete(m.sessions, s.ID)
	}
}

func (m *MemoryStore) Put(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[s.ID]; !ok && len(m.sessions) >= m.max {
		m.cleanupLocked()
		if len(m.sessions) >= m.max {
			m.evictLocked()
		}
	}
	m.sessions[s.ID] = s
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Cleanup(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cleanupLocked(), nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run calls Cleanup every interval until ctx is done.
func (m *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_, _ = m.Cleanup(ctx)
		}
	}
}

func (m *MemoryStore) cleanupLocked() int {
	now := m.now()
	n := 0
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *MemoryStore) evictLocked() {
	var victim *Session
	for _, s := range m.sessions {
		if victim == nil || s.ExpiresAt.Before(victim.ExpiresAt) {
			victim = s
		}
	}
	if victim != nil {
		delete(m.sessions, victim.ID)
	}
}

var _ Store = (*MemoryStore)(nil)

package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the server-side authenticated state referenced by the cookie.
type Session struct {
	ID        string
	Role      string
	Username  string
	CreatedAt time.Time
}

// SessionStore keeps sessions in memory. Sessions end on explicit logout or
// TTL expiry; there are no other state transitions.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
	}
}

func (s *SessionStore) Create(role, username string) Session {
	session := Session{
		ID:        uuid.NewString(),
		Role:      role,
		Username:  username,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if time.Since(session.CreatedAt) > s.ttl {
		delete(s.sessions, id)
		return Session{}, false
	}
	return session, true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

package inmemstore

import (
	"context"
	"sync"
	"time"

	"github.com/courati/console/core/session"
)

// SessionStore is the in-memory session.Store used in dev and tests.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]session.Session)}
}

func (s *SessionStore) Create(ctx context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sess.ID]; !ok {
		return session.ErrNotFound
	}
	sess.LastSeenAt = time.Now().UTC()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *SessionStore) SaveAccessToken(ctx context.Context, id, access string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return session.ErrNotFound
	}
	sess.AccessToken = access
	s.sessions[id] = sess
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

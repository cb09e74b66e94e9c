package repository

import (
	"context"
	"sync"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
)

// memorySessionStore holds sessions in a process-local map. It backs tests
// and single-node development runs; production wiring uses the redis store.
type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func NewMemorySessionStore() domain.SessionStore {
	return &memorySessionStore{sessions: make(map[string]domain.Session)}
}

// cloneSession copies the session deeply enough that callers mutating the
// returned value never alias the stored cart lines.
func cloneSession(sess domain.Session) domain.Session {
	if sess.Cart.Lines != nil {
		lines := make([]domain.CartLine, len(sess.Cart.Lines))
		copy(lines, sess.Cart.Lines)
		sess.Cart.Lines = lines
	}
	if sess.UserID != nil {
		userID := *sess.UserID
		sess.UserID = &userID
	}
	return sess
}

func (s *memorySessionStore) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	out := cloneSession(sess)
	return &out, nil
}

func (s *memorySessionStore) SaveSession(ctx context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = cloneSession(*sess)
	return nil
}

func (s *memorySessionStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *memorySessionStore) UpdateSession(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = domain.Session{ID: id}
	}
	working := cloneSession(sess)
	if err := fn(&working); err != nil {
		return nil, err
	}
	s.sessions[id] = cloneSession(working)
	return &working, nil
}

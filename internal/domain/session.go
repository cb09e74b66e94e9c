package domain

import "context"

// Session is the per-visitor state keyed by the sid cookie. It carries the
// cart and, after login, the account ID. Everything else about a visitor is
// derived from these two fields.
type Session struct {
	ID     string `json:"id"`
	UserID *int64 `json:"user_id,omitempty"`
	Cart   Cart   `json:"cart"`
}

func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil
}

// SessionStore keeps sessions in an external key-value store with a TTL.
//
// UpdateSession is the only safe way to mutate a session: it serializes
// read-modify-write cycles per session ID, so two tabs racing on cart
// mutations cannot lose each other's writes. A missing or expired session
// is treated as a fresh empty one, never an error. If fn returns an error
// the session is left unchanged and the error is passed through.
type SessionStore interface {
	GetSession(ctx context.Context, id string) (*Session, error)
	SaveSession(ctx context.Context, sess *Session) error
	DeleteSession(ctx context.Context, id string) error
	UpdateSession(ctx context.Context, id string, fn func(*Session) error) (*Session, error)
}

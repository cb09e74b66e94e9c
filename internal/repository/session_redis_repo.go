package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MayankPandey2611/E-commerce-Application/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	sessionLockTTL      = 5 * time.Second
	sessionLockAttempts = 10
	sessionLockBackoff  = 20 * time.Millisecond
)

// releaseLockScript deletes the lock only if this holder still owns it, so a
// holder that outlived the lock TTL cannot release somebody else's lock.
const releaseLockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration, logger *logrus.Logger) domain.SessionStore {
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
		log:    logger,
	}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func sessionLockKey(id string) string {
	return fmt.Sprintf("lock:session:%s", id)
}

func (s *redisSessionStore) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	key := sessionKey(id)

	// Reading a session also slides its expiry forward.
	pipe := s.client.TxPipeline()
	getCmd := pipe.Get(ctx, key)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		s.log.Errorf("Failed to get session %s: %v", id, err)
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	data, err := getCmd.Bytes()
	if err != nil {
		s.log.Errorf("Failed to read session %s payload: %v", id, err)
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		s.log.Errorf("Failed to unmarshal session %s: %v", id, err)
		return nil, fmt.Errorf("could not decode session: %w", err)
	}
	return &sess, nil
}

func (s *redisSessionStore) SaveSession(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("could not encode session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		s.log.Errorf("Failed to save session %s: %v", sess.ID, err)
		return fmt.Errorf("could not save session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) DeleteSession(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		s.log.Errorf("Failed to delete session %s: %v", id, err)
		return fmt.Errorf("could not delete session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) UpdateSession(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	lockValue, err := s.acquireSessionLock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.releaseSessionLock(ctx, id, lockValue)

	sess, err := s.GetSession(ctx, id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		sess = &domain.Session{ID: id}
	} else if err != nil {
		return nil, err
	}

	if err := fn(sess); err != nil {
		return nil, err
	}
	if err := s.SaveSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// acquireSessionLock takes the per-session write lock, retrying with backoff
// while another request holds it. The returned value proves ownership on
// release.
func (s *redisSessionStore) acquireSessionLock(ctx context.Context, id string) (string, error) {
	lockKey := sessionLockKey(id)
	lockValue := uuid.NewString()

	backoff := sessionLockBackoff
	for attempt := 0; attempt < sessionLockAttempts; attempt++ {
		acquired, err := s.client.SetNX(ctx, lockKey, lockValue, sessionLockTTL).Result()
		if err != nil {
			s.log.Errorf("Failed to acquire lock for session %s: %v", id, err)
			return "", fmt.Errorf("could not lock session: %w", err)
		}
		if acquired {
			return lockValue, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	s.log.Warnf("Gave up acquiring lock for session %s after %d attempts", id, sessionLockAttempts)
	return "", fmt.Errorf("could not lock session %s: too many concurrent updates", id)
}

func (s *redisSessionStore) releaseSessionLock(ctx context.Context, id, lockValue string) {
	result, err := s.client.Eval(ctx, releaseLockScript, []string{sessionLockKey(id)}, lockValue).Result()
	if err != nil {
		s.log.Errorf("Failed to release lock for session %s: %v", id, err)
		return
	}
	if v, ok := result.(int64); ok && v == 0 {
		s.log.Warnf("Lock for session %s expired before release", id)
	}
}

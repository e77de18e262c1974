package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/courati/console/core"
	"github.com/courati/console/core/session"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions as JSON values with a sliding TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(client *redis.Client, conf *core.Config) *SessionStore {
	return &SessionStore{client: client, ttl: conf.Server.SessionTTL}
}

func (s *SessionStore) Create(ctx context.Context, sess session.Session) error {
	return s.set(ctx, sess)
}

func (s *SessionStore) Get(ctx context.Context, id string) (session.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return session.Session{}, session.ErrNotFound
	}
	if err != nil {
		return session.Session{}, errors.Wrap(err, "reading session")
	}
	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return session.Session{}, errors.Wrap(err, "parsing stored session")
	}
	// sliding expiry
	_ = s.client.Expire(ctx, sessionKeyPrefix+id, s.ttl).Err()
	return sess, nil
}

func (s *SessionStore) Save(ctx context.Context, sess session.Session) error {
	return s.set(ctx, sess)
}

func (s *SessionStore) SaveAccessToken(ctx context.Context, id, access string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	sess.AccessToken = access
	return s.set(ctx, sess)
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return errors.Wrap(s.client.Del(ctx, sessionKeyPrefix+id).Err(), "deleting session")
}

func (s *SessionStore) set(ctx context.Context, sess session.Session) error {
	sess.LastSeenAt = time.Now().UTC()
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "marshalling session")
	}
	return errors.Wrap(s.client.Set(ctx, sessionKeyPrefix+sess.ID, data, s.ttl).Err(), "writing session")
}

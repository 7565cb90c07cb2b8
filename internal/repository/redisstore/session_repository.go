package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"workshop-wizard-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "workshop:session:"

// SessionRepository shares live sessions between instances through Redis.
// Sessions are stored as JSON and expire after ttl without a Save.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func key(workshopID string) string {
	return keyPrefix + workshopID
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.WorkshopID, err)
	}
	return r.rdb.Set(ctx, key(session.WorkshopID), raw, r.ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, workshopID string) (*store.Session, error) {
	raw, err := r.rdb.Get(ctx, key(workshopID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var session store.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", workshopID, err)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, workshopID string) error {
	return r.rdb.Del(ctx, key(workshopID)).Err()
}

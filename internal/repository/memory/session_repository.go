package memory

import (
	"context"
	"time"

	"workshop-wizard-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps live sessions in process memory. Idle sessions
// expire after ttl; every Save resets the clock.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	cleanup := ttl / 6
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &SessionRepository{
		cache: cache.New(ttl, cleanup),
	}
}

func (r *SessionRepository) Save(_ context.Context, session *store.Session) error {
	stored := *session
	r.cache.Set(session.WorkshopID, &stored, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(_ context.Context, workshopID string) (*store.Session, error) {
	if x, found := r.cache.Get(workshopID); found {
		session := *x.(*store.Session)
		return &session, nil
	}
	return nil, nil
}

func (r *SessionRepository) Delete(_ context.Context, workshopID string) error {
	r.cache.Delete(workshopID)
	return nil
}

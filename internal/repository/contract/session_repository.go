package contract

import (
	"context"

	"workshop-wizard-be/pkg/store"
)

// SessionRepository holds live workshop sessions. Get returns nil, nil when
// the session is absent or expired.
type SessionRepository interface {
	Get(ctx context.Context, workshopID string) (*store.Session, error)
	Save(ctx context.Context, session *store.Session) error
	Delete(ctx context.Context, workshopID string) error
}

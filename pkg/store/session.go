package store

import (
	"time"

	"workshop-wizard-be/pkg/workshop"
)

// Session is the live, in-progress state of one open workshop. The reducer
// state (with its undo history) lives here; only the current document is
// persisted.
type Session struct {
	WorkshopID string         `json:"workshop_id"`
	UserID     string         `json:"user_id"`
	State      workshop.State `json:"state"`

	// Revision increases with every applied action. Autosave compares it
	// against the revision it last flushed.
	Revision  int64     `json:"revision"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession opens a live session on a persisted document.
func NewSession(workshopID, userID string, doc workshop.Document, now time.Time) *Session {
	return &Session{
		WorkshopID: workshopID,
		UserID:     userID,
		State:      workshop.NewState(doc),
		UpdatedAt:  now,
	}
}

// Apply runs one action through the reducer and bumps the revision.
func (s *Session) Apply(r *workshop.Reducer, a workshop.Action, now time.Time) {
	s.State = r.Reduce(s.State, a)
	s.Revision++
	s.UpdatedAt = now
}

package entity

import (
	"time"

	"workshop-wizard-be/pkg/workshop"

	"github.com/google/uuid"
)

// Workshop is one persisted wizard session owned by a single user.
type Workshop struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Title        string
	Document     workshop.Document
	Version      string // envelope version the document was stored with
	CurrentStep  int
	IsCompleted  bool
	LastAccessed time.Time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

// Migrated reports whether the stored envelope predates the current format.
func (w *Workshop) Migrated() bool {
	return w.Version != workshop.Version
}

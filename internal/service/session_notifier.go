package service

import (
	"context"

	"workshop-wizard-be/internal/dto"

	"github.com/google/uuid"
)

// SessionNotifier is told about every change to a live session so other
// browser tabs on the same workshop can follow along.
type SessionNotifier interface {
	SessionChanged(ctx context.Context, workshopId uuid.UUID, update *dto.DispatchResponse)
}

type NopSessionNotifier struct{}

func (NopSessionNotifier) SessionChanged(context.Context, uuid.UUID, *dto.DispatchResponse) {}

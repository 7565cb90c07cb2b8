package contract

import (
	"context"
	"time"

	"workshop-wizard-be/internal/entity"
	"workshop-wizard-be/internal/repository/specification"
	"workshop-wizard-be/pkg/workshop"

	"github.com/google/uuid"
)

type WorkshopRepository interface {
	Create(ctx context.Context, w *entity.Workshop) error
	Update(ctx context.Context, w *entity.Workshop) error
	// Delete soft-deletes every row matching specs and reports how many went.
	Delete(ctx context.Context, specs ...specification.Specification) (int64, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Workshop, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Workshop, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	TouchLastAccessed(ctx context.Context, id uuid.UUID, at time.Time) error
	// SaveDocument writes the document envelope and its current step. It
	// returns false when the workshop no longer exists.
	SaveDocument(ctx context.Context, id uuid.UUID, doc workshop.Document, at time.Time) (bool, error)
}

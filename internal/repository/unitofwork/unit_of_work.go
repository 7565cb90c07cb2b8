package unitofwork

import (
	"context"

	"workshop-wizard-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	WorkshopRepository() contract.WorkshopRepository
}

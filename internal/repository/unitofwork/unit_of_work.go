package unitofwork

import (
	"context"

	"mdt-records-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CitizenRepository() contract.CitizenRepository
	OfficerRepository() contract.OfficerRepository
	ArrestRepository() contract.ArrestRepository
	WantedRepository() contract.WantedRepository
}

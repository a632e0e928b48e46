package contract

import (
	"context"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/repository/specification"
)

type OfficerRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Officer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Officer, error)
}

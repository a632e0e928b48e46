package contract

import (
	"context"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/repository/specification"
)

type CitizenRepository interface {
	Update(ctx context.Context, citizen *entity.Citizen) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Citizen, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Citizen, error)
}

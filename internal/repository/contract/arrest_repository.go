package contract

import (
	"context"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/repository/specification"
)

type ArrestRepository interface {
	Create(ctx context.Context, arrest *entity.Arrest) error
	Update(ctx context.Context, arrest *entity.Arrest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Arrest, error)
	FindRecent(ctx context.Context, specs ...specification.Specification) ([]*entity.Arrest, error)
}

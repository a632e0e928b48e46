package contract

import (
	"context"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/repository/specification"

	"github.com/google/uuid"
)

type WantedRepository interface {
	Create(ctx context.Context, entry *entity.WantedEntry) error
	Update(ctx context.Context, entry *entity.WantedEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WantedEntry, error)
	FindRecent(ctx context.Context, specs ...specification.Specification) ([]*entity.WantedEntry, error)
}

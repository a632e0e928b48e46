package implementation

import (
	"context"
	"errors"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/mapper"
	"mdt-records-be/internal/model"
	"mdt-records-be/internal/repository/contract"
	"mdt-records-be/internal/repository/scope"
	"mdt-records-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WantedRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WantedMapper
}

func NewWantedRepository(db *gorm.DB) contract.WantedRepository {
	return &WantedRepositoryImpl{
		db:     db,
		mapper: mapper.NewWantedMapper(),
	}
}

func (r *WantedRepositoryImpl) Create(ctx context.Context, entry *entity.WantedEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Omit("Citizen").Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *WantedRepositoryImpl) Update(ctx context.Context, entry *entity.WantedEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Omit("Citizen").Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

// Delete is a soft delete; removed entries stay for the audit trail.
func (r *WantedRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.WantedEntry{}, id).Error
}

func (r *WantedRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WantedEntry, error) {
	var m model.WantedEntry
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.PreloadCitizen), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *WantedRepositoryImpl) FindRecent(ctx context.Context, specs ...specification.Specification) ([]*entity.WantedEntry, error) {
	var models []*model.WantedEntry
	query := r.db.WithContext(ctx).Scopes(scope.PreloadCitizen, scope.OrderByCreatedDesc)
	query = applySpecifications(query, specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

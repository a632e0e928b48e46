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

	"gorm.io/gorm"
)

type ArrestRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArrestMapper
}

func NewArrestRepository(db *gorm.DB) contract.ArrestRepository {
	return &ArrestRepositoryImpl{
		db:     db,
		mapper: mapper.NewArrestMapper(),
	}
}

func (r *ArrestRepositoryImpl) Create(ctx context.Context, arrest *entity.Arrest) error {
	m := r.mapper.ToModel(arrest)
	if err := r.db.WithContext(ctx).Omit("Citizen", "Officer").Create(m).Error; err != nil {
		return err
	}
	*arrest = *r.mapper.ToEntity(m)
	return nil
}

func (r *ArrestRepositoryImpl) Update(ctx context.Context, arrest *entity.Arrest) error {
	m := r.mapper.ToModel(arrest)
	if err := r.db.WithContext(ctx).Omit("Citizen", "Officer").Save(m).Error; err != nil {
		return err
	}
	*arrest = *r.mapper.ToEntity(m)
	return nil
}

func (r *ArrestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Arrest, error) {
	var m model.Arrest
	query := applySpecifications(r.db.WithContext(ctx).Scopes(scope.PreloadArrestParties), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

// FindRecent lists arrests newest first with both parties loaded.
func (r *ArrestRepositoryImpl) FindRecent(ctx context.Context, specs ...specification.Specification) ([]*entity.Arrest, error) {
	var models []*model.Arrest
	query := r.db.WithContext(ctx).Scopes(scope.PreloadArrestParties, scope.OrderByCreatedDesc)
	query = applySpecifications(query, specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

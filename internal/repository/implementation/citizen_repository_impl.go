package implementation

import (
	"context"
	"errors"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/mapper"
	"mdt-records-be/internal/model"
	"mdt-records-be/internal/repository/contract"
	"mdt-records-be/internal/repository/specification"

	"gorm.io/gorm"
)

type CitizenRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CitizenMapper
}

func NewCitizenRepository(db *gorm.DB) contract.CitizenRepository {
	return &CitizenRepositoryImpl{
		db:     db,
		mapper: mapper.NewCitizenMapper(),
	}
}

func (r *CitizenRepositoryImpl) Update(ctx context.Context, citizen *entity.Citizen) error {
	m := r.mapper.ToModel(citizen)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*citizen = *r.mapper.ToEntity(m)
	return nil
}

func (r *CitizenRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Citizen, error) {
	var m model.Citizen
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CitizenRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Citizen, error) {
	var models []*model.Citizen
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

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

type OfficerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.OfficerMapper
}

func NewOfficerRepository(db *gorm.DB) contract.OfficerRepository {
	return &OfficerRepositoryImpl{
		db:     db,
		mapper: mapper.NewOfficerMapper(),
	}
}

func (r *OfficerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Officer, error) {
	var m model.Officer
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *OfficerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Officer, error) {
	var models []*model.Officer
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

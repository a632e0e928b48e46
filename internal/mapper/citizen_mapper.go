package mapper

import (
	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/model"
)

type CitizenMapper struct{}

func NewCitizenMapper() *CitizenMapper {
	return &CitizenMapper{}
}

func (m *CitizenMapper) ToEntity(c *model.Citizen) *entity.Citizen {
	if c == nil {
		return nil
	}
	return &entity.Citizen{
		Id:          c.Id,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DateOfBirth: c.DateOfBirth,
		Phone:       c.Phone,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   optionalTime(c.UpdatedAt),
	}
}

func (m *CitizenMapper) ToModel(c *entity.Citizen) *model.Citizen {
	if c == nil {
		return nil
	}
	return &model.Citizen{
		Id:          c.Id,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		DateOfBirth: c.DateOfBirth,
		Phone:       c.Phone,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   derefTime(c.UpdatedAt),
	}
}

func (m *CitizenMapper) ToEntities(citizens []*model.Citizen) []*entity.Citizen {
	entities := make([]*entity.Citizen, len(citizens))
	for i, c := range citizens {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

package mapper

import (
	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/model"
)

type OfficerMapper struct{}

func NewOfficerMapper() *OfficerMapper {
	return &OfficerMapper{}
}

func (m *OfficerMapper) ToEntity(o *model.Officer) *entity.Officer {
	if o == nil {
		return nil
	}
	return &entity.Officer{
		Id:        o.Id,
		Callsign:  o.Callsign,
		Name:      o.Name,
		Rank:      o.Rank,
		Badge:     o.Badge,
		Active:    o.Active,
		CreatedAt: o.CreatedAt,
	}
}

func (m *OfficerMapper) ToEntities(officers []*model.Officer) []*entity.Officer {
	entities := make([]*entity.Officer, len(officers))
	for i, o := range officers {
		entities[i] = m.ToEntity(o)
	}
	return entities
}

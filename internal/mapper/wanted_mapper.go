package mapper

import (
	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/model"

	"github.com/google/uuid"
)

type WantedMapper struct{}

func NewWantedMapper() *WantedMapper {
	return &WantedMapper{}
}

func (m *WantedMapper) ToEntity(w *model.WantedEntry) *entity.WantedEntry {
	if w == nil {
		return nil
	}
	e := &entity.WantedEntry{
		Id:          w.Id,
		CitizenId:   w.CitizenId,
		Reason:      w.Reason,
		DangerLevel: w.DangerLevel,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   optionalTime(w.UpdatedAt),
	}
	if w.Citizen.Id != uuid.Nil {
		e.CitizenName = joinName(w.Citizen.FirstName, w.Citizen.LastName)
	}
	return e
}

func (m *WantedMapper) ToModel(w *entity.WantedEntry) *model.WantedEntry {
	if w == nil {
		return nil
	}
	return &model.WantedEntry{
		Id:          w.Id,
		CitizenId:   w.CitizenId,
		Reason:      w.Reason,
		DangerLevel: w.DangerLevel,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   derefTime(w.UpdatedAt),
	}
}

func (m *WantedMapper) ToEntities(entries []*model.WantedEntry) []*entity.WantedEntry {
	entities := make([]*entity.WantedEntry, len(entries))
	for i, w := range entries {
		entities[i] = m.ToEntity(w)
	}
	return entities
}

package mapper

import (
	"time"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/model"

	"github.com/google/uuid"
)

type ArrestMapper struct{}

func NewArrestMapper() *ArrestMapper {
	return &ArrestMapper{}
}

func (m *ArrestMapper) ToEntity(a *model.Arrest) *entity.Arrest {
	if a == nil {
		return nil
	}
	e := &entity.Arrest{
		Id:        a.Id,
		CitizenId: a.CitizenId,
		OfficerId: a.OfficerId,
		Charges:   a.Charges,
		Notes:     a.Notes,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: optionalTime(a.UpdatedAt),
	}
	// Associations are only present when preloaded.
	if a.Citizen.Id != uuid.Nil {
		e.CitizenName = joinName(a.Citizen.FirstName, a.Citizen.LastName)
	}
	if a.Officer.Id != uuid.Nil {
		e.OfficerName = a.Officer.Callsign + " " + a.Officer.Name
	}
	return e
}

func (m *ArrestMapper) ToModel(a *entity.Arrest) *model.Arrest {
	if a == nil {
		return nil
	}
	return &model.Arrest{
		Id:        a.Id,
		CitizenId: a.CitizenId,
		OfficerId: a.OfficerId,
		Charges:   a.Charges,
		Notes:     a.Notes,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: derefTime(a.UpdatedAt),
	}
}

func (m *ArrestMapper) ToEntities(arrests []*model.Arrest) []*entity.Arrest {
	entities := make([]*entity.Arrest, len(arrests))
	for i, a := range arrests {
		entities[i] = m.ToEntity(a)
	}
	return entities
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func joinName(first, last string) string {
	if last == "" {
		return first
	}
	return first + " " + last
}

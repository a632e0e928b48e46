package mapper

import (
	"testing"
	"time"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestArrestMapper_FillsPartyNamesOnlyWhenPreloaded(t *testing.T) {
	m := NewArrestMapper()
	citizenID, officerID := uuid.New(), uuid.New()

	bare := m.ToEntity(&model.Arrest{Id: uuid.New(), CitizenId: citizenID, OfficerId: officerID, Status: "open"})
	assert.Empty(t, bare.CitizenName)
	assert.Empty(t, bare.OfficerName)
	assert.Nil(t, bare.UpdatedAt)

	loaded := m.ToEntity(&model.Arrest{
		Id:        uuid.New(),
		CitizenId: citizenID,
		Citizen:   model.Citizen{Id: citizenID, FirstName: "Ann", LastName: "Jones"},
		OfficerId: officerID,
		Officer:   model.Officer{Id: officerID, Callsign: "1-A-12", Name: "J. Reed"},
		UpdatedAt: time.Now(),
	})
	assert.Equal(t, "Ann Jones", loaded.CitizenName)
	assert.Equal(t, "1-A-12 J. Reed", loaded.OfficerName)
	assert.NotNil(t, loaded.UpdatedAt)
}

func TestCitizenMapper_RoundTripKeepsUpdatedAt(t *testing.T) {
	m := NewCitizenMapper()
	now := time.Now()
	e := &entity.Citizen{Id: uuid.New(), FirstName: "Zoë", UpdatedAt: &now}

	back := m.ToEntity(m.ToModel(e))
	assert.Equal(t, e.Id, back.Id)
	assert.Equal(t, "Zoë", back.FullName())
	assert.True(t, now.Equal(*back.UpdatedAt))
	assert.Nil(t, m.ToEntity(nil))
}

package service

import (
	"context"
	"errors"
	"testing"

	"mdt-records-be/internal/dto"
	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore() (*memStore, uuid.UUID, uuid.UUID) {
	store := newMemStore()
	citizenID, officerID := uuid.New(), uuid.New()
	store.citizens[citizenID] = &entity.Citizen{Id: citizenID, FirstName: "Ann", LastName: "Jones"}
	store.officers[officerID] = &entity.Officer{Id: officerID, Callsign: "1-A-12", Name: "J. Reed", Active: true}
	return store, citizenID, officerID
}

func TestRecordService_CreateArrestQueuesDefaultEvent(t *testing.T) {
	store, citizenID, officerID := seededStore()
	pub := &recordingPublisher{}
	svc := NewRecordService(store, pub, logger.NewNopLogger())

	res, err := svc.CreateArrest(context.Background(), &dto.CreateArrestRequest{
		CitizenId: citizenID,
		OfficerId: officerID,
		Charges:   "Grand theft auto",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{events.ArrestCreated}, res.Events)
	assert.Equal(t, [][]string{{events.ArrestCreated}}, pub.published())
	assert.Equal(t, 1, store.commits)
	assert.Equal(t, entity.ArrestStatusOpen, store.arrests[res.Id].Status)
}

func TestRecordService_CreateArrestUnknownPartyRollsBack(t *testing.T) {
	store, citizenID, _ := seededStore()
	pub := &recordingPublisher{}
	svc := NewRecordService(store, pub, logger.NewNopLogger())

	_, err := svc.CreateArrest(context.Background(), &dto.CreateArrestRequest{
		CitizenId: citizenID,
		OfficerId: uuid.New(),
		Charges:   "x",
	})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Equal(t, 1, store.rollback)
	assert.Empty(t, store.arrests)
	assert.Empty(t, pub.published())
}

func TestRecordService_CallerChosenEvents(t *testing.T) {
	store, citizenID, _ := seededStore()
	pub := &recordingPublisher{}
	svc := NewRecordService(store, pub, logger.NewNopLogger())

	names := []string{events.WantedCreated, events.ReportCreated}
	res, err := svc.CreateWanted(context.Background(), &dto.CreateWantedRequest{
		CitizenId:   citizenID,
		Reason:      "Failure to appear",
		DangerLevel: 2,
		Events:      names,
	})
	require.NoError(t, err)
	assert.Equal(t, names, res.Events)
	assert.Equal(t, [][]string{names}, pub.published())
}

func TestRecordService_UpdatesApplyOnlyGivenFields(t *testing.T) {
	store, citizenID, officerID := seededStore()
	arrestID := uuid.New()
	store.arrests[arrestID] = &entity.Arrest{Id: arrestID, CitizenId: citizenID, OfficerId: officerID, Charges: "a", Notes: "keep", Status: "open"}
	svc := NewRecordService(store, &recordingPublisher{}, logger.NewNopLogger())

	status := entity.ArrestStatusProcessed
	_, err := svc.UpdateArrest(context.Background(), &dto.UpdateArrestRequest{Id: arrestID, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "processed", store.arrests[arrestID].Status)
	assert.Equal(t, "keep", store.arrests[arrestID].Notes)

	phone := "555-0101"
	res, err := svc.UpdateCitizen(context.Background(), &dto.UpdateCitizenRequest{Id: citizenID, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, []string{events.CitizenUpdated}, res.Events)
	assert.Equal(t, "Ann", store.citizens[citizenID].FirstName)
	assert.Equal(t, phone, store.citizens[citizenID].Phone)
}

func TestRecordService_NotFound(t *testing.T) {
	svc := NewRecordService(newMemStore(), &recordingPublisher{}, logger.NewNopLogger())
	ctx := context.Background()

	_, err := svc.UpdateArrest(ctx, &dto.UpdateArrestRequest{Id: uuid.New()})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = svc.UpdateWanted(ctx, &dto.UpdateWantedRequest{Id: uuid.New()})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = svc.DeleteWanted(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	_, err = svc.UpdateCitizen(ctx, &dto.UpdateCitizenRequest{Id: uuid.New()})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRecordService_QueueFailureDoesNotFailCommittedChange(t *testing.T) {
	store, citizenID, _ := seededStore()
	wantedID := uuid.New()
	store.wanted[wantedID] = &entity.WantedEntry{Id: wantedID, CitizenId: citizenID, Reason: "x", DangerLevel: 1}
	log := &recordingLogger{}
	svc := NewRecordService(store, &recordingPublisher{err: errors.New("queue closed")}, log)

	res, err := svc.DeleteWanted(context.Background(), wantedID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{events.WantedRemoved}, res.Events)
	assert.NotContains(t, store.wanted, wantedID)

	warnings := log.entries("WARN")
	require.Len(t, warnings, 1)
	assert.Equal(t, "RECORD", warnings[0].module)
	assert.Equal(t, wantedID.String(), warnings[0].details["id"])
	assert.Equal(t, "queue closed", warnings[0].details["error"])
}

func TestRecordService_Lists(t *testing.T) {
	store, citizenID, officerID := seededStore()
	id := uuid.New()
	store.arrests[id] = &entity.Arrest{Id: id, CitizenId: citizenID, CitizenName: "Ann Jones", OfficerId: officerID, Status: "open"}
	svc := NewRecordService(store, &recordingPublisher{}, logger.NewNopLogger())

	rows, err := svc.ListArrests(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ann Jones", rows[0].CitizenName)

	wanted, err := svc.ListWanted(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, wanted)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mdt-records-be/internal/dto"
	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/internal/repository/specification"
	"mdt-records-be/internal/repository/unitofwork"
	"mdt-records-be/pkg/events"

	"github.com/google/uuid"
)

var ErrRecordNotFound = errors.New("record not found")

const defaultListLimit = 50

type IRecordService interface {
	ListArrests(ctx context.Context, limit int) ([]*dto.ArrestRow, error)
	ListWanted(ctx context.Context, limit int) ([]*dto.WantedRow, error)
	CreateArrest(ctx context.Context, req *dto.CreateArrestRequest) (*dto.RecordMutationResponse, error)
	UpdateArrest(ctx context.Context, req *dto.UpdateArrestRequest) (*dto.RecordMutationResponse, error)
	CreateWanted(ctx context.Context, req *dto.CreateWantedRequest) (*dto.RecordMutationResponse, error)
	UpdateWanted(ctx context.Context, req *dto.UpdateWantedRequest) (*dto.RecordMutationResponse, error)
	DeleteWanted(ctx context.Context, id uuid.UUID, names []string) (*dto.RecordMutationResponse, error)
	UpdateCitizen(ctx context.Context, req *dto.UpdateCitizenRequest) (*dto.RecordMutationResponse, error)
}

type recordService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	logger           logger.ILogger
}

func NewRecordService(uowFactory unitofwork.RepositoryFactory, publisherService IPublisherService, log logger.ILogger) IRecordService {
	return &recordService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		logger:           log,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 200 {
		return defaultListLimit
	}
	return limit
}

// eventsOrDefault lets the caller choose which views to invalidate; the
// record's own event is used when it does not.
func eventsOrDefault(names []string, fallback string) []string {
	if len(names) == 0 {
		return []string{fallback}
	}
	return names
}

// announce queues the invalidation of a committed change. The change is
// already durable, so a queue failure is logged rather than returned.
func (s *recordService) announce(ctx context.Context, source string, id uuid.UUID, names []string) *dto.RecordMutationResponse {
	if err := s.publisherService.PublishMutation(ctx, source, names); err != nil {
		s.logger.Warn("RECORD", "Failed to queue mutation", map[string]interface{}{
			"source": source,
			"id":     id.String(),
			"events": names,
			"error":  err.Error(),
		})
	}
	return &dto.RecordMutationResponse{Id: id, Events: names}
}

func (s *recordService) ListArrests(ctx context.Context, limit int) ([]*dto.ArrestRow, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	arrests, err := uow.ArrestRepository().FindRecent(ctx, specification.Pagination{Limit: clampLimit(limit)})
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.ArrestRow, 0, len(arrests))
	for _, a := range arrests {
		rows = append(rows, &dto.ArrestRow{
			Id:          a.Id,
			CitizenId:   a.CitizenId,
			CitizenName: a.CitizenName,
			OfficerId:   a.OfficerId,
			OfficerName: a.OfficerName,
			Charges:     a.Charges,
			Status:      a.Status,
			CreatedAt:   a.CreatedAt,
			UpdatedAt:   a.UpdatedAt,
		})
	}
	return rows, nil
}

func (s *recordService) ListWanted(ctx context.Context, limit int) ([]*dto.WantedRow, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.WantedRepository().FindRecent(ctx, specification.Pagination{Limit: clampLimit(limit)})
	if err != nil {
		return nil, err
	}

	rows := make([]*dto.WantedRow, 0, len(entries))
	for _, w := range entries {
		rows = append(rows, &dto.WantedRow{
			Id:          w.Id,
			CitizenId:   w.CitizenId,
			CitizenName: w.CitizenName,
			Reason:      w.Reason,
			DangerLevel: w.DangerLevel,
			CreatedAt:   w.CreatedAt,
			UpdatedAt:   w.UpdatedAt,
		})
	}
	return rows, nil
}

func (s *recordService) CreateArrest(ctx context.Context, req *dto.CreateArrestRequest) (*dto.RecordMutationResponse, error) {
	arrest := entity.Arrest{
		Id:        uuid.New(),
		CitizenId: req.CitizenId,
		OfficerId: req.OfficerId,
		Charges:   req.Charges,
		Notes:     req.Notes,
		Status:    entity.ArrestStatusOpen,
		CreatedAt: time.Now(),
	}

	err := unitofwork.WithTransaction(ctx, s.uowFactory.NewUnitOfWork(ctx), func(uow unitofwork.UnitOfWork) error {
		citizen, err := uow.CitizenRepository().FindOne(ctx, specification.ByID{ID: req.CitizenId})
		if err != nil {
			return err
		}
		if citizen == nil {
			return fmt.Errorf("citizen %s: %w", req.CitizenId, ErrRecordNotFound)
		}

		officer, err := uow.OfficerRepository().FindOne(ctx, specification.ByID{ID: req.OfficerId})
		if err != nil {
			return err
		}
		if officer == nil {
			return fmt.Errorf("officer %s: %w", req.OfficerId, ErrRecordNotFound)
		}

		return uow.ArrestRepository().Create(ctx, &arrest)
	})
	if err != nil {
		return nil, err
	}

	return s.announce(ctx, "arrest", arrest.Id, eventsOrDefault(req.Events, events.ArrestCreated)), nil
}

func (s *recordService) UpdateArrest(ctx context.Context, req *dto.UpdateArrestRequest) (*dto.RecordMutationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	arrest, err := uow.ArrestRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if arrest == nil {
		return nil, fmt.Errorf("arrest %s: %w", req.Id, ErrRecordNotFound)
	}

	if req.Charges != nil {
		arrest.Charges = *req.Charges
	}
	if req.Notes != nil {
		arrest.Notes = *req.Notes
	}
	if req.Status != nil {
		arrest.Status = *req.Status
	}
	if err := uow.ArrestRepository().Update(ctx, arrest); err != nil {
		return nil, err
	}

	return s.announce(ctx, "arrest", arrest.Id, eventsOrDefault(req.Events, events.ArrestUpdated)), nil
}

func (s *recordService) CreateWanted(ctx context.Context, req *dto.CreateWantedRequest) (*dto.RecordMutationResponse, error) {
	entry := entity.WantedEntry{
		Id:          uuid.New(),
		CitizenId:   req.CitizenId,
		Reason:      req.Reason,
		DangerLevel: req.DangerLevel,
		CreatedAt:   time.Now(),
	}

	err := unitofwork.WithTransaction(ctx, s.uowFactory.NewUnitOfWork(ctx), func(uow unitofwork.UnitOfWork) error {
		citizen, err := uow.CitizenRepository().FindOne(ctx, specification.ByID{ID: req.CitizenId})
		if err != nil {
			return err
		}
		if citizen == nil {
			return fmt.Errorf("citizen %s: %w", req.CitizenId, ErrRecordNotFound)
		}
		return uow.WantedRepository().Create(ctx, &entry)
	})
	if err != nil {
		return nil, err
	}

	return s.announce(ctx, "wanted", entry.Id, eventsOrDefault(req.Events, events.WantedCreated)), nil
}

func (s *recordService) UpdateWanted(ctx context.Context, req *dto.UpdateWantedRequest) (*dto.RecordMutationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.WantedRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("wanted entry %s: %w", req.Id, ErrRecordNotFound)
	}

	if req.Reason != nil {
		entry.Reason = *req.Reason
	}
	if req.DangerLevel != nil {
		entry.DangerLevel = *req.DangerLevel
	}
	if err := uow.WantedRepository().Update(ctx, entry); err != nil {
		return nil, err
	}

	return s.announce(ctx, "wanted", entry.Id, eventsOrDefault(req.Events, events.WantedUpdated)), nil
}

func (s *recordService) DeleteWanted(ctx context.Context, id uuid.UUID, names []string) (*dto.RecordMutationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.WantedRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("wanted entry %s: %w", id, ErrRecordNotFound)
	}
	if err := uow.WantedRepository().Delete(ctx, id); err != nil {
		return nil, err
	}

	return s.announce(ctx, "wanted", id, eventsOrDefault(names, events.WantedRemoved)), nil
}

func (s *recordService) UpdateCitizen(ctx context.Context, req *dto.UpdateCitizenRequest) (*dto.RecordMutationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	citizen, err := uow.CitizenRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if citizen == nil {
		return nil, fmt.Errorf("citizen %s: %w", req.Id, ErrRecordNotFound)
	}

	if req.FirstName != nil {
		citizen.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		citizen.LastName = *req.LastName
	}
	if req.DateOfBirth != nil {
		citizen.DateOfBirth = *req.DateOfBirth
	}
	if req.Phone != nil {
		citizen.Phone = *req.Phone
	}
	if err := uow.CitizenRepository().Update(ctx, citizen); err != nil {
		return nil, err
	}

	return s.announce(ctx, "citizen", citizen.Id, eventsOrDefault(req.Events, events.CitizenUpdated)), nil
}

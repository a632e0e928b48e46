package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"mdt-records-be/internal/config"
	"mdt-records-be/internal/dto"
	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/internal/repository/memory"
	"mdt-records-be/internal/repository/specification"
	"mdt-records-be/internal/repository/unitofwork"
	"mdt-records-be/pkg/events"
	"mdt-records-be/pkg/reactive"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	KindCitizen = "citizen"
	KindOfficer = "officer"
)

var ErrUnknownKind = errors.New("unknown lookup kind")

// CandidateSource loads lookup candidates of one kind.
type CandidateSource func(ctx context.Context, query string, limit int) ([]reactive.Candidate, error)

type ILookupService interface {
	Lookup(ctx context.Context, kind, query string, limit int) (*dto.LookupResponse, error)
	LookupFunc(kind string) (reactive.LookupFunc, error)
	Resolver() reactive.FieldResolver
	BindInvalidation(bus *reactive.RefreshBus) []*reactive.Subscription
	Invalidate(kind string) int
}

type lookupService struct {
	sources map[string]CandidateSource
	cache   *memory.LookupCache
	cfg     config.SearchConfig
	logger  logger.ILogger
}

func NewLookupService(uowFactory unitofwork.RepositoryFactory, cache *memory.LookupCache, cfg config.SearchConfig, log logger.ILogger) ILookupService {
	return newLookupService(map[string]CandidateSource{
		KindCitizen: citizenSource(uowFactory),
		KindOfficer: officerSource(uowFactory),
	}, cache, cfg, log)
}

func newLookupService(sources map[string]CandidateSource, cache *memory.LookupCache, cfg config.SearchConfig, log logger.ILogger) *lookupService {
	return &lookupService{sources: sources, cache: cache, cfg: cfg, logger: log}
}

func citizenSource(uowFactory unitofwork.RepositoryFactory) CandidateSource {
	return func(ctx context.Context, query string, limit int) ([]reactive.Candidate, error) {
		uow := uowFactory.NewUnitOfWork(ctx)
		citizens, err := uow.CitizenRepository().FindAll(ctx,
			specification.CitizenSearch{Query: query},
			specification.OrderBy{Field: "last_name"},
			specification.OrderBy{Field: "first_name"},
			specification.Pagination{Limit: limit},
		)
		if err != nil {
			return nil, err
		}
		out := make([]reactive.Candidate, 0, len(citizens))
		for _, c := range citizens {
			out = append(out, reactive.Candidate{
				ID:    c.Id.String(),
				Label: c.FullName(),
				Fields: map[string]string{
					"date_of_birth": c.DateOfBirth,
					"phone":         c.Phone,
				},
			})
		}
		return out, nil
	}
}

func officerSource(uowFactory unitofwork.RepositoryFactory) CandidateSource {
	return func(ctx context.Context, query string, limit int) ([]reactive.Candidate, error) {
		uow := uowFactory.NewUnitOfWork(ctx)
		officers, err := uow.OfficerRepository().FindAll(ctx,
			specification.OfficerSearch{Query: query},
			specification.ActiveOfficers{},
			specification.OrderBy{Field: "callsign"},
			specification.Pagination{Limit: limit},
		)
		if err != nil {
			return nil, err
		}
		out := make([]reactive.Candidate, 0, len(officers))
		for _, o := range officers {
			out = append(out, reactive.Candidate{
				ID:    o.Id.String(),
				Label: o.Callsign + " " + o.Name,
				Fields: map[string]string{
					"rank":  o.Rank,
					"badge": o.Badge,
				},
			})
		}
		return out, nil
	}
}

func (s *lookupService) Lookup(ctx context.Context, kind, query string, limit int) (*dto.LookupResponse, error) {
	source, ok := s.sources[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	query = strings.TrimSpace(query)
	if limit <= 0 || limit > s.cfg.ResultLimit {
		limit = s.cfg.ResultLimit
	}

	res := &dto.LookupResponse{Kind: kind, Query: query, Candidates: []reactive.Candidate{}}
	if utf8.RuneCountInString(query) < s.cfg.MinLength {
		return res, nil
	}

	if cached, ok := s.cache.Get(kind, query, limit); ok {
		res.Candidates = cached
		res.Cached = true
		return res, nil
	}

	ctx, span := otel.Tracer("lookup-service").Start(ctx, "lookup."+kind)
	defer span.End()
	span.SetAttributes(
		attribute.String("lookup.kind", kind),
		attribute.Int("lookup.query_length", utf8.RuneCountInString(query)),
	)

	candidates, err := source(ctx, query, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("lookup %s %q: %w", kind, query, err)
	}
	span.SetAttributes(attribute.Int("lookup.results", len(candidates)))

	s.cache.Save(kind, query, limit, candidates)
	res.Candidates = candidates
	return res, nil
}

// LookupFunc adapts one kind to the search session's lookup signature.
func (s *lookupService) LookupFunc(kind string) (reactive.LookupFunc, error) {
	if _, ok := s.sources[kind]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	timeout := s.cfg.RequestTimeout
	return func(ctx context.Context, query string) ([]reactive.Candidate, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		res, err := s.Lookup(ctx, kind, query, s.cfg.ResultLimit)
		if err != nil {
			return nil, err
		}
		return res.Candidates, nil
	}, nil
}

// Resolver maps form fields to lookups using the configured field kinds.
func (s *lookupService) Resolver() reactive.FieldResolver {
	return func(field string) (reactive.FieldBinding, error) {
		kind, ok := s.cfg.FieldKinds[field]
		if !ok {
			return reactive.FieldBinding{}, reactive.ErrUnknownField
		}
		lookup, err := s.LookupFunc(kind)
		if err != nil {
			return reactive.FieldBinding{}, err
		}
		return reactive.FieldBinding{
			Lookup: lookup,
			Config: reactive.SessionConfig{
				MinLength:     s.cfg.MinLength,
				Debounce:      s.cfg.DebounceFor(field),
				SkipIdentical: s.cfg.SkipIdentical,
			},
		}, nil
	}
}

// BindInvalidation drops cached results when the underlying records change.
func (s *lookupService) BindInvalidation(bus *reactive.RefreshBus) []*reactive.Subscription {
	bind := func(event, kind string) *reactive.Subscription {
		return bus.Subscribe([]string{event}, func() error {
			n := s.Invalidate(kind)
			s.logger.Debug("LOOKUP", "Cache flushed", map[string]interface{}{
				"event": event,
				"kind":  kind,
				"count": n,
			})
			return nil
		})
	}
	return []*reactive.Subscription{
		bind(events.CitizenUpdated, KindCitizen),
		bind(events.OfficerUpdated, KindOfficer),
	}
}

func (s *lookupService) Invalidate(kind string) int {
	return s.cache.Flush(kind)
}

package service

import (
	"context"
	"sync"

	"mdt-records-be/internal/entity"
	"mdt-records-be/internal/repository/contract"
	"mdt-records-be/internal/repository/specification"
	"mdt-records-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// memStore backs an in-memory unit of work. Only ByID is interpreted.
type memStore struct {
	mu       sync.Mutex
	citizens map[uuid.UUID]*entity.Citizen
	officers map[uuid.UUID]*entity.Officer
	arrests  map[uuid.UUID]*entity.Arrest
	wanted   map[uuid.UUID]*entity.WantedEntry
	commits  int
	rollback int
}

func newMemStore() *memStore {
	return &memStore{
		citizens: map[uuid.UUID]*entity.Citizen{},
		officers: map[uuid.UUID]*entity.Officer{},
		arrests:  map[uuid.UUID]*entity.Arrest{},
		wanted:   map[uuid.UUID]*entity.WantedEntry{},
	}
}

func byID(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if b, ok := s.(specification.ByID); ok {
			return b.ID, true
		}
	}
	return uuid.Nil, false
}

func (m *memStore) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return &memUoW{m} }

type memUoW struct{ s *memStore }

func (u *memUoW) Begin(ctx context.Context) error { return nil }
func (u *memUoW) Commit() error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.commits++
	return nil
}
func (u *memUoW) Rollback() error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	u.s.rollback++
	return nil
}
func (u *memUoW) CitizenRepository() contract.CitizenRepository { return memCitizens{u.s} }
func (u *memUoW) OfficerRepository() contract.OfficerRepository { return memOfficers{u.s} }
func (u *memUoW) ArrestRepository() contract.ArrestRepository   { return memArrests{u.s} }
func (u *memUoW) WantedRepository() contract.WantedRepository   { return memWanted{u.s} }

type memCitizens struct{ s *memStore }

func (r memCitizens) Update(ctx context.Context, c *entity.Citizen) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *c
	r.s.citizens[c.Id] = &cp
	return nil
}
func (r memCitizens) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Citizen, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, _ := byID(specs)
	if c, ok := r.s.citizens[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}
func (r memCitizens) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Citizen, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Citizen, 0, len(r.s.citizens))
	for _, c := range r.s.citizens {
		out = append(out, c)
	}
	return out, nil
}

type memOfficers struct{ s *memStore }

func (r memOfficers) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Officer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, _ := byID(specs)
	if o, ok := r.s.officers[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}
func (r memOfficers) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Officer, error) {
	return nil, nil
}

type memArrests struct{ s *memStore }

func (r memArrests) Create(ctx context.Context, a *entity.Arrest) error { return r.Update(ctx, a) }
func (r memArrests) Update(ctx context.Context, a *entity.Arrest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	r.s.arrests[a.Id] = &cp
	return nil
}
func (r memArrests) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Arrest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, _ := byID(specs)
	if a, ok := r.s.arrests[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}
func (r memArrests) FindRecent(ctx context.Context, specs ...specification.Specification) ([]*entity.Arrest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Arrest, 0, len(r.s.arrests))
	for _, a := range r.s.arrests {
		out = append(out, a)
	}
	return out, nil
}

type memWanted struct{ s *memStore }

func (r memWanted) Create(ctx context.Context, w *entity.WantedEntry) error { return r.Update(ctx, w) }
func (r memWanted) Update(ctx context.Context, w *entity.WantedEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *w
	r.s.wanted[w.Id] = &cp
	return nil
}
func (r memWanted) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.wanted, id)
	return nil
}
func (r memWanted) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WantedEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id, _ := byID(specs)
	if w, ok := r.s.wanted[id]; ok {
		cp := *w
		return &cp, nil
	}
	return nil, nil
}
func (r memWanted) FindRecent(ctx context.Context, specs ...specification.Specification) ([]*entity.WantedEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.WantedEntry, 0, len(r.s.wanted))
	for _, w := range r.s.wanted {
		out = append(out, w)
	}
	return out, nil
}

// recordingPublisher captures queued mutations.
type recordingPublisher struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (p *recordingPublisher) PublishMutation(ctx context.Context, source string, names []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, names)
	return p.err
}

func (p *recordingPublisher) published() [][]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]string(nil), p.calls...)
}

type logEntry struct {
	level   string
	module  string
	message string
	details map[string]interface{}
}

type recordingLogger struct {
	mu   sync.Mutex
	logs []logEntry
}

func (l *recordingLogger) record(level, module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, logEntry{level: level, module: module, message: message, details: details})
}

func (l *recordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record("DEBUG", module, message, details)
}

func (l *recordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record("INFO", module, message, details)
}

func (l *recordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record("WARN", module, message, details)
}

func (l *recordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record("ERROR", module, message, details)
}

func (l *recordingLogger) Sync() error { return nil }

func (l *recordingLogger) entries(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []logEntry
	for _, e := range l.logs {
		if e.level == level {
			out = append(out, e)
		}
	}
	return out
}

package reactive

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// FieldBinding is what a search field needs to run: where to look and how eagerly.
type FieldBinding struct {
	Lookup LookupFunc
	Config SessionConfig
}

// FieldResolver maps a field key (e.g. "citizen", "accomplice", "officer") to its binding.
type FieldResolver func(fieldKey string) (FieldBinding, error)

// Coordinator owns the independent search sessions of one UI surface,
// such as an arrest form with citizen, accomplice and officer lookups.
type Coordinator struct {
	mu       sync.Mutex
	resolve  FieldResolver
	sessions map[string]*Session

	ctx      context.Context
	listener Listener
	report   ErrorReporter
}

type CoordinatorOption func(*Coordinator)

// WithListener observes every session created by the coordinator.
func WithListener(l Listener) CoordinatorOption {
	return func(c *Coordinator) { c.listener = l }
}

func WithErrorReporter(r ErrorReporter) CoordinatorOption {
	return func(c *Coordinator) { c.report = r }
}

func WithBaseContext(ctx context.Context) CoordinatorOption {
	return func(c *Coordinator) { c.ctx = ctx }
}

func NewCoordinator(resolve FieldResolver, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		resolve:  resolve,
		sessions: make(map[string]*Session),
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCreate returns the session for fieldKey, creating it on first use.
func (c *Coordinator) GetOrCreate(fieldKey string) (*Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.sessions[fieldKey]; ok {
		return s, nil
	}

	binding, err := c.resolve(fieldKey)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w", fieldKey, err)
	}
	if binding.Lookup == nil {
		return nil, fmt.Errorf("field %q: %w", fieldKey, ErrUnknownField)
	}

	s := NewSession(fieldKey, binding.Lookup, binding.Config,
		WithSessionContext(c.ctx),
		WithSessionListener(c.listener),
		WithSessionErrorReporter(c.report),
	)
	c.sessions[fieldKey] = s
	return s, nil
}

// Lookup returns an existing session without creating one.
func (c *Coordinator) Lookup(fieldKey string) (*Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[fieldKey]
	return s, ok
}

// Dispose tears down a single field's session.
func (c *Coordinator) Dispose(fieldKey string) bool {
	c.mu.Lock()
	s, ok := c.sessions[fieldKey]
	delete(c.sessions, fieldKey)
	c.mu.Unlock()

	if ok {
		s.Dispose()
	}
	return ok
}

// DisposeAll tears down every session. The coordinator stays usable.
func (c *Coordinator) DisposeAll() {
	c.mu.Lock()
	sessions := c.sessions
	c.sessions = make(map[string]*Session)
	c.mu.Unlock()

	for _, s := range sessions {
		s.Dispose()
	}
}

func (c *Coordinator) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.sessions))
	for k := range c.sessions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package reactive

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	DefaultMinLength = 3
	DefaultDebounce  = 300 * time.Millisecond
)

type Status int

const (
	StatusIdle Status = iota
	StatusDebouncing
	StatusInFlight
	StatusSettled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusDebouncing:
		return "debouncing"
	case StatusInFlight:
		return "in_flight"
	case StatusSettled:
		return "settled"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// SessionConfig holds the per-field search policy.
type SessionConfig struct {
	// MinLength is the minimum trimmed query length (in runes) before a lookup is sent.
	MinLength int
	// Debounce is the quiet interval before a lookup is sent.
	Debounce time.Duration
	// SkipIdentical suppresses a lookup when the trimmed query equals the one
	// already shown or already in flight.
	SkipIdentical bool
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MinLength:     DefaultMinLength,
		Debounce:      DefaultDebounce,
		SkipIdentical: true,
	}
}

func (c SessionConfig) withDefaults() SessionConfig {
	if c.MinLength <= 0 {
		c.MinLength = DefaultMinLength
	}
	if c.Debounce < 0 {
		c.Debounce = 0
	}
	return c
}

// Snapshot is an immutable view of a session, handed to listeners.
type Snapshot struct {
	Field    string      `json:"field"`
	Query    string      `json:"query"`
	Token    uint64      `json:"token"`
	Status   Status      `json:"status"`
	Results  []Candidate `json:"results"`
	Err      error       `json:"-"`
	Revision uint64      `json:"revision"`
}

// Listener observes session state changes. It is called without the
// session lock held; Revision orders snapshots delivered from different goroutines.
type Listener func(Snapshot)

// Session coordinates incremental lookups for a single search field.
type Session struct {
	mu sync.Mutex

	key      string
	cfg      SessionConfig
	lookup   LookupFunc
	ctx      context.Context
	listener Listener
	report   ErrorReporter

	clock     QueryClock
	debouncer *Debouncer

	query          string
	lastDispatched string
	activeToken    uint64
	inflight       *Request
	results        []Candidate
	status         Status
	lastErr        error
	revision       uint64
	disposed       bool

	// pendingGen identifies the latest input; a timer carrying an older value
	// fired after the input that superseded it and must not dispatch.
	pendingGen uint64
}

type SessionOption func(*Session)

func WithSessionListener(l Listener) SessionOption {
	return func(s *Session) { s.listener = l }
}

func WithSessionErrorReporter(r ErrorReporter) SessionOption {
	return func(s *Session) { s.report = r }
}

// WithSessionContext sets the parent context of every request the session issues.
func WithSessionContext(ctx context.Context) SessionOption {
	return func(s *Session) { s.ctx = ctx }
}

func NewSession(key string, lookup LookupFunc, cfg SessionConfig, opts ...SessionOption) *Session {
	s := &Session{
		key:       key,
		cfg:       cfg.withDefaults(),
		lookup:    lookup,
		ctx:       context.Background(),
		debouncer: NewDebouncer(),
		status:    StatusIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Key() string { return s.key }

func (s *Session) Config() SessionConfig { return s.cfg }

// SetQuery records the current input text and decides whether a lookup is due.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}

	s.query = text
	s.pendingGen++
	trimmed := strings.TrimSpace(text)

	switch {
	case utf8.RuneCountInString(trimmed) < s.cfg.MinLength:
		s.debouncer.Cancel()
		s.cancelInflightLocked()
		s.results = nil
		s.lastErr = nil
		s.lastDispatched = ""
		s.status = StatusIdle

	case s.cfg.SkipIdentical && s.inflight != nil && s.inflight.Query() == trimmed:
		s.debouncer.Cancel()
		s.status = StatusInFlight

	case s.cfg.SkipIdentical && s.lastDispatched != "" && trimmed == s.lastDispatched:
		// Results on screen already answer this query; anything newer is obsolete.
		s.debouncer.Cancel()
		s.cancelInflightLocked()
		s.status = StatusSettled

	default:
		s.status = StatusDebouncing
		gen := s.pendingGen
		s.debouncer.Schedule(func() { s.dispatch(trimmed, gen) }, s.cfg.Debounce)
	}

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Flush sends a pending debounced lookup immediately.
func (s *Session) Flush() bool {
	return s.debouncer.Flush()
}

func (s *Session) dispatch(query string, gen uint64) {
	s.mu.Lock()
	if s.disposed || gen != s.pendingGen || s.status != StatusDebouncing {
		s.mu.Unlock()
		return
	}

	token := s.clock.Next()
	s.activeToken = token
	s.cancelInflightLocked()
	s.lastErr = nil
	s.status = StatusInFlight
	// settle blocks on s.mu, so the assignment below happens before any settlement is examined.
	s.inflight = Issue(s.ctx, token, query, s.lookup, s.settle)

	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Session) settle(res Result) {
	s.mu.Lock()
	if s.disposed || s.inflight == nil || s.inflight.Token() != res.Token || res.Token != s.activeToken {
		s.mu.Unlock()
		return
	}

	var failure error
	switch res.Outcome {
	case OutcomeCancelled:
		s.mu.Unlock()
		return
	case OutcomeFailed:
		s.inflight = nil
		s.results = nil
		s.lastErr = res.Err
		s.lastDispatched = ""
		s.status = StatusSettled
		failure = res.Err
	case OutcomeSuccess:
		s.inflight = nil
		s.results = res.Candidates
		s.lastErr = nil
		s.lastDispatched = res.Query
		s.status = StatusSettled
	}

	snap := s.snapshotLocked()
	report := s.report
	s.mu.Unlock()

	if failure != nil && report != nil {
		report(s.key, fmt.Errorf("lookup %q: %w", res.Query, failure))
	}
	s.notify(snap)
}

// Dispose stops the debounce timer and cancels the outstanding request.
// It is safe to call more than once.
func (s *Session) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.pendingGen++
	s.debouncer.Cancel()
	s.cancelInflightLocked()
	s.status = StatusIdle
	s.mu.Unlock()
}

func (s *Session) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) Results() []Candidate {
	return s.Snapshot().Results
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// InFlight returns the outstanding request, or nil.
func (s *Session) InFlight() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight
}

func (s *Session) cancelInflightLocked() {
	if s.inflight != nil {
		s.inflight.Cancel()
		s.inflight = nil
	}
}

func (s *Session) snapshotLocked() Snapshot {
	s.revision++
	results := make([]Candidate, len(s.results))
	copy(results, s.results)
	return Snapshot{
		Field:    s.key,
		Query:    s.query,
		Token:    s.activeToken,
		Status:   s.status,
		Results:  results,
		Err:      s.lastErr,
		Revision: s.revision,
	}
}

func (s *Session) notify(snap Snapshot) {
	if s.listener != nil {
		s.listener(snap)
	}
}

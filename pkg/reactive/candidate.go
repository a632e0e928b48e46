package reactive

import (
	"context"
	"errors"
)

var (
	ErrUnknownField    = errors.New("reactive: unknown search field")
	ErrSessionDisposed = errors.New("reactive: session disposed")
)

// Candidate is one row returned by a lookup. The core never interprets it
// beyond carrying it to the view.
type Candidate struct {
	ID     string            `json:"id"`
	Label  string            `json:"label"`
	Fields map[string]string `json:"fields,omitempty"`
}

// LookupFunc queries the backend for candidates matching query.
// Implementations must honor ctx cancellation when they can.
type LookupFunc func(ctx context.Context, query string) ([]Candidate, error)

// ErrorReporter receives failures that must not propagate (failed lookups,
// refresh callbacks that returned an error or panicked).
type ErrorReporter func(source string, err error)

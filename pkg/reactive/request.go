package reactive

import (
	"context"
	"fmt"
	"runtime/debug"
)

type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is the tagged settlement of a Request.
type Result struct {
	Token      uint64
	Query      string
	Outcome    Outcome
	Candidates []Candidate
	Err        error
}

// Request is one outbound lookup with its own cancellation handle.
type Request struct {
	token  uint64
	query  string
	cancel context.CancelFunc
	done   chan struct{}
}

// Issue starts lookup(query) on its own goroutine and calls onSettle exactly
// once with the tagged result.
func Issue(parent context.Context, token uint64, query string, lookup LookupFunc, onSettle func(Result)) *Request {
	ctx, cancel := context.WithCancel(parent)
	r := &Request{
		token:  token,
		query:  query,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(r.done)
		defer cancel()
		res := r.run(ctx, lookup)
		if onSettle != nil {
			onSettle(res)
		}
	}()

	return r
}

func (r *Request) run(ctx context.Context, lookup LookupFunc) (res Result) {
	res = Result{Token: r.token, Query: r.query}

	defer func() {
		if p := recover(); p != nil {
			res.Outcome = OutcomeFailed
			res.Candidates = nil
			res.Err = fmt.Errorf("lookup panic: %v\n%s", p, debug.Stack())
		}
		// The transport may ignore cancellation; the context decides.
		if ctx.Err() != nil {
			res.Outcome = OutcomeCancelled
			res.Candidates = nil
			res.Err = nil
		}
	}()

	candidates, err := lookup(ctx, r.query)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}
	res.Outcome = OutcomeSuccess
	res.Candidates = candidates
	return res
}

func (r *Request) Token() uint64 { return r.token }

func (r *Request) Query() string { return r.query }

// Cancel is best effort; the owner's token check is what rejects late results.
func (r *Request) Cancel() { r.cancel() }

// Done is closed after the settle callback has returned.
func (r *Request) Done() <-chan struct{} { return r.done }

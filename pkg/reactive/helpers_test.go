package reactive

import (
	"context"
	"sync"
	"testing"
	"time"
)

type lookupReply struct {
	candidates []Candidate
	err        error
}

type lookupCall struct {
	query string
	ctx   context.Context
	reply chan lookupReply
}

func (c *lookupCall) succeed(labels ...string) {
	out := make([]Candidate, 0, len(labels))
	for _, l := range labels {
		out = append(out, Candidate{ID: l, Label: l})
	}
	c.reply <- lookupReply{candidates: out}
}

func (c *lookupCall) fail(err error) {
	c.reply <- lookupReply{err: err}
}

// fakeBackend blocks every lookup until the test answers it, ignoring
// cancellation the way a careless transport would.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []*lookupCall
	arrived chan *lookupCall
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{arrived: make(chan *lookupCall, 64)}
}

func (f *fakeBackend) lookup(ctx context.Context, query string) ([]Candidate, error) {
	c := &lookupCall{query: query, ctx: ctx, reply: make(chan lookupReply, 1)}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
	f.arrived <- c

	r := <-c.reply
	return r.candidates, r.err
}

func (f *fakeBackend) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.query)
	}
	return out
}

func (f *fakeBackend) next(t *testing.T) *lookupCall {
	t.Helper()
	select {
	case c := <-f.arrived:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("expected a lookup to be issued")
		return nil
	}
}

func waitDone(t *testing.T, r *Request) {
	t.Helper()
	if r == nil {
		t.Fatal("expected an in-flight request")
	}
	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("request did not settle")
	}
}

func labels(cs []Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Label)
	}
	return out
}

// answer replies to the session's outstanding lookup and waits for it to settle.
func answer(t *testing.T, s *Session, be *fakeBackend, results ...string) {
	t.Helper()
	req := s.InFlight()
	be.next(t).succeed(results...)
	waitDone(t, req)
}

// takeFired claims the debouncer's pending call the way an expiring timer
// does, so a test can run it after later input has arrived.
func takeFired(t *testing.T, d *Debouncer) func() {
	t.Helper()
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.fn == nil {
		t.Fatal("expected a pending debounced call")
	}
	fn := d.fn
	d.fn = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return fn
}

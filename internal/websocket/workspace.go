package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"mdt-records-be/internal/dto"
	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/pkg/reactive"
)

var (
	ErrUnknownView    = errors.New("unknown view")
	ErrUnknownMessage = errors.New("unknown message type")
	ErrClosed         = errors.New("workspace closed")
)

// ViewSource describes a list a client can watch.
type ViewSource struct {
	Events []string
	Fetch  reactive.FetchFunc[any]
}

type ViewCatalog map[string]ViewSource

// Rows adapts a typed list loader to a view fetch.
func Rows[T any](load func(ctx context.Context) ([]T, error)) reactive.FetchFunc[any] {
	return func(ctx context.Context) ([]any, error) {
		rows, err := load(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]any, len(rows))
		for i, r := range rows {
			out[i] = r
		}
		return out, nil
	}
}

type watch struct {
	view   *reactive.ListView[any]
	signal *reactive.Subscription
}

// Workspace is the server side of one dashboard connection: its search
// fields and the lists it watches. Outbound messages go through send, which
// must be safe for concurrent use.
type Workspace struct {
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	coord   *reactive.Coordinator
	bus     *reactive.RefreshBus
	catalog ViewCatalog
	views   map[string]*watch
	send    func(v interface{})
	logger  logger.ILogger
	closed  bool
}

func NewWorkspace(
	parent context.Context,
	resolve reactive.FieldResolver,
	bus *reactive.RefreshBus,
	catalog ViewCatalog,
	send func(v interface{}),
	log logger.ILogger,
) *Workspace {
	ctx, cancel := context.WithCancel(parent)
	w := &Workspace{
		ctx:     ctx,
		cancel:  cancel,
		bus:     bus,
		catalog: catalog,
		views:   make(map[string]*watch),
		send:    send,
		logger:  log,
	}
	w.coord = reactive.NewCoordinator(resolve,
		reactive.WithBaseContext(ctx),
		reactive.WithListener(func(s reactive.Snapshot) {
			w.send(dto.NewSearchStateMessage(s))
		}),
		reactive.WithErrorReporter(func(source string, err error) {
			w.logger.Warn("WORKSPACE", "Lookup failed", map[string]interface{}{
				"field": source,
				"error": err.Error(),
			})
		}),
	)
	return w
}

// Handle applies one client message. Protocol errors are also sent back to
// the client as an error message.
func (w *Workspace) Handle(raw []byte) error {
	var msg dto.ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return w.fail(fmt.Errorf("malformed message: %w", err))
	}

	var err error
	switch msg.Type {
	case dto.ClientSearch:
		err = w.search(msg.Field, msg.Query)
	case dto.ClientFlush:
		if s, ok := w.coord.Lookup(msg.Field); ok {
			s.Flush()
		}
	case dto.ClientDispose:
		w.coord.Dispose(msg.Field)
	case dto.ClientReset:
		w.coord.DisposeAll()
	case dto.ClientWatch:
		err = w.Watch(msg.View)
	case dto.ClientUnwatch:
		w.Unwatch(msg.View)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	if err != nil {
		return w.fail(err)
	}
	return nil
}

func (w *Workspace) fail(err error) error {
	w.send(dto.NewErrorMessage(err))
	return err
}

func (w *Workspace) search(field, query string) error {
	if w.isClosed() {
		return ErrClosed
	}
	s, err := w.coord.GetOrCreate(field)
	if err != nil {
		return err
	}
	s.SetQuery(query)
	return nil
}

// Watch mounts a list view; the client gets its rows now and after every
// invalidation. Watching an already watched view forces a refetch.
func (w *Workspace) Watch(name string) error {
	src, ok := w.catalog[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownView, name)
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	if existing, ok := w.views[name]; ok {
		w.mu.Unlock()
		existing.view.Refresh()
		return nil
	}

	view := reactive.NewListView(name, src.Events, src.Fetch, func(st reactive.ViewState[any]) {
		msg := dto.ViewRowsMessage{Type: dto.ServerViewRows, View: st.Name, Rows: st.Rows, Revision: st.Revision}
		if st.Err != nil {
			msg.Error = st.Err.Error()
		}
		w.send(msg)
	}, func(source string, err error) {
		w.logger.Warn("WORKSPACE", "View refetch failed", map[string]interface{}{
			"view":  source,
			"error": err.Error(),
		})
	})
	// Registered before the view so the client hears "invalidate" ahead of
	// the rows that answer it.
	signal := w.bus.Subscribe(src.Events, func() error {
		w.send(dto.InvalidateMessage{Type: dto.ServerInvalidate, View: name})
		return nil
	})
	w.views[name] = &watch{view: view, signal: signal}
	w.mu.Unlock()

	view.Mount(w.ctx, w.bus)
	return nil
}

func (w *Workspace) Unwatch(name string) bool {
	w.mu.Lock()
	wt, ok := w.views[name]
	delete(w.views, name)
	w.mu.Unlock()

	if ok {
		wt.signal.Unsubscribe()
		wt.view.Unmount()
	}
	return ok
}

// Watching lists the mounted views.
func (w *Workspace) Watching() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.views))
	for name := range w.views {
		out = append(out, name)
	}
	return out
}

func (w *Workspace) Fields() []string {
	return w.coord.Keys()
}

// Close disposes every search and unmounts every view. Idempotent.
func (w *Workspace) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	views := w.views
	w.views = make(map[string]*watch)
	w.mu.Unlock()

	w.cancel()
	w.coord.DisposeAll()
	for _, wt := range views {
		wt.signal.Unsubscribe()
		wt.view.Unmount()
	}
}

func (w *Workspace) isClosed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

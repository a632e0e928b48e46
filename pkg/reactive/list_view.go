package reactive

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// FetchFunc loads the current rows of a list view.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// ViewState is what a ListView hands to its listener after each accepted refetch.
type ViewState[T any] struct {
	Name     string
	Rows     []T
	Err      error
	Revision uint64
}

// ListView keeps a list in sync with its source by refetching whenever one of
// its events fires on the RefreshBus. Refetches may overlap; only the most
// recently started one is accepted.
type ListView[T any] struct {
	mu sync.Mutex

	name     string
	events   []string
	fetch    FetchFunc[T]
	ctx      context.Context
	onChange func(ViewState[T])
	report   ErrorReporter

	clock    QueryClock
	active   uint64
	cancel   context.CancelFunc
	rows     []T
	lastErr  error
	revision uint64
	sub      *Subscription
}

func NewListView[T any](name string, events []string, fetch FetchFunc[T], onChange func(ViewState[T]), report ErrorReporter) *ListView[T] {
	return &ListView[T]{
		name:     name,
		events:   dedupe(events),
		fetch:    fetch,
		ctx:      context.Background(),
		onChange: onChange,
		report:   report,
	}
}

func (v *ListView[T]) Name() string { return v.name }

func (v *ListView[T]) Events() []string {
	out := make([]string, len(v.events))
	copy(out, v.events)
	return out
}

// Mount subscribes the view and performs the initial fetch.
func (v *ListView[T]) Mount(ctx context.Context, bus *RefreshBus) {
	v.mu.Lock()
	if v.sub != nil {
		v.mu.Unlock()
		return
	}
	v.ctx = ctx
	v.sub = bus.Subscribe(v.events, func() error {
		v.Refresh()
		return nil
	})
	v.mu.Unlock()

	v.Refresh()
}

// Refresh starts a refetch, superseding any refetch still running.
// It returns immediately.
func (v *ListView[T]) Refresh() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sub == nil {
		return
	}
	if v.cancel != nil {
		v.cancel()
	}
	token := v.clock.Next()
	v.active = token
	ctx, cancel := context.WithCancel(v.ctx)
	v.cancel = cancel

	go func() {
		defer cancel()
		rows, err := v.run(ctx)
		if ctx.Err() != nil {
			return
		}
		v.settle(token, rows, err)
	}()
}

func (v *ListView[T]) run(ctx context.Context) (rows []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panic: %v\n%s", r, debug.Stack())
		}
	}()
	return v.fetch(ctx)
}

func (v *ListView[T]) settle(token uint64, rows []T, err error) {
	v.mu.Lock()
	if v.sub == nil || token != v.active {
		v.mu.Unlock()
		return
	}
	v.cancel = nil
	if err != nil {
		// Keep the last good rows; a failed refresh only skips one update.
		v.lastErr = err
	} else {
		v.rows = rows
		v.lastErr = nil
	}
	v.revision++
	state := ViewState[T]{Name: v.name, Rows: v.copyRowsLocked(), Err: v.lastErr, Revision: v.revision}
	onChange, report := v.onChange, v.report
	v.mu.Unlock()

	if err != nil && report != nil {
		report(v.name, err)
	}
	if onChange != nil {
		onChange(state)
	}
}

// Unmount drops the subscription and cancels any running refetch.
func (v *ListView[T]) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sub != nil {
		v.sub.Unsubscribe()
		v.sub = nil
	}
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
}

func (v *ListView[T]) Rows() []T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copyRowsLocked()
}

func (v *ListView[T]) Mounted() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sub != nil
}

func (v *ListView[T]) copyRowsLocked() []T {
	out := make([]T, len(v.rows))
	copy(out, v.rows)
	return out
}

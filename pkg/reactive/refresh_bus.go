package reactive

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
)

// Callback is invoked when a subscribed event fires. Events carry no payload:
// subscribers re-read their own state from the source of truth.
type Callback func() error

type subscriber struct {
	id uint64
	cb Callback
}

// RefreshBus is a publish/subscribe channel of invalidation signals keyed by event name.
type RefreshBus struct {
	mu     sync.RWMutex
	nextID uint64
	topics map[string][]subscriber
	report ErrorReporter
}

func NewRefreshBus(report ErrorReporter) *RefreshBus {
	return &RefreshBus{
		topics: make(map[string][]subscriber),
		report: report,
	}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	bus   *RefreshBus
	id    uint64
	names []string
	once  sync.Once
}

// Events returns the names this subscription listens to.
func (s *Subscription) Events() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Unsubscribe removes the callback from every event. Safe to call more than
// once and from inside a callback.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		s.bus.remove(s.id, s.names)
	})
}

// Subscribe registers cb against every name in eventNames.
func (b *RefreshBus) Subscribe(eventNames []string, cb Callback) *Subscription {
	names := dedupe(eventNames)

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	for _, name := range names {
		b.topics[name] = append(b.topics[name], subscriber{id: id, cb: cb})
	}
	b.mu.Unlock()

	return &Subscription{bus: b, id: id, names: names}
}

// Publish invokes every callback subscribed to eventName, synchronously and in
// subscription order, and returns how many were invoked. Failures are reported
// and never stop the remaining callbacks.
func (b *RefreshBus) Publish(eventName string) int {
	b.mu.RLock()
	subs := b.topics[eventName]
	snapshot := make([]subscriber, len(subs))
	copy(snapshot, subs)
	b.mu.RUnlock()

	for _, sub := range snapshot {
		if err := b.invoke(sub.cb); err != nil && b.report != nil {
			b.report(eventName, err)
		}
	}
	return len(snapshot)
}

func (b *RefreshBus) invoke(cb Callback) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("refresh callback panic: %v\n%s", r, debug.Stack())
		}
	}()
	return cb()
}

func (b *RefreshBus) SubscriberCount(eventName string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[eventName])
}

// Topics lists event names that currently have subscribers.
func (b *RefreshBus) Topics() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.topics))
	for name := range b.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *RefreshBus) remove(id uint64, names []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, name := range names {
		subs := b.topics[name]
		// Copy instead of filtering in place: a running Publish may hold the old slice.
		kept := make([]subscriber, 0, len(subs))
		for _, sub := range subs {
			if sub.id != id {
				kept = append(kept, sub)
			}
		}
		if len(kept) == 0 {
			delete(b.topics, name)
			continue
		}
		b.topics[name] = kept
	}
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/pkg/events"
	"mdt-records-be/pkg/reactive"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRelay loops published envelopes back to its listener, the way a real
// broker delivers an instance's own messages.
type fakeRelay struct {
	mu        sync.Mutex
	published []events.Envelope
	inbox     chan events.Envelope
	failWith  error
	closed    atomic.Bool
}

func newFakeRelay() *fakeRelay {
	return &fakeRelay{inbox: make(chan events.Envelope, 16)}
}

func (r *fakeRelay) Name() string { return "fake" }

func (r *fakeRelay) Publish(ctx context.Context, env events.Envelope) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.mu.Lock()
	r.published = append(r.published, env)
	r.mu.Unlock()
	r.inbox <- env
	return nil
}

func (r *fakeRelay) Listen(ctx context.Context, handle func(events.Envelope)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case env := <-r.inbox:
			handle(env)
		}
	}
}

func (r *fakeRelay) Close() { r.closed.Store(true) }

func (r *fakeRelay) sent() []events.Envelope {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Envelope(nil), r.published...)
}

func TestRefreshService_NotifyPublishesLocallyAndRelays(t *testing.T) {
	bus := reactive.NewRefreshBus(nil)
	relay := newFakeRelay()
	svc := NewRefreshService(bus, relay, "instance-a", logger.NewNopLogger())

	var hits atomic.Int32
	bus.Subscribe([]string{events.ArrestCreated}, func() error { hits.Add(1); return nil })

	n := svc.Notify(context.Background(), events.ArrestCreated, "", events.WantedRemoved)
	assert.Equal(t, 1, n)
	assert.Equal(t, int32(1), hits.Load())

	sent := relay.sent()
	require.Len(t, sent, 2)
	assert.Equal(t, events.ArrestCreated, sent[0].Event)
	assert.Equal(t, "instance-a", sent[0].Origin)
}

func TestRefreshService_SkipsOwnOriginButDeliversOthers(t *testing.T) {
	bus := reactive.NewRefreshBus(nil)
	relay := newFakeRelay()
	svc := NewRefreshService(bus, relay, "instance-a", logger.NewNopLogger())

	var hits atomic.Int32
	bus.Subscribe([]string{events.WantedCreated}, func() error { hits.Add(1); return nil })

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)

	// Own envelope comes back through the relay: must not fire twice.
	svc.Notify(ctx, events.WantedCreated)
	relay.inbox <- events.NewEnvelope(events.WantedCreated, "instance-b")

	assert.Eventually(t, func() bool { return hits.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return hits.Load() > 2 }, 50*time.Millisecond, 5*time.Millisecond)

	cancel()
	svc.Close()
	assert.True(t, relay.closed.Load())
}

func TestRefreshService_RelayFailureDoesNotBlockLocalDelivery(t *testing.T) {
	bus := reactive.NewRefreshBus(nil)
	relay := newFakeRelay()
	relay.failWith = errors.New("broker down")
	svc := NewRefreshService(bus, relay, "a", logger.NewNopLogger())

	var hits atomic.Int32
	bus.Subscribe([]string{events.CitizenUpdated}, func() error { hits.Add(1); return nil })

	assert.Equal(t, 1, svc.Notify(context.Background(), events.CitizenUpdated))
	assert.Equal(t, int32(1), hits.Load())
}

func TestRefreshService_WithoutRelay(t *testing.T) {
	bus := reactive.NewRefreshBus(nil)
	svc := NewRefreshService(bus, nil, "a", logger.NewNopLogger())
	svc.Start(context.Background())

	assert.Same(t, bus, svc.Bus())
	assert.Empty(t, svc.RelayName())
	assert.Equal(t, 0, svc.Notify(context.Background(), events.ReportCreated))
	svc.Close()
}

func TestMutationQueue_EndToEnd(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	bus := reactive.NewRefreshBus(nil)
	refresh := NewRefreshService(bus, nil, "a", logger.NewNopLogger())

	got := make(chan string, 4)
	bus.Subscribe([]string{events.ArrestCreated, events.ReportCreated}, func() error {
		got <- "hit"
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, NewConsumerService(pubSub, "MUTATIONS", refresh, logger.NewNopLogger()).Consume(ctx))

	publisher := NewPublisherService("MUTATIONS", pubSub)
	require.NoError(t, publisher.PublishMutation(ctx, "arrest", []string{events.ArrestCreated, events.ReportCreated}))

	for i := 0; i < 2; i++ {
		select {
		case <-got:
		case <-time.After(time.Second):
			t.Fatalf("expected 2 refresh callbacks, got %d", i)
		}
	}
}

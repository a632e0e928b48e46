package reactive

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) cb(name string) Callback {
	return func() error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name)
		return nil
	}
}

func (r *recorder) got() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	copy(out, r.calls)
	return out
}

func TestRefreshBus_FanOutInSubscriptionOrder(t *testing.T) {
	bus := NewRefreshBus(nil)
	rec := &recorder{}

	bus.Subscribe([]string{"arrest_created"}, rec.cb("A"))
	bus.Subscribe([]string{"arrest_created"}, rec.cb("B"))
	bus.Subscribe([]string{"wanted_updated"}, rec.cb("W"))

	n := bus.Publish("arrest_created")

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"A", "B"}, rec.got())
}

func TestRefreshBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewRefreshBus(nil)
	assert.Equal(t, 0, bus.Publish("report_created"))
}

func TestRefreshBus_MultiEventSubscription(t *testing.T) {
	bus := NewRefreshBus(nil)
	rec := &recorder{}

	sub := bus.Subscribe([]string{"wanted_created", "wanted_updated", "wanted_created", ""}, rec.cb("wanted"))
	assert.Equal(t, []string{"wanted_created", "wanted_updated"}, sub.Events())

	bus.Publish("wanted_created")
	bus.Publish("wanted_updated")
	assert.Equal(t, []string{"wanted", "wanted"}, rec.got())
	assert.Equal(t, 1, bus.SubscriberCount("wanted_created"))

	sub.Unsubscribe()
	sub.Unsubscribe()
	bus.Publish("wanted_created")
	assert.Len(t, rec.got(), 2)
	assert.Empty(t, bus.Topics())
}

func TestRefreshBus_UnsubscribeDuringPublish(t *testing.T) {
	bus := NewRefreshBus(nil)
	rec := &recorder{}

	var selfSub, otherSub *Subscription
	selfSub = bus.Subscribe([]string{"arrest_created"}, func() error {
		rec.cb("self")()
		selfSub.Unsubscribe()
		return nil
	})
	bus.Subscribe([]string{"arrest_created"}, func() error {
		rec.cb("killer")()
		otherSub.Unsubscribe()
		return nil
	})
	otherSub = bus.Subscribe([]string{"arrest_created"}, rec.cb("victim"))
	bus.Subscribe([]string{"arrest_created"}, rec.cb("tail"))

	assert.Equal(t, 4, bus.Publish("arrest_created"))
	assert.Equal(t, []string{"self", "killer", "victim", "tail"}, rec.got())

	assert.Equal(t, 2, bus.Publish("arrest_created"))
	assert.Equal(t, []string{"self", "killer", "victim", "tail", "killer", "tail"}, rec.got())
}

func TestRefreshBus_SubscribeDuringPublishWaitsForNextPass(t *testing.T) {
	bus := NewRefreshBus(nil)
	rec := &recorder{}

	bus.Subscribe([]string{"citizen_updated"}, func() error {
		rec.cb("mount")()
		bus.Subscribe([]string{"citizen_updated"}, rec.cb("late"))
		return nil
	})

	bus.Publish("citizen_updated")
	assert.Equal(t, []string{"mount"}, rec.got())
}

func TestRefreshBus_FailureIsolation(t *testing.T) {
	var mu sync.Mutex
	var reported []error
	bus := NewRefreshBus(func(source string, err error) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "arrest_created", source)
		reported = append(reported, err)
	})
	rec := &recorder{}

	bus.Subscribe([]string{"arrest_created"}, func() error { return errors.New("refetch failed") })
	bus.Subscribe([]string{"arrest_created"}, func() error { panic("view gone") })
	bus.Subscribe([]string{"arrest_created"}, rec.cb("ok"))

	assert.Equal(t, 3, bus.Publish("arrest_created"))
	assert.Equal(t, 3, bus.Publish("arrest_created"))

	assert.Equal(t, []string{"ok", "ok"}, rec.got())
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reported, 4)
	assert.EqualError(t, reported[0], "refetch failed")
	assert.Contains(t, reported[1].Error(), "view gone")
}

func TestRefreshBus_ConcurrentUse(t *testing.T) {
	bus := NewRefreshBus(nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := bus.Subscribe([]string{"arrest_created"}, func() error { return nil })
			bus.Publish("arrest_created")
			sub.Unsubscribe()
		}()
		go func() {
			defer wg.Done()
			bus.Publish("arrest_created")
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, bus.SubscriberCount("arrest_created"))
}

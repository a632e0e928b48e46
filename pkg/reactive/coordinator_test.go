package reactive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coordinatorFixture struct {
	citizens *fakeBackend
	officers *fakeBackend
	coord    *Coordinator
}

func newCoordinatorFixture() *coordinatorFixture {
	f := &coordinatorFixture{citizens: newFakeBackend(), officers: newFakeBackend()}
	resolve := func(field string) (FieldBinding, error) {
		switch field {
		case "citizen", "accomplice":
			return FieldBinding{Lookup: f.citizens.lookup, Config: manualConfig()}, nil
		case "officer":
			return FieldBinding{Lookup: f.officers.lookup, Config: manualConfig()}, nil
		}
		return FieldBinding{}, ErrUnknownField
	}
	f.coord = NewCoordinator(resolve)
	return f
}

func TestCoordinator_GetOrCreateReusesSession(t *testing.T) {
	f := newCoordinatorFixture()

	a, err := f.coord.GetOrCreate("citizen")
	require.NoError(t, err)
	b, err := f.coord.GetOrCreate("citizen")
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := f.coord.GetOrCreate("accomplice")
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, []string{"accomplice", "citizen"}, f.coord.Keys())
}

func TestCoordinator_UnknownField(t *testing.T) {
	f := newCoordinatorFixture()
	_, err := f.coord.GetOrCreate("vehicle")
	assert.True(t, errors.Is(err, ErrUnknownField))
	assert.Empty(t, f.coord.Keys())
}

func TestCoordinator_SessionsAreIsolated(t *testing.T) {
	f := newCoordinatorFixture()
	citizen, _ := f.coord.GetOrCreate("citizen")
	accomplice, _ := f.coord.GetOrCreate("accomplice")

	citizen.SetQuery("ann")
	citizen.Flush()
	citizenCall := f.citizens.next(t)
	citizenReq := citizen.InFlight()

	accomplice.SetQuery("bob")
	accomplice.Flush()
	accompliceCall := f.citizens.next(t)
	accompliceReq := accomplice.InFlight()

	// Both lookups hit the same endpoint concurrently; neither cancels the other.
	assert.NoError(t, citizenCall.ctx.Err())
	assert.NoError(t, accompliceCall.ctx.Err())
	assert.Equal(t, uint64(1), citizen.Snapshot().Token)
	assert.Equal(t, uint64(1), accomplice.Snapshot().Token)

	accomplice.SetQuery("b")
	assert.Error(t, accompliceCall.ctx.Err())
	assert.NoError(t, citizenCall.ctx.Err())
	assert.Equal(t, StatusInFlight, citizen.Status())

	citizenCall.succeed("Ann Jones")
	waitDone(t, citizenReq)
	accompliceCall.succeed("Bob Smith")
	waitDone(t, accompliceReq)

	assert.Equal(t, []string{"Ann Jones"}, labels(citizen.Results()))
	assert.Empty(t, accomplice.Results())
	assert.Equal(t, StatusIdle, accomplice.Status())
}

func TestCoordinator_DisposeOneLeavesOthers(t *testing.T) {
	f := newCoordinatorFixture()
	citizen, _ := f.coord.GetOrCreate("citizen")
	officer, _ := f.coord.GetOrCreate("officer")

	officer.SetQuery("sgt")
	officer.Flush()
	officerCall := f.officers.next(t)

	assert.True(t, f.coord.Dispose("citizen"))
	assert.False(t, f.coord.Dispose("citizen"))
	assert.True(t, citizen.Disposed())
	assert.False(t, officer.Disposed())
	assert.NoError(t, officerCall.ctx.Err())
	officerCall.succeed("Sgt Miller")
}

func TestCoordinator_DisposeAll(t *testing.T) {
	f := newCoordinatorFixture()
	citizen, _ := f.coord.GetOrCreate("citizen")
	officer, _ := f.coord.GetOrCreate("officer")

	citizen.SetQuery("ann")
	citizen.Flush()
	citizenCall := f.citizens.next(t)
	officer.SetQuery("sgt") // still debouncing

	f.coord.DisposeAll()

	assert.True(t, citizen.Disposed())
	assert.True(t, officer.Disposed())
	assert.Error(t, citizenCall.ctx.Err())
	assert.Empty(t, f.coord.Keys())
	assert.Never(t, func() bool { return f.officers.count() > 0 }, 50*time.Millisecond, 10*time.Millisecond)
	citizenCall.succeed("late")

	// A reset surface hands out fresh sessions.
	again, err := f.coord.GetOrCreate("citizen")
	require.NoError(t, err)
	assert.NotSame(t, citizen, again)
	assert.False(t, again.Disposed())
}

func TestCoordinator_OptionsReachSessions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	be := newFakeBackend()
	snaps := make(chan Snapshot, 16)
	errs := make(chan string, 4)

	coord := NewCoordinator(func(string) (FieldBinding, error) {
		return FieldBinding{Lookup: be.lookup, Config: manualConfig()}, nil
	},
		WithBaseContext(ctx),
		WithListener(func(s Snapshot) { snaps <- s }),
		WithErrorReporter(func(source string, err error) { errs <- source }),
	)

	s, err := coord.GetOrCreate("officer")
	require.NoError(t, err)
	s.SetQuery("sgt")
	s.Flush()
	req := s.InFlight()
	call := be.next(t)
	call.fail(errors.New("boom"))
	waitDone(t, req)

	assert.Equal(t, "officer", <-errs)
	assert.Equal(t, "officer", (<-snaps).Field)

	s.SetQuery("sgt m")
	s.Flush()
	call = be.next(t)
	cancel()
	assert.Error(t, call.ctx.Err(), "base context bounds every request")
	call.succeed("x")
}

func TestCoordinator_NilLookupIsRejected(t *testing.T) {
	coord := NewCoordinator(func(string) (FieldBinding, error) { return FieldBinding{}, nil })
	_, err := coord.GetOrCreate("citizen")
	assert.ErrorIs(t, err, ErrUnknownField)
}

package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventsForView(t *testing.T) {
	names, ok := EventsForView("arrests")
	assert.True(t, ok)
	assert.Contains(t, names, ArrestCreated)
	assert.NotContains(t, names, WantedUpdated)

	names[0] = "mutated"
	again, _ := EventsForView("arrests")
	assert.Equal(t, ArrestCreated, again[0], "callers get a copy")

	_, ok = EventsForView("vehicles")
	assert.False(t, ok)
	assert.Equal(t, []string{"arrests", "wanted"}, Views())
}

func TestEnvelope(t *testing.T) {
	env := NewEnvelope(WantedUpdated, "node-a")
	assert.Equal(t, WantedUpdated, env.Event)
	assert.Equal(t, "node-a", env.Origin)
	assert.False(t, env.OccurredAt.IsZero())
}

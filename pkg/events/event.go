package events

import (
	"sort"
	"time"
)

// Well-known invalidation signals. The set is open: any non-empty name is a
// valid event and the bus does not need to know it in advance.
const (
	ArrestCreated  = "arrest_created"
	ArrestUpdated  = "arrest_updated"
	WantedCreated  = "wanted_created"
	WantedUpdated  = "wanted_updated"
	WantedRemoved  = "wanted_removed"
	CitizenUpdated = "citizen_updated"
	OfficerUpdated = "officer_updated"
	ReportCreated  = "report_created"
)

// Views a client can watch, and the events that invalidate each one.
var viewEvents = map[string][]string{
	"arrests": {ArrestCreated, ArrestUpdated, CitizenUpdated},
	"wanted":  {WantedCreated, WantedUpdated, WantedRemoved, CitizenUpdated},
}

// EventsForView returns the events a list view should subscribe to.
func EventsForView(view string) ([]string, bool) {
	names, ok := viewEvents[view]
	if !ok {
		return nil, false
	}
	out := make([]string, len(names))
	copy(out, names)
	return out, true
}

func Views() []string {
	out := make([]string, 0, len(viewEvents))
	for v := range viewEvents {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Envelope is how an invalidation crosses process boundaries. Origin lets a
// relay skip messages it published itself.
type Envelope struct {
	Event      string    `json:"event"`
	Origin     string    `json:"origin"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEnvelope(event, origin string) Envelope {
	return Envelope{Event: event, Origin: origin, OccurredAt: time.Now().UTC()}
}

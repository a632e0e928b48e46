package nats

import (
	"context"

	"mdt-records-be/pkg/events"
)

// Relay pairs a publisher and a subscriber so the refresh layer can treat
// NATS like any other cross-instance transport.
type Relay struct {
	pub *Publisher
	sub *Subscriber
}

func NewRelay(url, stream, subject string) (*Relay, error) {
	pub, err := NewPublisher(url, stream, subject)
	if err != nil {
		return nil, err
	}
	sub, err := NewSubscriber(url, stream, subject)
	if err != nil {
		pub.Close()
		return nil, err
	}
	return &Relay{pub: pub, sub: sub}, nil
}

func (r *Relay) Name() string { return "nats" }

func (r *Relay) Publish(ctx context.Context, env events.Envelope) error {
	return r.pub.Publish(ctx, env)
}

func (r *Relay) Listen(ctx context.Context, handle func(events.Envelope)) error {
	return r.sub.Listen(ctx, handle)
}

func (r *Relay) Close() {
	r.pub.Close()
	r.sub.Close()
}

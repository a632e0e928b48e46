package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"mdt-records-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EnvelopeHandler receives envelopes decoded from the bus.
type EnvelopeHandler func(env events.Envelope)

// Subscriber listens for invalidation envelopes.
type Subscriber struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	stream  string
	subject string
}

func NewSubscriber(url, stream, subject string) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js, stream: stream, subject: subject}, nil
}

// Listen blocks until ctx is done. Every instance gets every envelope: it
// uses an ordered (ephemeral) consumer starting at new messages, not a
// shared durable one.
func (s *Subscriber) Listen(ctx context.Context, handle EnvelopeHandler) error {
	consumer, err := s.js.OrderedConsumer(ctx, s.stream, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{s.subject + ".>"},
		DeliverPolicy:  jetstream.DeliverNewPolicy,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		var env events.Envelope
		if err := json.Unmarshal(msg.Data(), &env); err != nil {
			log.Printf("Error unmarshalling envelope on %s: %v", msg.Subject(), err)
			return
		}
		handle(env)
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	defer cc.Stop()

	log.Printf("Subscribed to %s.> on stream %s", s.subject, s.stream)
	<-ctx.Done()
	return nil
}

func (s *Subscriber) Close() {
	if s.nc != nil {
		s.nc.Close()
	}
}

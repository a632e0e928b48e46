package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"mdt-records-be/pkg/events"

	"github.com/redis/go-redis/v9"
)

// Relay fans invalidation envelopes out to every instance over a Redis
// pub/sub channel. Messages published while an instance is down are lost,
// which is fine for signals that only mean "refetch now".
type Relay struct {
	rdb     *redis.Client
	channel string
}

func NewRelay(rdb *redis.Client, channel string) *Relay {
	return &Relay{rdb: rdb, channel: channel}
}

// NewClient parses a redis:// URL, falling back to a bare address.
func NewClient(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}
	return redis.NewClient(opt)
}

func (r *Relay) Name() string { return "redis" }

func (r *Relay) Publish(ctx context.Context, env events.Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	if err := r.rdb.Publish(ctx, r.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", r.channel, err)
	}
	return nil
}

// Listen blocks until ctx is done or the subscription channel closes.
func (r *Relay) Listen(ctx context.Context, handle func(events.Envelope)) error {
	pubsub := r.rdb.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env events.Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				log.Printf("Redis msg parse error: %v", err)
				continue
			}
			handle(env)
		}
	}
}

func (r *Relay) Close() {
	if r.rdb != nil {
		r.rdb.Close()
	}
}

package service

import (
	"context"
	"sync"

	"mdt-records-be/internal/pkg/logger"
	"mdt-records-be/pkg/events"
	"mdt-records-be/pkg/reactive"
)

// Relay carries invalidation envelopes between instances.
type Relay interface {
	Name() string
	Publish(ctx context.Context, env events.Envelope) error
	Listen(ctx context.Context, handle func(events.Envelope)) error
	Close()
}

type IRefreshService interface {
	Bus() *reactive.RefreshBus
	Notify(ctx context.Context, names ...string) int
	Start(ctx context.Context)
	RelayName() string
	Close()
}

type refreshService struct {
	bus    *reactive.RefreshBus
	relay  Relay
	origin string
	logger logger.ILogger

	wg sync.WaitGroup
}

// NewRefreshService wraps the process-wide bus. relay may be nil for a
// single-instance deployment.
func NewRefreshService(bus *reactive.RefreshBus, relay Relay, origin string, log logger.ILogger) IRefreshService {
	return &refreshService{bus: bus, relay: relay, origin: origin, logger: log}
}

func (s *refreshService) Bus() *reactive.RefreshBus {
	return s.bus
}

// RelayName is empty when events stay in this process.
func (s *refreshService) RelayName() string {
	if s.relay == nil {
		return ""
	}
	return s.relay.Name()
}

// Notify publishes each name on the local bus and forwards it to the other
// instances. It returns the number of local callbacks invoked.
func (s *refreshService) Notify(ctx context.Context, names ...string) int {
	invoked := 0
	for _, name := range names {
		if name == "" {
			continue
		}
		invoked += s.bus.Publish(name)

		if s.relay == nil {
			continue
		}
		if err := s.relay.Publish(ctx, events.NewEnvelope(name, s.origin)); err != nil {
			s.logger.Warn("REFRESH", "Relay publish failed", map[string]interface{}{
				"relay": s.relay.Name(),
				"event": name,
				"error": err.Error(),
			})
		}
	}
	return invoked
}

// Start listens on the relay until ctx is done. Envelopes from this instance
// were already delivered locally by Notify and are skipped.
func (s *refreshService) Start(ctx context.Context) {
	if s.relay == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.relay.Listen(ctx, s.deliver)
		if err != nil {
			s.logger.Error("REFRESH", "Relay listener stopped", map[string]interface{}{
				"relay": s.relay.Name(),
				"error": err.Error(),
			})
		}
	}()
	s.logger.Info("REFRESH", "Relay listener started", map[string]interface{}{
		"relay":  s.relay.Name(),
		"origin": s.origin,
	})
}

func (s *refreshService) deliver(env events.Envelope) {
	if env.Origin == s.origin || env.Event == "" {
		return
	}
	n := s.bus.Publish(env.Event)
	s.logger.Debug("REFRESH", "Relayed event delivered", map[string]interface{}{
		"event":       env.Event,
		"origin":      env.Origin,
		"subscribers": n,
	})
}

// Close waits for the listener to exit; cancel the Start context first.
func (s *refreshService) Close() {
	s.wg.Wait()
	if s.relay != nil {
		s.relay.Close()
	}
}

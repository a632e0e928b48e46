package service

import (
	"context"
	"encoding/json"

	"mdt-records-be/internal/dto"
	"mdt-records-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	refresh    IRefreshService
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	refresh IRefreshService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		refresh:    refresh,
		logger:     log,
	}
}

// Consume turns queued mutations into refresh notifications until ctx is done.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishMutationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal mutation", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack() // poison message; retrying will not help
		return
	}

	invoked := cs.refresh.Notify(ctx, payload.Events...)
	cs.logger.Info("CONSUMER", "Mutation dispatched", map[string]interface{}{
		"source":      payload.Source,
		"events":      payload.Events,
		"subscribers": invoked,
	})
	msg.Ack()
}

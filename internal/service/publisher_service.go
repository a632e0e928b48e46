package service

import (
	"context"
	"encoding/json"
	"time"

	"mdt-records-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IPublisherService interface {
	PublishMutation(ctx context.Context, source string, names []string) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

// PublishMutation queues the invalidation events of a committed change.
func (ps *publisherService) PublishMutation(ctx context.Context, source string, names []string) error {
	payload, err := json.Marshal(dto.PublishMutationMessage{
		Events: names,
		Source: source,
		At:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, msg)
}

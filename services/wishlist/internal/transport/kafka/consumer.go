package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	eventDomain "github.com/sakashimaa/accessory-shop/pkg/domain"
	"github.com/sakashimaa/accessory-shop/pkg/kafka"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/service"
	"go.uber.org/zap"
)

const defaultGroupID = "wishlist-service-group"

type Consumer struct {
	service service.WishlistService
	logger  *zap.Logger
}

func NewConsumer(service service.WishlistService, logger *zap.Logger) *Consumer {
	return &Consumer{
		service: service,
		logger:  logger,
	}
}

// Start blocks until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context, brokers []string, groupID string) error {
	if groupID == "" {
		groupID = defaultGroupID
	}

	consumerGroup := kafka.NewConsumerGroup(
		brokers,
		groupID,
		[]string{eventDomain.TopicOrderEvents},
		c.processMessage,
		c.logger,
	)

	return consumerGroup.Run(ctx)
}

func (c *Consumer) processMessage(ctx context.Context, msg *sarama.ConsumerMessage) error {
	mylogger.Debug(
		ctx,
		c.logger,
		"Processing message",
		zap.String("topic", msg.Topic),
	)

	var envelope eventDomain.EventEnvelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return fmt.Errorf("%w: envelope: %v", kafka.ErrMalformed, err)
	}

	switch envelope.Event {
	case eventDomain.EventOrderCreated:
		var event eventDomain.OrderCreatedEvent
		if err := json.Unmarshal(envelope.Payload, &event); err != nil {
			return fmt.Errorf("%w: %s payload: %v", kafka.ErrMalformed, envelope.Event, err)
		}

		if err := c.service.HandleOrderCreated(ctx, envelope.EventID, &event); err != nil {
			mylogger.Error(ctx, c.logger, "Failed to handle order created event", zap.Error(err))
			return err
		}
	default:
		mylogger.Debug(ctx, c.logger, "Ignored event type", zap.String("event_type", envelope.Event))
	}

	return nil
}

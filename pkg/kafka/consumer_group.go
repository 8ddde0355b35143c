package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/cenkalti/backoff/v4"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, msg *sarama.ConsumerMessage) error

// ErrMalformed marks a message that can never be handled. It is logged and committed
// instead of being retried.
var ErrMalformed = errors.New("malformed message")

type ConsumerGroup struct {
	brokers     []string
	groupID     string
	topics      []string
	handlerFunc HandlerFunc
	logger      *zap.Logger
}

func NewConsumerGroup(
	brokers []string,
	groupID string,
	topics []string,
	handlerFunc HandlerFunc,
	logger *zap.Logger,
) *ConsumerGroup {
	return &ConsumerGroup{
		brokers:     brokers,
		groupID:     groupID,
		topics:      topics,
		handlerFunc: handlerFunc,
		logger:      logger,
	}
}

// Run consumes until ctx is cancelled.
func (c *ConsumerGroup) Run(ctx context.Context) error {
	config := sarama.NewConfig()
	config.Version = sarama.V3_0_0_0
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetOldest
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}

	group, err := sarama.NewConsumerGroup(c.brokers, c.groupID, config)
	if err != nil {
		return fmt.Errorf("error creating consumer group %s: %w", c.groupID, err)
	}

	defer func() {
		if err := group.Close(); err != nil {
			mylogger.Error(ctx, c.logger, "Error closing consumer group", zap.Error(err))
		}
	}()

	go func() {
		for err := range group.Errors() {
			mylogger.Warn(ctx, c.logger, "Consumer group error", zap.Error(err))
		}
	}()

	consumer := newSaramaHandler(c.handlerFunc, c.logger)

	for {
		err := group.Consume(ctx, c.topics, consumer)
		if err != nil && !errors.Is(err, sarama.ErrClosedConsumerGroup) {
			mylogger.Error(ctx, c.logger, "Error consuming in consumer loop", zap.Error(err))

			// the topic may not exist yet
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
		}

		if ctx.Err() != nil {
			mylogger.Info(ctx, c.logger, "Context cancelled, shutting down consumer")
			return nil
		}
	}
}

type saramaHandler struct {
	handler      HandlerFunc
	logger       *zap.Logger
	tracer       trace.Tracer
	retryInitial time.Duration
	retryMax     time.Duration
}

func newSaramaHandler(handler HandlerFunc, logger *zap.Logger) *saramaHandler {
	return &saramaHandler{
		handler:      handler,
		logger:       logger,
		tracer:       otel.Tracer("pkg/kafka/consumer"),
		retryInitial: 200 * time.Millisecond,
		retryMax:     10 * time.Second,
	}
}

func (h *saramaHandler) Setup(_ sarama.ConsumerGroupSession) error   { return nil }
func (h *saramaHandler) Cleanup(_ sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim handles messages strictly in order. Offsets are committed by position, so a
// message is retried until it succeeds and nothing after it is marked before that.
func (h *saramaHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		if !h.process(session, msg) {
			// session is ending; the unmarked message is consumed again by the next session
			return nil
		}
	}

	return nil
}

// process reports false when the session ended before msg was handled.
func (h *saramaHandler) process(session sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage) bool {
	ctx := extractTracing(session.Context(), msg)
	ctx, span := h.tracer.Start(ctx, "kafka_process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination", msg.Topic),
			attribute.Int("messaging.kafka.partition", int(msg.Partition)),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = h.retryInitial
	policy.MaxInterval = h.retryMax
	policy.MaxElapsedTime = 0

	err := backoff.RetryNotify(func() error {
		err := h.handler(ctx, msg)
		if errors.Is(err, ErrMalformed) {
			return backoff.Permanent(err)
		}

		return err
	}, backoff.WithContext(policy, session.Context()), func(err error, wait time.Duration) {
		mylogger.Error(
			ctx,
			h.logger,
			"Failed to process message, retrying",
			zap.String("topic", msg.Topic),
			zap.Int32("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		if !errors.Is(err, ErrMalformed) {
			return false
		}

		mylogger.Error(
			ctx,
			h.logger,
			"Skipping malformed message",
			zap.String("topic", msg.Topic),
			zap.Int32("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
	}

	session.MarkMessage(msg, "")
	return true
}

func extractTracing(ctx context.Context, msg *sarama.ConsumerMessage) context.Context {
	carrier := propagation.MapCarrier{}
	for _, header := range msg.Headers {
		carrier[string(header.Key)] = string(header.Value)
	}

	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	eventDomain "github.com/sakashimaa/accessory-shop/pkg/domain"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/pkg/outbox/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type OutboxRepository interface {
	SaveOutboxEvent(ctx context.Context, tx pgx.Tx, event *domain.OutboxEvent) error
	GetUnpublishedEvents(ctx context.Context, tx pgx.Tx, batchSize int) ([]*domain.OutboxEvent, error)
	MarkEventPublished(ctx context.Context, tx pgx.Tx, eventID int64) error
	MarkEventFailed(ctx context.Context, tx pgx.Tx, eventID int64, error string) error
}

type KafkaProducer interface {
	ProduceMessage(ctx context.Context, topic, key string, message interface{}) error
}

type OutboxProcessor struct {
	pool          *pgxpool.Pool
	repo          OutboxRepository
	kafkaProducer KafkaProducer
	logger        *zap.Logger
	batchSize     int
	interval      time.Duration
	tracer        trace.Tracer
}

type Option func(*OutboxProcessor)

func WithInterval(interval time.Duration) Option {
	return func(p *OutboxProcessor) {
		p.interval = interval
	}
}

func WithBatchSize(size int) Option {
	return func(p *OutboxProcessor) {
		p.batchSize = size
	}
}

func NewOutboxProcessor(
	pool *pgxpool.Pool,
	repo OutboxRepository,
	producer KafkaProducer,
	logger *zap.Logger,
	opts ...Option,
) *OutboxProcessor {
	p := &OutboxProcessor{
		pool:          pool,
		repo:          repo,
		kafkaProducer: producer,
		logger:        logger,
		batchSize:     50,
		interval:      500 * time.Millisecond,
		tracer:        otel.Tracer("outbox-worker"),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	mylogger.Info(
		ctx,
		p.logger,
		"Starting outbox processor",
		zap.Duration("interval", p.interval),
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			mylogger.Info(
				ctx,
				p.logger,
				"Outbox processor stopping",
			)

			return
		case <-ticker.C:
			if _, err := p.ProcessBatch(ctx); err != nil && ctx.Err() == nil {
				mylogger.Error(
					ctx,
					p.logger,
					"Error processing outbox batch",
					zap.Error(err),
				)
			}
		}
	}
}

// ProcessBatch publishes up to batchSize pending events and returns how many were published.
// Rows stay locked (SKIP LOCKED) until the batch commits, so several processors can run at once.
func (p *OutboxProcessor) ProcessBatch(ctx context.Context) (int, error) {
	ctx, span := p.tracer.Start(ctx, "OutboxProcessor.ProcessBatch")
	defer span.End()

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("error beginning transaction: %w", err)
	}
	defer func() {
		cleanupCtx := context.WithoutCancel(ctx)

		err := tx.Rollback(cleanupCtx)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			mylogger.Error(
				cleanupCtx,
				p.logger,
				"Outbox worker failed to rollback transaction",
				zap.Error(err),
			)
		}
	}()

	events, err := p.repo.GetUnpublishedEvents(ctx, tx, p.batchSize)
	if err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	span.SetAttributes(attribute.Int("outbox.batch", len(events)))

	published := 0
	for _, event := range events {
		envelope := eventDomain.EventEnvelope{
			Event:   event.EventType,
			EventID: event.ID,
			Payload: event.Payload,
		}

		err := p.kafkaProducer.ProduceMessage(ctx, event.Topic, event.AggregateID, envelope)
		if err != nil {
			mylogger.Warn(
				ctx,
				p.logger,
				"Outbox worker produce message failed",
				zap.Int64("id", event.ID),
				zap.Int64("attempts", event.Attempts+1),
				zap.Error(err),
			)

			if dbErr := p.repo.MarkEventFailed(ctx, tx, event.ID, err.Error()); dbErr != nil {
				return published, dbErr
			}

			continue
		}

		if err := p.repo.MarkEventPublished(ctx, tx, event.ID); err != nil {
			return published, err
		}

		published++

		mylogger.Debug(
			ctx,
			p.logger,
			"Outbox event published",
			zap.Int64("id", event.ID),
			zap.String("event_type", event.EventType),
		)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("error committing outbox batch: %w", err)
	}

	return published, nil
}

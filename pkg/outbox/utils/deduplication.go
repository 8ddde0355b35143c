package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/accessory-shop/pkg/db"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	maxRetries    = 2
	retryInterval = 500 * time.Millisecond
)

// ProcessWithDeduplication runs action at most once per eventID.
// The processed_events marker and the action share one transaction, so a failed action
// leaves no marker and the event can be redelivered. The whole unit is retried on failure.
func ProcessWithDeduplication(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger *zap.Logger,
	eventID int64,
	action func(ctx context.Context, tx pgx.Tx) error,
) error {
	span := trace.SpanFromContext(ctx)

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), maxRetries),
		ctx,
	)

	err := backoff.Retry(func() error {
		return processOnce(ctx, pool, logger, eventID, action)
	}, policy)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			logger,
			"Failed to process event after retries",
			zap.Int64("event_id", eventID),
			zap.Error(err),
		)

		return fmt.Errorf("failed to process event %d: %w", eventID, err)
	}

	return nil
}

func processOnce(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger *zap.Logger,
	eventID int64,
	action func(ctx context.Context, tx pgx.Tx) error,
) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)

		err := tx.Rollback(shutdownCtx)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			mylogger.Error(
				shutdownCtx,
				logger,
				"Error rolling back transaction",
				zap.Error(err),
			)
		}
	}()

	query := `
		INSERT INTO processed_events (event_id)
		VALUES ($1)
	`

	if _, err := tx.Exec(ctx, query, eventID); err != nil {
		if db.IsUniqueViolation(err) {
			mylogger.Info(
				ctx,
				logger,
				"Event already processed, skipping",
				zap.Int64("event_id", eventID),
			)

			return nil
		}

		return err
	}

	if err := action(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

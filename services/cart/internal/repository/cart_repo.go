package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/cart/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type CartRepository interface {
	Upsert(ctx context.Context, customerID, productID int64, quantity int32) (*domain.CartItem, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartItem, error)
	UpdateQuantity(ctx context.Context, customerID, itemID int64, quantity int32) (*domain.CartItem, error)
	Delete(ctx context.Context, customerID, itemID int64) error
	DeleteByCustomer(ctx context.Context, customerID int64) (int64, error)
	Count(ctx context.Context, customerID int64) (int64, error)
	RemoveProducts(ctx context.Context, tx pgx.Tx, customerID int64, productIDs []int64) (int64, error)
}

type cartRepository struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewCartRepository(pool *pgxpool.Pool, logger *zap.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		tracer: otel.Tracer("repository/cart_repo"),
		logger: logger,
	}
}

const cartItemColumns = `id, customer_id, product_id, quantity, updated_at`

func scanCartItem(row pgx.Row, item *domain.CartItem) error {
	return row.Scan(
		&item.ID,
		&item.CustomerID,
		&item.ProductID,
		&item.Quantity,
		&item.UpdatedAt,
	)
}

// Upsert inserts the (customer, product) row or adds quantity to the existing one in a single statement.
func (r *cartRepository) Upsert(ctx context.Context, customerID, productID int64, quantity int32) (*domain.CartItem, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.Upsert")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("product_id", productID),
		attribute.Int("quantity", int(quantity)),
	)

	query := `
		INSERT INTO cart_items (customer_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity,
		              updated_at = NOW()
		RETURNING ` + cartItemColumns

	var item domain.CartItem
	if err := scanCartItem(r.pool.QueryRow(ctx, query, customerID, productID, quantity), &item); err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to upsert cart item",
			zap.Int64("customer_id", customerID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return &item, nil
}

func (r *cartRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.CartItem, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.ListByCustomer")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer_id", customerID))

	query := `
		SELECT ` + cartItemColumns + `
		FROM cart_items
		WHERE customer_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to query cart items",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		if err := scanCartItem(rows, &item); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, customerID, itemID int64, quantity int32) (*domain.CartItem, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.UpdateQuantity")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("item_id", itemID),
	)

	query := `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE id = $2 AND customer_id = $3
		RETURNING ` + cartItemColumns

	var item domain.CartItem
	if err := scanCartItem(r.pool.QueryRow(ctx, query, quantity, itemID, customerID), &item); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartItemNotFound
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to update cart item",
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return &item, nil
}

func (r *cartRepository) Delete(ctx context.Context, customerID, itemID int64) error {
	ctx, span := r.tracer.Start(ctx, "CartRepository.Delete")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("item_id", itemID),
	)

	query := `
		DELETE FROM cart_items
		WHERE id = $1 AND customer_id = $2
	`

	commandTag, err := r.pool.Exec(ctx, query, itemID, customerID)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to delete cart item",
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)

		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) DeleteByCustomer(ctx context.Context, customerID int64) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.DeleteByCustomer")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer_id", customerID))

	commandTag, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE customer_id = $1`, customerID)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to clear cart",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return 0, fmt.Errorf("failed to clear cart: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func (r *cartRepository) Count(ctx context.Context, customerID int64) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.Count")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer_id", customerID))

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, customerID).
		Scan(&count)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count cart items: %w", err)
	}

	return count, nil
}

// RemoveProducts deletes the customer's rows for productIDs inside tx.
func (r *cartRepository) RemoveProducts(ctx context.Context, tx pgx.Tx, customerID int64, productIDs []int64) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "CartRepository.RemoveProducts")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int("products_count", len(productIDs)),
	)

	query := `
		DELETE FROM cart_items
		WHERE customer_id = $1 AND product_id = ANY($2)
	`

	commandTag, err := tx.Exec(ctx, query, customerID, productIDs)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to remove ordered products from cart",
			zap.Int64("customer_id", customerID),
			zap.Int64s("product_ids", productIDs),
			zap.Error(err),
		)

		return 0, fmt.Errorf("failed to remove products from cart: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

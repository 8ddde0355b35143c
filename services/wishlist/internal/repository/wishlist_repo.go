package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/accessory-shop/pkg/db"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const uniqueCustomerProduct = "unique_customer_product_wishlist"

type WishlistRepository interface {
	Add(ctx context.Context, customerID, productID int64) (*domain.WishlistItem, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.WishlistItem, error)
	DeleteByID(ctx context.Context, itemID int64) error
	DeleteByProduct(ctx context.Context, customerID, productID int64) error
	DeleteByCustomer(ctx context.Context, customerID int64) (int64, error)
	Count(ctx context.Context, customerID int64) (int64, error)
	RemoveProducts(ctx context.Context, tx pgx.Tx, customerID int64, productIDs []int64) (int64, error)
}

type wishlistRepository struct {
	pool   *pgxpool.Pool
	tracer trace.Tracer
	logger *zap.Logger
}

func NewWishlistRepository(pool *pgxpool.Pool, logger *zap.Logger) WishlistRepository {
	return &wishlistRepository{
		pool:   pool,
		tracer: otel.Tracer("repository/wishlist_repo"),
		logger: logger,
	}
}

// Add relies on the (customer_id, product_id) constraint; a duplicate yields ErrAlreadyInWishlist.
func (r *wishlistRepository) Add(ctx context.Context, customerID, productID int64) (*domain.WishlistItem, error) {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.Add")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("product_id", productID),
	)

	query := `
		INSERT INTO wishlist_items (customer_id, product_id)
		VALUES ($1, $2)
		RETURNING id, customer_id, product_id, created_at
	`

	var item domain.WishlistItem
	err := r.pool.QueryRow(ctx, query, customerID, productID).Scan(
		&item.ID,
		&item.CustomerID,
		&item.ProductID,
		&item.CreatedAt,
	)
	if err != nil {
		if db.IsUniqueViolation(err, uniqueCustomerProduct) {
			return nil, ErrAlreadyInWishlist
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to insert wishlist item",
			zap.Int64("customer_id", customerID),
			zap.Int64("product_id", productID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to insert wishlist item: %w", err)
	}

	return &item, nil
}

func (r *wishlistRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.WishlistItem, error) {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.ListByCustomer")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer_id", customerID))

	query := `
		SELECT id, customer_id, product_id, created_at
		FROM wishlist_items
		WHERE customer_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to query wishlist",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}
	defer rows.Close()

	items := make([]domain.WishlistItem, 0)
	for rows.Next() {
		var item domain.WishlistItem
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.ProductID, &item.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}

func (r *wishlistRepository) DeleteByID(ctx context.Context, itemID int64) error {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.DeleteByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("item_id", itemID))

	commandTag, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE id = $1`, itemID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrWishlistItemNotFound
	}

	return nil
}

func (r *wishlistRepository) DeleteByProduct(ctx context.Context, customerID, productID int64) error {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.DeleteByProduct")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("product_id", productID),
	)

	query := `
		DELETE FROM wishlist_items
		WHERE customer_id = $1 AND product_id = $2
	`

	commandTag, err := r.pool.Exec(ctx, query, customerID, productID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete wishlist item: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrNotInWishlist
	}

	return nil
}

func (r *wishlistRepository) DeleteByCustomer(ctx context.Context, customerID int64) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.DeleteByCustomer")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer_id", customerID))

	commandTag, err := r.pool.Exec(ctx, `DELETE FROM wishlist_items WHERE customer_id = $1`, customerID)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to clear wishlist",
			zap.Int64("customer_id", customerID),
			zap.Error(err),
		)

		return 0, fmt.Errorf("failed to clear wishlist: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func (r *wishlistRepository) Count(ctx context.Context, customerID int64) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.Count")
	defer span.End()

	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM wishlist_items WHERE customer_id = $1`, customerID).
		Scan(&count)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count wishlist items: %w", err)
	}

	return count, nil
}

func (r *wishlistRepository) RemoveProducts(ctx context.Context, tx pgx.Tx, customerID int64, productIDs []int64) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "WishlistRepository.RemoveProducts")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int("products_count", len(productIDs)),
	)

	query := `
		DELETE FROM wishlist_items
		WHERE customer_id = $1 AND product_id = ANY($2)
	`

	commandTag, err := tx.Exec(ctx, query, customerID, productIDs)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to remove products from wishlist: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

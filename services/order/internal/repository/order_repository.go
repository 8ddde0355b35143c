package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/order/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, tx pgx.Tx, order *domain.Order) error
	GetByID(ctx context.Context, orderID int64) (*domain.Order, error)
	List(ctx context.Context, customerID *int64) ([]domain.Order, error)
	GetAllItemsOfOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error)
	Update(ctx context.Context, orderID int64, update *domain.OrderUpdate) error
	Delete(ctx context.Context, tx pgx.Tx, orderID int64) (int64, error)
}

type orderRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	tracer trace.Tracer
}

func NewOrderRepository(pool *pgxpool.Pool, logger *zap.Logger) OrderRepository {
	return &orderRepo{
		pool:   pool,
		logger: logger,
		tracer: otel.Tracer("order_repository"),
	}
}

const orderColumns = `order_id, customer_id, order_date, ship_amount, tax_amount, ship_date,
		ship_address_id, card_type, card_number, card_expires, billing_address_id`

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.OrderDate,
		&o.ShipAmount,
		&o.TaxAmount,
		&o.ShipDate,
		&o.ShipAddressID,
		&o.CardType,
		&o.CardNumber,
		&o.CardExpires,
		&o.BillingAddressID,
	)
}

// CreateOrder writes the header and every item inside tx.
func (r *orderRepo) CreateOrder(ctx context.Context, tx pgx.Tx, order *domain.Order) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.CreateOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", order.CustomerID),
		attribute.Int("items_count", len(order.Items)),
	)

	queryOrder := `
		INSERT INTO orders (customer_id, order_date, ship_amount, tax_amount, ship_address_id,
			card_type, card_number, card_expires, billing_address_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING order_id
	`

	if err := tx.QueryRow(
		ctx,
		queryOrder,
		order.CustomerID,
		order.OrderDate,
		order.ShipAmount,
		order.TaxAmount,
		order.ShipAddressID,
		order.CardType,
		order.CardNumber,
		order.CardExpires,
		order.BillingAddressID,
	).Scan(&order.ID); err != nil {
		span.RecordError(err)

		mylogger.Warn(
			ctx,
			r.logger,
			"Failed to insert order",
			zap.Error(err),
		)

		return fmt.Errorf("failed to insert order: %w", err)
	}

	queryItem := `
		INSERT INTO order_items (order_id, product_id, item_price, discount_amount, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING item_id
	`

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		err := tx.QueryRow(
			ctx,
			queryItem,
			order.ID,
			item.ProductID,
			item.ItemPrice,
			item.DiscountAmount,
			item.Quantity,
		).Scan(&item.ID)
		if err != nil {
			span.RecordError(err)

			mylogger.Error(
				ctx,
				r.logger,
				"Failed to insert item",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err),
			)

			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.GetByID")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", orderID),
	)

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE order_id = $1
	`

	var order domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, query, orderID), &order); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to query order",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, customerID *int64) ([]domain.Order, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.List")
	defer span.End()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
	`

	var args []interface{}
	if customerID != nil {
		span.SetAttributes(attribute.Int64("customer_id", *customerID))

		query += ` WHERE customer_id = $1`
		args = append(args, *customerID)
	}

	query += ` ORDER BY order_id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to query orders",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := scanOrder(rows, &order); err != nil {
			span.RecordError(err)

			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return orders, nil
}

func (r *orderRepo) GetAllItemsOfOrder(ctx context.Context, orderID int64) ([]domain.OrderItem, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.GetAllItemsOfOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", orderID),
	)

	query := `
		SELECT item_id, order_id, product_id, item_price, discount_amount, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY item_id;
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to query order_items",
			zap.Error(err),
		)

		return nil, err
	}
	defer rows.Close()

	result := make([]domain.OrderItem, 0)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ItemPrice,
			&item.DiscountAmount,
			&item.Quantity,
		); err != nil {
			span.RecordError(err)
			mylogger.Error(
				ctx,
				r.logger,
				"Failed to scan row",
				zap.Error(err),
			)

			return nil, err
		}

		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		mylogger.Error(
			ctx,
			r.logger,
			"Rows error",
			zap.Error(err),
		)

		return nil, err
	}

	return result, nil
}

func (r *orderRepo) Update(ctx context.Context, orderID int64, update *domain.OrderUpdate) error {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.Update")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", orderID),
	)

	query := `UPDATE orders SET `
	var args []interface{}
	argId := 1

	var updates []string

	if update.ShipAmount != nil {
		updates = append(updates, fmt.Sprintf("ship_amount = $%d", argId))
		args = append(args, *update.ShipAmount)
		argId++
	}

	if update.TaxAmount != nil {
		updates = append(updates, fmt.Sprintf("tax_amount = $%d", argId))
		args = append(args, *update.TaxAmount)
		argId++
	}

	if update.ShipDateSet {
		updates = append(updates, fmt.Sprintf("ship_date = $%d", argId))
		args = append(args, update.ShipDate)
		argId++
	}

	if update.ShipAddressID != nil {
		updates = append(updates, fmt.Sprintf("ship_address_id = $%d", argId))
		args = append(args, *update.ShipAddressID)
		argId++
	}

	if len(updates) == 0 {
		return nil
	}

	query += strings.Join(updates, ", ")
	query += fmt.Sprintf(" WHERE order_id = $%d", argId)
	args = append(args, orderID)

	commandTag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to update order",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)

		return fmt.Errorf("failed to update order: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// Delete removes the items and then the header inside tx and returns the order's customer.
func (r *orderRepo) Delete(ctx context.Context, tx pgx.Tx, orderID int64) (int64, error) {
	ctx, span := r.tracer.Start(ctx, "OrderRepository.Delete")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", orderID),
	)

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to delete order items",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)

		return 0, fmt.Errorf("failed to delete order items: %w", err)
	}

	query := `
		DELETE FROM orders
		WHERE order_id = $1
		RETURNING customer_id
	`

	var customerID int64
	if err := tx.QueryRow(ctx, query, orderID).Scan(&customerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrOrderNotFound
		}

		span.RecordError(err)

		mylogger.Error(
			ctx,
			r.logger,
			"Failed to delete order",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)

		return 0, fmt.Errorf("failed to delete order: %w", err)
	}

	return customerID, nil
}

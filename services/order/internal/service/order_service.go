package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/accessory-shop/pkg/client"
	eventDomain "github.com/sakashimaa/accessory-shop/pkg/domain"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	outboxDomain "github.com/sakashimaa/accessory-shop/pkg/outbox/domain"
	"github.com/sakashimaa/accessory-shop/pkg/outbox/worker"
	"github.com/sakashimaa/accessory-shop/services/order/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/order/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const aggregateOrder = "Order"

type OrderService interface {
	CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetOrders(ctx context.Context, customerID *int64) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID int64, update *domain.OrderUpdate) (*domain.Order, error)
	DeleteOrder(ctx context.Context, orderID int64) error
	GetCustomerOrders(ctx context.Context, customerID int64) ([]domain.Order, error)
}

type orderService struct {
	pool       *pgxpool.Pool
	logger     *zap.Logger
	orderRepo  repository.OrderRepository
	outboxRepo worker.OutboxRepository
	customers  client.CustomerClient
	catalog    client.CatalogClient
	tracer     trace.Tracer
}

func NewOrderService(
	pool *pgxpool.Pool,
	logger *zap.Logger,
	orderRepo repository.OrderRepository,
	outboxRepo worker.OutboxRepository,
	customers client.CustomerClient,
	catalog client.CatalogClient,
) OrderService {
	return &orderService{
		pool:       pool,
		logger:     logger,
		orderRepo:  orderRepo,
		outboxRepo: outboxRepo,
		customers:  customers,
		catalog:    catalog,
		tracer:     otel.Tracer("order_service"),
	}
}

// validate checks the customer and then each product in order, stopping at the first failure.
// Nothing is written until every reference has been confirmed.
func (s *orderService) validate(ctx context.Context, order *domain.Order) error {
	if _, err := s.customers.GetCustomer(ctx, order.CustomerID); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return ErrInvalidCustomer
		}

		return err
	}

	for _, item := range order.Items {
		if _, err := s.catalog.GetProduct(ctx, item.ProductID); err != nil {
			if errors.Is(err, client.ErrNotFound) {
				return &ProductNotFoundError{ProductID: item.ProductID}
			}

			return err
		}
	}

	return nil
}

func (s *orderService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", order.CustomerID),
		attribute.Int("items_count", len(order.Items)),
	)

	if err := s.validate(ctx, order); err != nil {
		mylogger.Warn(
			ctx,
			s.logger,
			"Order rejected",
			zap.Int64("customer_id", order.CustomerID),
			zap.Error(err),
		)

		return nil, err
	}

	order.OrderDate = time.Now().UTC()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)
		err := tx.Rollback(shutdownCtx)

		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			mylogger.Warn(
				shutdownCtx,
				s.logger,
				"Error rolling back transaction",
				zap.Error(err),
			)
		}
	}()

	if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to create order",
			zap.Int64("customer_id", order.CustomerID),
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]eventDomain.OrderedItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, eventDomain.OrderedItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	err = s.emitEvent(ctx, tx, order.ID, eventDomain.EventOrderCreated, &eventDomain.OrderCreatedEvent{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		OrderDate:  order.OrderDate,
		Items:      items,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		mylogger.Error(
			ctx,
			s.logger,
			"Failed to commit transaction",
			zap.Error(err),
		)

		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", order.CustomerID),
	)

	return order, nil
}

// withItems loads the items of every order, one query per order.
func (s *orderService) withItems(ctx context.Context, orders []domain.Order) ([]domain.Order, error) {
	for i := range orders {
		items, err := s.orderRepo.GetAllItemsOfOrder(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load items of order %d: %w", orders[i].ID, err)
		}

		orders[i].Items = items
	}

	return orders, nil
}

func (s *orderService) GetOrders(ctx context.Context, customerID *int64) ([]domain.Order, error) {
	orders, err := s.orderRepo.List(ctx, customerID)
	if err != nil {
		return nil, err
	}

	return s.withItems(ctx, orders)
}

func (s *orderService) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	order.Items, err = s.orderRepo.GetAllItemsOfOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items of order %d: %w", orderID, err)
	}

	return order, nil
}

// UpdateOrder applies the allow-listed fields of update. An empty update returns the order unchanged.
func (s *orderService) UpdateOrder(ctx context.Context, orderID int64, update *domain.OrderUpdate) (*domain.Order, error) {
	if !update.IsEmpty() {
		if err := s.orderRepo.Update(ctx, orderID, update); err != nil {
			return nil, err
		}
	}

	return s.GetOrder(ctx, orderID)
}

func (s *orderService) DeleteOrder(ctx context.Context, orderID int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		mylogger.Warn(
			ctx,
			s.logger,
			"Failed to begin transaction",
			zap.Error(err),
		)

		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		shutdownCtx := context.WithoutCancel(ctx)

		if err := tx.Rollback(shutdownCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			mylogger.Warn(shutdownCtx, s.logger, "Failed to rollback transaction", zap.Error(err))
		}
	}()

	customerID, err := s.orderRepo.Delete(ctx, tx, orderID)
	if err != nil {
		return err
	}

	err = s.emitEvent(ctx, tx, orderID, eventDomain.EventOrderDeleted, &eventDomain.OrderDeletedEvent{
		OrderID:    orderID,
		CustomerID: customerID,
	})
	if err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		mylogger.Error(ctx, s.logger, "Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (s *orderService) GetCustomerOrders(ctx context.Context, customerID int64) ([]domain.Order, error) {
	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}

		return nil, err
	}

	return s.GetOrders(ctx, &customerID)
}

func (s *orderService) emitEvent(ctx context.Context, tx pgx.Tx, orderID int64, eventType string, payload any) error {
	event, err := outboxDomain.NewOutboxEvent(
		eventDomain.TopicOrderEvents,
		aggregateOrder,
		strconv.FormatInt(orderID, 10),
		eventType,
		payload,
	)
	if err != nil {
		mylogger.Warn(
			ctx,
			s.logger,
			"Failed to marshal event payload",
			zap.String("event_type", eventType),
			zap.Error(err),
		)

		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	if err := s.outboxRepo.SaveOutboxEvent(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to save outbox event: %w", err)
	}

	return nil
}

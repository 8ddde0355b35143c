package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sakashimaa/accessory-shop/pkg/client"
	eventDomain "github.com/sakashimaa/accessory-shop/pkg/domain"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	outboxUtils "github.com/sakashimaa/accessory-shop/pkg/outbox/utils"
	"github.com/sakashimaa/accessory-shop/services/cart/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/cart/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type CartService interface {
	AddItem(ctx context.Context, customerID, productID int64, quantity int32) (*domain.PricedItem, error)
	GetCart(ctx context.Context, customerID int64) (*domain.Summary, error)
	UpdateItem(ctx context.Context, customerID, itemID int64, quantity int32) (*domain.PricedItem, error)
	RemoveItem(ctx context.Context, customerID, itemID int64) error
	ClearCart(ctx context.Context, customerID int64) error
	GetCount(ctx context.Context, customerID int64) (int64, error)
	HandleOrderCreated(ctx context.Context, eventID int64, event *eventDomain.OrderCreatedEvent) error
}

type cartService struct {
	pool        *pgxpool.Pool
	repo        repository.CartRepository
	customers   client.CustomerClient
	catalog     client.CatalogClient
	concurrency int
	logger      *zap.Logger
	tracer      trace.Tracer
}

func NewCartService(
	pool *pgxpool.Pool,
	repo repository.CartRepository,
	customers client.CustomerClient,
	catalog client.CatalogClient,
	concurrency int,
	logger *zap.Logger,
) CartService {
	return &cartService{
		pool:        pool,
		repo:        repo,
		customers:   customers,
		catalog:     catalog,
		concurrency: concurrency,
		logger:      logger,
		tracer:      otel.Tracer("cart_service"),
	}
}

func toProductInfo(p *client.Product) *domain.ProductInfo {
	if p == nil {
		return nil
	}

	return &domain.ProductInfo{
		ProductID:       p.ProductID,
		ProductName:     p.ProductName,
		ProductCode:     p.ProductCode,
		ListPrice:       p.ListPrice,
		DiscountPercent: p.DiscountPercent,
	}
}

func (s *cartService) ensureCustomer(ctx context.Context, customerID int64) error {
	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return ErrCustomerNotFound
		}

		return err
	}

	return nil
}

func (s *cartService) AddItem(ctx context.Context, customerID, productID int64, quantity int32) (*domain.PricedItem, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.AddItem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("product_id", productID),
	)

	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrProductNotFound
		}

		return nil, err
	}

	item, err := s.repo.Upsert(ctx, customerID, productID, quantity)
	if err != nil {
		return nil, err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Cart item added",
		zap.Int64("customer_id", customerID),
		zap.Int64("product_id", productID),
		zap.Int32("quantity", item.Quantity),
	)

	priced := domain.Price(*item, toProductInfo(product))
	return &priced, nil
}

// GetCart prices every row against a fresh catalog lookup. Rows whose lookup fails are left out of the summary.
func (s *cartService) GetCart(ctx context.Context, customerID int64) (*domain.Summary, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.GetCart")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer_id", customerID))

	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	products := client.FetchProducts(ctx, s.catalog, ids, s.concurrency)

	priced := make([]domain.PricedItem, len(items))
	skipped := 0
	for i, item := range items {
		priced[i] = domain.Price(item, toProductInfo(products[i]))
		if products[i] == nil {
			skipped++
		}
	}

	if skipped > 0 {
		mylogger.Warn(
			ctx,
			s.logger,
			"Cart rows left out of summary",
			zap.Int64("customer_id", customerID),
			zap.Int("skipped", skipped),
		)
	}

	summary := domain.Summarize(priced)
	return &summary, nil
}

// UpdateItem does not re-validate the product; the lookup only enriches the response.
func (s *cartService) UpdateItem(ctx context.Context, customerID, itemID int64, quantity int32) (*domain.PricedItem, error) {
	item, err := s.repo.UpdateQuantity(ctx, customerID, itemID, quantity)
	if err != nil {
		return nil, err
	}

	product, err := s.catalog.GetProduct(ctx, item.ProductID)
	if err != nil {
		mylogger.Warn(
			ctx,
			s.logger,
			"Product lookup failed, returning cart item without product info",
			zap.Int64("item_id", itemID),
			zap.Int64("product_id", item.ProductID),
			zap.Error(err),
		)
	}

	priced := domain.Price(*item, toProductInfo(product))
	return &priced, nil
}

func (s *cartService) RemoveItem(ctx context.Context, customerID, itemID int64) error {
	return s.repo.Delete(ctx, customerID, itemID)
}

func (s *cartService) ClearCart(ctx context.Context, customerID int64) error {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return err
	}

	removed, err := s.repo.DeleteByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Cart cleared",
		zap.Int64("customer_id", customerID),
		zap.Int64("removed", removed),
	)

	return nil
}

func (s *cartService) GetCount(ctx context.Context, customerID int64) (int64, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return 0, err
	}

	return s.repo.Count(ctx, customerID)
}

// HandleOrderCreated drops the ordered products from the customer's cart once per event.
func (s *cartService) HandleOrderCreated(ctx context.Context, eventID int64, event *eventDomain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "CartService.HandleOrderCreated")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("event_id", eventID),
		attribute.Int64("order_id", event.OrderID),
	)

	return outboxUtils.ProcessWithDeduplication(ctx, s.pool, s.logger, eventID, func(ctx context.Context, tx pgx.Tx) error {
		removed, err := s.repo.RemoveProducts(ctx, tx, event.CustomerID, event.ProductIDs())
		if err != nil {
			return err
		}

		mylogger.Info(
			ctx,
			s.logger,
			"Ordered products removed from cart",
			zap.Int64("order_id", event.OrderID),
			zap.Int64("customer_id", event.CustomerID),
			zap.Int64("removed", removed),
		)

		return nil
	})
}

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
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Entry is a wishlist row with the product as the catalog currently describes it.
// Product is nil when the catalog lookup failed.
type Entry struct {
	domain.WishlistItem
	Product *client.Product
}

type WishlistService interface {
	AddItem(ctx context.Context, customerID, productID int64) (*Entry, error)
	GetCustomerWishlist(ctx context.Context, customerID int64) ([]Entry, error)
	RemoveItem(ctx context.Context, itemID int64) error
	RemoveByProduct(ctx context.Context, customerID, productID int64) error
	ClearWishlist(ctx context.Context, customerID int64) error
	GetCount(ctx context.Context, customerID int64) (int64, error)
	HandleOrderCreated(ctx context.Context, eventID int64, event *eventDomain.OrderCreatedEvent) error
}

type wishlistService struct {
	pool        *pgxpool.Pool
	repo        repository.WishlistRepository
	customers   client.CustomerClient
	catalog     client.CatalogClient
	concurrency int
	logger      *zap.Logger
	tracer      trace.Tracer
}

func NewWishlistService(
	pool *pgxpool.Pool,
	repo repository.WishlistRepository,
	customers client.CustomerClient,
	catalog client.CatalogClient,
	concurrency int,
	logger *zap.Logger,
) WishlistService {
	return &wishlistService{
		pool:        pool,
		repo:        repo,
		customers:   customers,
		catalog:     catalog,
		concurrency: concurrency,
		logger:      logger,
		tracer:      otel.Tracer("wishlist_service"),
	}
}

// checkCustomer maps a missing customer to notFound and passes any other failure through.
func (s *wishlistService) checkCustomer(ctx context.Context, customerID int64, notFound error) error {
	if _, err := s.customers.GetCustomer(ctx, customerID); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return notFound
		}

		return err
	}

	return nil
}

func (s *wishlistService) AddItem(ctx context.Context, customerID, productID int64) (*Entry, error) {
	ctx, span := s.tracer.Start(ctx, "WishlistService.AddItem")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("customer_id", customerID),
		attribute.Int64("product_id", productID),
	)

	if err := s.checkCustomer(ctx, customerID, ErrInvalidCustomer); err != nil {
		return nil, err
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrInvalidProduct
		}

		return nil, err
	}

	item, err := s.repo.Add(ctx, customerID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyInWishlist) {
			mylogger.Debug(
				ctx,
				s.logger,
				"Product already in wishlist",
				zap.Int64("customer_id", customerID),
				zap.Int64("product_id", productID),
			)
		}

		return nil, err
	}

	return &Entry{WishlistItem: *item, Product: product}, nil
}

// GetCustomerWishlist keeps rows whose product lookup failed, with a nil Product.
func (s *wishlistService) GetCustomerWishlist(ctx context.Context, customerID int64) ([]Entry, error) {
	ctx, span := s.tracer.Start(ctx, "WishlistService.GetCustomerWishlist")
	defer span.End()

	span.SetAttributes(attribute.Int64("customer_id", customerID))

	if err := s.checkCustomer(ctx, customerID, ErrCustomerNotFound); err != nil {
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

	entries := make([]Entry, len(items))
	for i, item := range items {
		entries[i] = Entry{WishlistItem: item, Product: products[i]}
	}

	return entries, nil
}

func (s *wishlistService) RemoveItem(ctx context.Context, itemID int64) error {
	return s.repo.DeleteByID(ctx, itemID)
}

func (s *wishlistService) RemoveByProduct(ctx context.Context, customerID, productID int64) error {
	return s.repo.DeleteByProduct(ctx, customerID, productID)
}

func (s *wishlistService) ClearWishlist(ctx context.Context, customerID int64) error {
	if err := s.checkCustomer(ctx, customerID, ErrCustomerNotFound); err != nil {
		return err
	}

	removed, err := s.repo.DeleteByCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Wishlist cleared",
		zap.Int64("customer_id", customerID),
		zap.Int64("removed", removed),
	)

	return nil
}

func (s *wishlistService) GetCount(ctx context.Context, customerID int64) (int64, error) {
	if err := s.checkCustomer(ctx, customerID, ErrCustomerNotFound); err != nil {
		return 0, err
	}

	return s.repo.Count(ctx, customerID)
}

// HandleOrderCreated drops the ordered products from the customer's wishlist once per event.
func (s *wishlistService) HandleOrderCreated(ctx context.Context, eventID int64, event *eventDomain.OrderCreatedEvent) error {
	ctx, span := s.tracer.Start(ctx, "WishlistService.HandleOrderCreated")
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
			"Ordered products removed from wishlist",
			zap.Int64("order_id", event.OrderID),
			zap.Int64("customer_id", event.CustomerID),
			zap.Int64("removed", removed),
		)

		return nil
	})
}

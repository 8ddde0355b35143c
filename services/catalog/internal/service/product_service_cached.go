package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/domain"
	"go.uber.org/zap"
)

const defaultProductTTL = 10 * time.Minute

type cachedProductService struct {
	next        ProductService
	redisClient *redis.Client
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewCachedProductService puts a read-through redis cache in front of FindByID.
// Cache errors are logged and the call falls through to next.
func NewCachedProductService(next ProductService, redisClient *redis.Client, logger *zap.Logger) ProductService {
	return &cachedProductService{
		next:        next,
		redisClient: redisClient,
		cacheTTL:    defaultProductTTL,
		logger:      logger,
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *cachedProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	return s.next.Create(ctx, product)
}

func (s *cachedProductService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	key := productKey(id)

	val, err := s.redisClient.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product domain.Product
		if err := json.Unmarshal(val, &product); err == nil {
			return &product, nil
		}

		mylogger.Warn(ctx, s.logger, "Corrupt product cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		mylogger.Warn(ctx, s.logger, "Product cache read failed", zap.String("key", key), zap.Error(err))
	}

	product, err := s.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(product)
	if err != nil {
		return product, nil
	}

	if err := s.redisClient.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		mylogger.Warn(ctx, s.logger, "Product cache write failed", zap.String("key", key), zap.Error(err))
	}

	return product, nil
}

func (s *cachedProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.next.List(ctx, filter)
}

func (s *cachedProductService) Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error) {
	product, err := s.next.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)

	return product, nil
}

func (s *cachedProductService) Delete(ctx context.Context, id int64) error {
	if err := s.next.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *cachedProductService) invalidate(ctx context.Context, id int64) {
	if err := s.redisClient.Del(ctx, productKey(id)).Err(); err != nil {
		mylogger.Warn(ctx, s.logger, "Product cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}
}

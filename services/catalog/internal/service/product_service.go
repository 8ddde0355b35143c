package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/repository"
	"go.uber.org/zap"
)

const (
	productCodeLength   = 8
	maxProductCodeTries = 10
)

type ProductService interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

// CodeGenerator returns a candidate product code.
type CodeGenerator func() string

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	newCode      CodeGenerator
	logger       *zap.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) ProductService {
	return NewProductServiceWithCodes(productRepo, categoryRepo, RandomProductCode, logger)
}

func NewProductServiceWithCodes(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	newCode CodeGenerator,
	logger *zap.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		newCode:      newCode,
		logger:       logger,
	}
}

// RandomProductCode is the first 8 characters of an uppercase UUID.
func RandomProductCode() string {
	return strings.ToUpper(uuid.NewString()[:productCodeLength])
}

func (s *productService) checkCategory(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrInvalidCategory
		}

		return err
	}

	return nil
}

func (s *productService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.checkCategory(ctx, product.CategoryID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxProductCodeTries; attempt++ {
		product.ProductCode = s.newCode()

		_, err := s.productRepo.Create(ctx, product)
		if err == nil {
			mylogger.Info(
				ctx,
				s.logger,
				"Product created",
				zap.Int64("product_id", product.ID),
				zap.String("product_code", product.ProductCode),
			)

			return s.productRepo.GetByID(ctx, product.ID)
		}

		switch {
		case errors.Is(err, repository.ErrProductCodeTaken):
			mylogger.Warn(
				ctx,
				s.logger,
				"Product code collision",
				zap.String("product_code", product.ProductCode),
				zap.Int("attempt", attempt),
			)
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrInvalidCategory
		default:
			return nil, err
		}
	}

	mylogger.Error(
		ctx,
		s.logger,
		"Product code generation exhausted",
		zap.Int("attempts", maxProductCodeTries),
	)

	return nil, fmt.Errorf("%w after %d attempts", ErrCodeExhausted, maxProductCodeTries)
}

func (s *productService) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, ErrInvalidPriceSpan
	}

	return s.productRepo.List(ctx, filter)
}

func (s *productService) Update(ctx context.Context, id int64, input *domain.UpdateProductInput) (*domain.Product, error) {
	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, *input.CategoryID); err != nil {
			return nil, err
		}
	}

	if !input.IsEmpty() {
		if err := s.productRepo.Update(ctx, id, input); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrInvalidCategory
			}

			return nil, err
		}
	}

	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	mylogger.Info(
		ctx,
		s.logger,
		"Product deleted",
		zap.Int64("product_id", id),
	)

	return nil
}

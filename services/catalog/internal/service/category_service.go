package service

import (
	"context"

	"github.com/sakashimaa/accessory-shop/services/catalog/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/repository"
)

type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	FindByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	return s.categoryRepo.Create(ctx, name)
}

func (s *categoryService) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) List(ctx context.Context) ([]domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

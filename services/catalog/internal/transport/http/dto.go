package http

import (
	"time"

	"github.com/sakashimaa/accessory-shop/services/catalog/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	CategoryID      int64    `json:"category_id" validate:"gt=0"`
	ProductName     string   `json:"product_name" validate:"required,max=255"`
	Description     string   `json:"description" validate:"max=2000"`
	ListPrice       decimal.Decimal  `json:"list_price" validate:"gt=0"`
	DiscountPercent *decimal.Decimal `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
}

type UpdateProductRequest struct {
	CategoryID      *int64           `json:"category_id" validate:"omitempty,gt=0"`
	ProductCode     *string          `json:"product_code" validate:"omitempty,min=1,max=10"`
	ProductName     *string          `json:"product_name" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description" validate:"omitempty,max=2000"`
	ListPrice       *decimal.Decimal `json:"list_price" validate:"omitempty,gt=0"`
	DiscountPercent *decimal.Decimal `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
}

type CreateCategoryRequest struct {
	CategoryName string `json:"category_name" validate:"required,max=255"`
}

type CategoryResponse struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
}

type ProductResponse struct {
	ProductID       int64             `json:"product_id"`
	ProductName     string            `json:"product_name"`
	ListPrice       float64           `json:"list_price"`
	DiscountPercent float64           `json:"discount_percent"`
	ProductCode     string            `json:"product_code"`
	Description     string            `json:"description"`
	CategoryID      int64             `json:"category_id"`
	DateAdded       time.Time         `json:"date_added"`
	Category        *CategoryResponse `json:"category"`
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func moneyPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}

	rounded := money(*d)
	return &rounded
}

func toCategoryResponse(c *domain.Category) *CategoryResponse {
	if c == nil {
		return nil
	}

	return &CategoryResponse{
		CategoryID:   c.ID,
		CategoryName: c.Name,
	}
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:       p.ID,
		ProductName:     p.ProductName,
		ListPrice:       p.ListPrice.Round(2).InexactFloat64(),
		DiscountPercent: p.DiscountPercent.Round(2).InexactFloat64(),
		ProductCode:     p.ProductCode,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		DateAdded:       p.DateAdded,
		Category:        toCategoryResponse(p.Category),
	}
}

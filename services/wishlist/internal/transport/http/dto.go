package http

import (
	"time"

	"github.com/sakashimaa/accessory-shop/pkg/client"
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/service"
)

type AddItemRequest struct {
	CustomerID int64 `json:"customer_id" validate:"gt=0"`
	ProductID  int64 `json:"product_id" validate:"gt=0"`
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
	Category        *CategoryResponse `json:"category"`
}

type WishlistItemResponse struct {
	ID         int64            `json:"id"`
	CustomerID int64            `json:"customer_id"`
	ProductID  int64            `json:"product_id"`
	CreatedAt  time.Time        `json:"created_at"`
	Product    *ProductResponse `json:"product"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func toProductResponse(p *client.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	res := &ProductResponse{
		ProductID:       p.ProductID,
		ProductName:     p.ProductName,
		ListPrice:       p.ListPrice.Round(2).InexactFloat64(),
		DiscountPercent: p.DiscountPercent.Round(2).InexactFloat64(),
		ProductCode:     p.ProductCode,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
	}

	if p.Category != nil {
		res.Category = &CategoryResponse{
			CategoryID:   p.Category.CategoryID,
			CategoryName: p.Category.CategoryName,
		}
	}

	return res
}

func toWishlistItemResponse(e *service.Entry) WishlistItemResponse {
	return WishlistItemResponse{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		ProductID:  e.ProductID,
		CreatedAt:  e.CreatedAt,
		Product:    toProductResponse(e.Product),
	}
}

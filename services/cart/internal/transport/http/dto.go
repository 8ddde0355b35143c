package http

import (
	"time"

	"github.com/sakashimaa/accessory-shop/services/cart/internal/domain"
	"github.com/shopspring/decimal"
)

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Quantity  int32 `json:"quantity" validate:"gt=0"`
}

type UpdateItemRequest struct {
	Quantity int32 `json:"quantity" validate:"gt=0"`
}

type ProductInfoResponse struct {
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ListPrice       float64 `json:"list_price"`
	DiscountPercent float64 `json:"discount_percent"`
	ProductCode     string  `json:"product_code"`
}

type CartItemResponse struct {
	ID          int64                `json:"id"`
	CustomerID  int64                `json:"customer_id"`
	ProductID   int64                `json:"product_id"`
	Quantity    int32                `json:"quantity"`
	UpdatedAt   time.Time            `json:"updated_at"`
	ProductInfo *ProductInfoResponse `json:"product_info"`
	Subtotal    *float64             `json:"subtotal"`
}

type CartSummaryResponse struct {
	Items          []CartItemResponse `json:"items"`
	TotalItems     int64              `json:"total_items"`
	TotalAmount    float64            `json:"total_amount"`
	DiscountAmount float64            `json:"discount_amount"`
	FinalAmount    float64            `json:"final_amount"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func toCartItemResponse(item *domain.PricedItem) CartItemResponse {
	res := CartItemResponse{
		ID:         item.ID,
		CustomerID: item.CustomerID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		UpdatedAt:  item.UpdatedAt,
	}

	if item.Product != nil {
		res.ProductInfo = &ProductInfoResponse{
			ProductID:       item.Product.ProductID,
			ProductName:     item.Product.ProductName,
			ListPrice:       amount(item.Product.ListPrice),
			DiscountPercent: amount(item.Product.DiscountPercent),
			ProductCode:     item.Product.ProductCode,
		}
	}

	if item.Subtotal != nil {
		subtotal := amount(*item.Subtotal)
		res.Subtotal = &subtotal
	}

	return res
}

func toCartSummaryResponse(summary *domain.Summary) CartSummaryResponse {
	items := make([]CartItemResponse, 0, len(summary.Items))
	for i := range summary.Items {
		items = append(items, toCartItemResponse(&summary.Items[i]))
	}

	return CartSummaryResponse{
		Items:          items,
		TotalItems:     summary.TotalItems,
		TotalAmount:    amount(summary.TotalAmount),
		DiscountAmount: amount(summary.DiscountAmount),
		FinalAmount:    amount(summary.FinalAmount),
	}
}

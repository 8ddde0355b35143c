package http

import (
	"encoding/json"
	"time"

	"github.com/sakashimaa/accessory-shop/services/order/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	ProductID      int64           `json:"product_id" validate:"gt=0"`
	ItemPrice      decimal.Decimal `json:"item_price" validate:"gte=0"`
	DiscountAmount decimal.Decimal `json:"discount_amount" validate:"gte=0"`
	Quantity       int32           `json:"quantity" validate:"gt=0"`
}

type CreateOrderRequest struct {
	CustomerID       int64              `json:"customer_id" validate:"gt=0"`
	ShipAmount       decimal.Decimal    `json:"ship_amount" validate:"gte=0"`
	TaxAmount        decimal.Decimal    `json:"tax_amount" validate:"gte=0"`
	ShipAddressID    int64              `json:"ship_address_id" validate:"required"`
	CardType         string             `json:"card_type" validate:"required,max=50"`
	CardNumber       string             `json:"card_number" validate:"required,len=16"`
	CardExpires      string             `json:"card_expires" validate:"required,card_expires"`
	BillingAddressID int64              `json:"billing_address_id" validate:"required"`
	Items            []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type UpdateOrderRequest struct {
	ShipAmount    *decimal.Decimal `json:"ship_amount" validate:"omitempty,gte=0"`
	TaxAmount     *decimal.Decimal `json:"tax_amount" validate:"omitempty,gte=0"`
	ShipDate      NullableTime     `json:"ship_date"`
	ShipAddressID *int64           `json:"ship_address_id" validate:"omitempty,gt=0"`
}

// NullableTime tells an explicit null apart from an absent field.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

func (t *NullableTime) UnmarshalJSON(data []byte) error {
	t.Set = true
	if string(data) == "null" {
		t.Value = nil
		return nil
	}

	var v time.Time
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	t.Value = &v
	return nil
}

type OrderItemResponse struct {
	ItemID         int64   `json:"item_id"`
	ProductID      int64   `json:"product_id"`
	ItemPrice      float64 `json:"item_price"`
	DiscountAmount float64 `json:"discount_amount"`
	Quantity       int32   `json:"quantity"`
}

type OrderResponse struct {
	OrderID          int64               `json:"order_id"`
	CustomerID       int64               `json:"customer_id"`
	OrderDate        time.Time           `json:"order_date"`
	ShipAmount       float64             `json:"ship_amount"`
	TaxAmount        float64             `json:"tax_amount"`
	ShipDate         *time.Time          `json:"ship_date"`
	ShipAddressID    int64               `json:"ship_address_id"`
	CardType         string              `json:"card_type"`
	CardNumber       string              `json:"card_number"`
	CardExpires      string              `json:"card_expires"`
	BillingAddressID int64               `json:"billing_address_id"`
	Items            []OrderItemResponse `json:"items"`
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

func amount(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func (r *CreateOrderRequest) toDomain() *domain.Order {
	order := &domain.Order{
		CustomerID:       r.CustomerID,
		ShipAmount:       money(r.ShipAmount),
		TaxAmount:        money(r.TaxAmount),
		ShipAddressID:    r.ShipAddressID,
		CardType:         r.CardType,
		CardNumber:       r.CardNumber,
		CardExpires:      r.CardExpires,
		BillingAddressID: r.BillingAddressID,
		Items:            make([]domain.OrderItem, 0, len(r.Items)),
	}

	for _, item := range r.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:      item.ProductID,
			ItemPrice:      money(item.ItemPrice),
			DiscountAmount: money(item.DiscountAmount),
			Quantity:       item.Quantity,
		})
	}

	return order
}

func (r *UpdateOrderRequest) toDomain() *domain.OrderUpdate {
	return &domain.OrderUpdate{
		ShipAmount:    moneyPtr(r.ShipAmount),
		TaxAmount:     moneyPtr(r.TaxAmount),
		ShipDate:      r.ShipDate.Value,
		ShipDateSet:   r.ShipDate.Set,
		ShipAddressID: r.ShipAddressID,
	}
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ItemID:         item.ID,
			ProductID:      item.ProductID,
			ItemPrice:      amount(item.ItemPrice),
			DiscountAmount: amount(item.DiscountAmount),
			Quantity:       item.Quantity,
		})
	}

	return OrderResponse{
		OrderID:          o.ID,
		CustomerID:       o.CustomerID,
		OrderDate:        o.OrderDate,
		ShipAmount:       amount(o.ShipAmount),
		TaxAmount:        amount(o.TaxAmount),
		ShipDate:         o.ShipDate,
		ShipAddressID:    o.ShipAddressID,
		CardType:         o.CardType,
		CardNumber:       o.CardNumber,
		CardExpires:      o.CardExpires,
		BillingAddressID: o.BillingAddressID,
		Items:            items,
	}
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	res := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		res = append(res, toOrderResponse(&orders[i]))
	}

	return res
}

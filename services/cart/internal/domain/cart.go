package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type CartItem struct {
	ID         int64     `db:"id"`
	CustomerID int64     `db:"customer_id"`
	ProductID  int64     `db:"product_id"`
	Quantity   int32     `db:"quantity"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// ProductInfo is the catalog snapshot a cart row is priced against.
type ProductInfo struct {
	ProductID       int64
	ProductName     string
	ProductCode     string
	ListPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
}

// PricedItem is a cart row with its product snapshot. Product and Subtotal are nil
// when the catalog could not be reached for this row.
type PricedItem struct {
	CartItem
	Product  *ProductInfo
	Subtotal *decimal.Decimal
}

type Summary struct {
	Items          []PricedItem
	TotalItems     int64
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

// Subtotal is list_price × (1 − discount_percent/100) × quantity.
func Subtotal(listPrice, discountPercent decimal.Decimal, quantity int32) decimal.Decimal {
	return listPrice.
		Mul(hundred.Sub(discountPercent)).
		Div(hundred).
		Mul(decimal.NewFromInt32(quantity))
}

// LineDiscount is list_price × discount_percent/100 × quantity.
func LineDiscount(listPrice, discountPercent decimal.Decimal, quantity int32) decimal.Decimal {
	return listPrice.
		Mul(discountPercent).
		Div(hundred).
		Mul(decimal.NewFromInt32(quantity))
}

func Price(item CartItem, product *ProductInfo) PricedItem {
	priced := PricedItem{CartItem: item}
	if product == nil {
		return priced
	}

	subtotal := Subtotal(product.ListPrice, product.DiscountPercent, item.Quantity)
	priced.Product = product
	priced.Subtotal = &subtotal

	return priced
}

// Summarize totals the rows that carry a product snapshot; the others are left out entirely.
func Summarize(items []PricedItem) Summary {
	summary := Summary{
		Items:          make([]PricedItem, 0, len(items)),
		TotalAmount:    decimal.Zero,
		DiscountAmount: decimal.Zero,
	}

	for _, item := range items {
		if item.Product == nil {
			continue
		}

		qty := decimal.NewFromInt32(item.Quantity)

		summary.Items = append(summary.Items, item)
		summary.TotalItems += int64(item.Quantity)
		summary.TotalAmount = summary.TotalAmount.Add(item.Product.ListPrice.Mul(qty))
		summary.DiscountAmount = summary.DiscountAmount.Add(
			LineDiscount(item.Product.ListPrice, item.Product.DiscountPercent, item.Quantity),
		)
	}

	summary.FinalAmount = summary.TotalAmount.Sub(summary.DiscountAmount)

	return summary
}

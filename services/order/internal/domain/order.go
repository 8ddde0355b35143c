package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID               int64           `db:"order_id"`
	CustomerID       int64           `db:"customer_id"`
	OrderDate        time.Time       `db:"order_date"`
	ShipAmount       decimal.Decimal `db:"ship_amount"`
	TaxAmount        decimal.Decimal `db:"tax_amount"`
	ShipDate         *time.Time      `db:"ship_date"`
	ShipAddressID    int64           `db:"ship_address_id"`
	CardType         string          `db:"card_type"`
	CardNumber       string          `db:"card_number"`
	CardExpires      string          `db:"card_expires"`
	BillingAddressID int64           `db:"billing_address_id"`
	Items            []OrderItem
}

type OrderItem struct {
	ID             int64           `db:"item_id"`
	OrderID        int64           `db:"order_id"`
	ProductID      int64           `db:"product_id"`
	ItemPrice      decimal.Decimal `db:"item_price"`
	DiscountAmount decimal.Decimal `db:"discount_amount"`
	Quantity       int32           `db:"quantity"`
}

// OrderUpdate is the allow-list of header fields that may change after creation.
// ShipDateSet with a nil ShipDate clears the ship date.
type OrderUpdate struct {
	ShipAmount    *decimal.Decimal
	TaxAmount     *decimal.Decimal
	ShipDate      *time.Time
	ShipDateSet   bool
	ShipAddressID *int64
}

func (u *OrderUpdate) IsEmpty() bool {
	return u.ShipAmount == nil &&
		u.TaxAmount == nil &&
		!u.ShipDateSet &&
		u.ShipAddressID == nil
}

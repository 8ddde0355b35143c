package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64  `json:"category_id" db:"category_id"`
	Name string `json:"category_name" db:"category_name"`
}

type Product struct {
	ID              int64           `json:"product_id" db:"product_id"`
	CategoryID      int64           `json:"category_id" db:"category_id"`
	ProductCode     string          `json:"product_code" db:"product_code"`
	ProductName     string          `json:"product_name" db:"product_name"`
	Description     string          `json:"description" db:"description"`
	ListPrice       decimal.Decimal `json:"list_price" db:"list_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent" db:"discount_percent"`
	DateAdded       time.Time       `json:"date_added" db:"date_added"`
	Category        *Category       `json:"category,omitempty"`
}

// ProductFilter narrows a product listing. Zero values mean "no filter".
type ProductFilter struct {
	CategoryID *int64
	Search     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Limit      int64
	Offset     int64
}

type UpdateProductInput struct {
	CategoryID      *int64
	ProductCode     *string
	ProductName     *string
	Description     *string
	ListPrice       *decimal.Decimal
	DiscountPercent *decimal.Decimal
}

func (in *UpdateProductInput) IsEmpty() bool {
	return in.CategoryID == nil &&
		in.ProductCode == nil &&
		in.ProductName == nil &&
		in.Description == nil &&
		in.ListPrice == nil &&
		in.DiscountPercent == nil
}

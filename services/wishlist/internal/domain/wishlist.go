package domain

import "time"

type WishlistItem struct {
	ID         int64     `db:"id"`
	CustomerID int64     `db:"customer_id"`
	ProductID  int64     `db:"product_id"`
	CreatedAt  time.Time `db:"created_at"`
}

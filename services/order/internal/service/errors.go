package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCustomer rejects a write that references a customer the directory does not know.
	ErrInvalidCustomer = errors.New("customer not found")
	// ErrCustomerNotFound is returned by customer-scoped reads.
	ErrCustomerNotFound = errors.New("customer not found")
)

// ProductNotFoundError rejects an order line whose product the catalog does not know.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("Product %d not found", e.ProductID)
}

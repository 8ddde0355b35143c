package service

import "errors"

var (
	// ErrInvalidCustomer and ErrInvalidProduct reject an add that references something unknown.
	ErrInvalidCustomer = errors.New("customer not found")
	ErrInvalidProduct  = errors.New("product not found")

	ErrCustomerNotFound = errors.New("customer not found")
)

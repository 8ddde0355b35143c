package service

import "errors"

var (
	ErrInvalidCategory  = errors.New("category does not exist")
	ErrCodeExhausted    = errors.New("could not generate a unique product code")
	ErrInvalidPriceSpan = errors.New("min_price must not exceed max_price")
)

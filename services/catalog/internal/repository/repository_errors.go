package repository

import "errors"

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductCodeTaken     = errors.New("product code already exists")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryAlreadyExist = errors.New("category already exists")
)

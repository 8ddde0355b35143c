package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/repository"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/service"
)

func mapErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return fiber.StatusNotFound, "Product not found"
	case errors.Is(err, repository.ErrCategoryNotFound):
		return fiber.StatusNotFound, "Category not found"
	case errors.Is(err, service.ErrInvalidCategory):
		return fiber.StatusBadRequest, "Category not found"
	case errors.Is(err, repository.ErrCategoryAlreadyExist):
		return fiber.StatusBadRequest, "Category already exists"
	case errors.Is(err, repository.ErrProductCodeTaken):
		return fiber.StatusBadRequest, "Product code already exists"
	case errors.Is(err, service.ErrInvalidPriceSpan):
		return fiber.StatusBadRequest, "min_price must not exceed max_price"
	case errors.Is(err, service.ErrCodeExhausted):
		return fiber.StatusInternalServerError, "Could not generate a unique product code"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

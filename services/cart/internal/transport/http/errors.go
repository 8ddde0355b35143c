package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/pkg/client"
	"github.com/sakashimaa/accessory-shop/services/cart/internal/repository"
	"github.com/sakashimaa/accessory-shop/services/cart/internal/service"
)

func mapErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		return fiber.StatusNotFound, "Customer not found"
	case errors.Is(err, service.ErrProductNotFound):
		return fiber.StatusNotFound, "Product not found"
	case errors.Is(err, repository.ErrCartItemNotFound):
		return fiber.StatusNotFound, "Cart item not found"
	case errors.Is(err, client.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "Upstream service unavailable"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/pkg/client"
	"github.com/sakashimaa/accessory-shop/services/order/internal/repository"
	"github.com/sakashimaa/accessory-shop/services/order/internal/service"
)

func mapErrorCode(err error) (int, string) {
	var productErr *service.ProductNotFoundError

	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		return fiber.StatusNotFound, "Order not found"
	case errors.Is(err, service.ErrInvalidCustomer):
		return fiber.StatusBadRequest, "Customer not found"
	case errors.Is(err, service.ErrCustomerNotFound):
		return fiber.StatusNotFound, "Customer not found"
	case errors.As(err, &productErr):
		return fiber.StatusBadRequest, productErr.Error()
	case errors.Is(err, client.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "Upstream service unavailable"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/services/customer/internal/repository"
)

func mapErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrCustomerNotFound):
		return fiber.StatusNotFound, "Customer not found"
	case errors.Is(err, repository.ErrCustomerAlreadyExists):
		return fiber.StatusBadRequest, "Email already registered"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/pkg/client"
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/repository"
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/service"
)

func mapErrorCode(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidCustomer):
		return fiber.StatusBadRequest, "Customer not found"
	case errors.Is(err, service.ErrInvalidProduct):
		return fiber.StatusBadRequest, "Product not found"
	case errors.Is(err, repository.ErrAlreadyInWishlist):
		return fiber.StatusBadRequest, "Item already in wishlist"
	case errors.Is(err, service.ErrCustomerNotFound):
		return fiber.StatusNotFound, "Customer not found"
	case errors.Is(err, repository.ErrWishlistItemNotFound):
		return fiber.StatusNotFound, "Wishlist item not found"
	case errors.Is(err, repository.ErrNotInWishlist):
		return fiber.StatusNotFound, "Item not found in wishlist"
	case errors.Is(err, client.ErrUnavailable):
		return fiber.StatusServiceUnavailable, "Upstream service unavailable"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

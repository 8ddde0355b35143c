package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/service"
	"go.uber.org/zap"
)

type WishlistHandler struct {
	wishlist service.WishlistService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewWishlistHandler(wishlist service.WishlistService, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		validate: utils.NewValidator(),
		logger:   logger,
	}
}

func (h *WishlistHandler) fail(c *fiber.Ctx, err error) error {
	status, detail := mapErrorCode(err)

	if status >= fiber.StatusInternalServerError {
		mylogger.Error(
			c.UserContext(),
			h.logger,
			"Wishlist request failed",
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	return utils.Detail(c, status, detail)
}

func (h *WishlistHandler) invalid(c *fiber.Ctx, detail any) error {
	mylogger.Warn(
		c.UserContext(),
		h.logger,
		"invalid request",
		zap.String("path", c.Path()),
		zap.Any("detail", detail),
	)

	return utils.Detail(c, fiber.StatusBadRequest, detail)
}

func (h *WishlistHandler) AddItem(c *fiber.Ctx) error {
	req := new(AddItemRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	entry, err := h.wishlist.AddItem(c.UserContext(), req.CustomerID, req.ProductID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toWishlistItemResponse(entry))
}

func (h *WishlistHandler) GetCustomerWishlist(c *fiber.Ctx) error {
	customerID, err := utils.ParamID(c, "customer_id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	entries, err := h.wishlist.GetCustomerWishlist(c.UserContext(), customerID)
	if err != nil {
		return h.fail(c, err)
	}

	res := make([]WishlistItemResponse, 0, len(entries))
	for i := range entries {
		res = append(res, toWishlistItemResponse(&entries[i]))
	}

	return c.JSON(res)
}

func (h *WishlistHandler) RemoveItem(c *fiber.Ctx) error {
	itemID, err := utils.ParamID(c, "item_id")
	if err != nil {
		return h.invalid(c, "invalid item id")
	}

	if err := h.wishlist.RemoveItem(c.UserContext(), itemID); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WishlistHandler) RemoveByProduct(c *fiber.Ctx) error {
	customerID, err := utils.ParamID(c, "customer_id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	productID, err := utils.ParamID(c, "product_id")
	if err != nil {
		return h.invalid(c, "invalid product id")
	}

	if err := h.wishlist.RemoveByProduct(c.UserContext(), customerID, productID); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WishlistHandler) ClearWishlist(c *fiber.Ctx) error {
	customerID, err := utils.ParamID(c, "customer_id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	if err := h.wishlist.ClearWishlist(c.UserContext(), customerID); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *WishlistHandler) GetCount(c *fiber.Ctx) error {
	customerID, err := utils.ParamID(c, "customer_id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	count, err := h.wishlist.GetCount(c.UserContext(), customerID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(CountResponse{Count: count})
}

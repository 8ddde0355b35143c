package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"github.com/sakashimaa/accessory-shop/services/cart/internal/service"
	"go.uber.org/zap"
)

type CartHandler struct {
	cart     service.CartService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCartHandler(cart service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cart:     cart,
		validate: utils.NewValidator(),
		logger:   logger,
	}
}

func (h *CartHandler) fail(c *fiber.Ctx, err error) error {
	status, detail := mapErrorCode(err)

	if status >= fiber.StatusInternalServerError {
		mylogger.Error(
			c.UserContext(),
			h.logger,
			"Cart request failed",
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	return utils.Detail(c, status, detail)
}

func (h *CartHandler) invalid(c *fiber.Ctx, detail any) error {
	mylogger.Warn(
		c.UserContext(),
		h.logger,
		"invalid request",
		zap.String("path", c.Path()),
		zap.Any("detail", detail),
	)

	return utils.Detail(c, fiber.StatusBadRequest, detail)
}

func (h *CartHandler) customerID(c *fiber.Ctx) (int64, bool) {
	id, err := utils.ParamID(c, "customer_id")
	return id, err == nil
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.invalid(c, "invalid customer id")
	}

	req := new(AddItemRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	item, err := h.cart.AddItem(c.UserContext(), customerID, req.ProductID, req.Quantity)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toCartItemResponse(item))
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.invalid(c, "invalid customer id")
	}

	summary, err := h.cart.GetCart(c.UserContext(), customerID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toCartSummaryResponse(summary))
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.invalid(c, "invalid customer id")
	}

	itemID, err := utils.ParamID(c, "item_id")
	if err != nil {
		return h.invalid(c, "invalid item id")
	}

	req := new(UpdateItemRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	item, err := h.cart.UpdateItem(c.UserContext(), customerID, itemID, req.Quantity)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toCartItemResponse(item))
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.invalid(c, "invalid customer id")
	}

	itemID, err := utils.ParamID(c, "item_id")
	if err != nil {
		return h.invalid(c, "invalid item id")
	}

	if err := h.cart.RemoveItem(c.UserContext(), customerID, itemID); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.invalid(c, "invalid customer id")
	}

	if err := h.cart.ClearCart(c.UserContext(), customerID); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) GetCount(c *fiber.Ctx) error {
	customerID, ok := h.customerID(c)
	if !ok {
		return h.invalid(c, "invalid customer id")
	}

	count, err := h.cart.GetCount(c.UserContext(), customerID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(CountResponse{Count: count})
}

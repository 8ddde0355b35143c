package http

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"github.com/sakashimaa/accessory-shop/services/order/internal/service"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders   service.OrderService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewOrderHandler(orders service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		validate: utils.NewValidator(),
		logger:   logger,
	}
}

func (h *OrderHandler) fail(c *fiber.Ctx, err error) error {
	status, detail := mapErrorCode(err)

	if status >= fiber.StatusInternalServerError {
		mylogger.Error(
			c.UserContext(),
			h.logger,
			"Order request failed",
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}

	return utils.Detail(c, status, detail)
}

func (h *OrderHandler) invalid(c *fiber.Ctx, detail any) error {
	mylogger.Warn(
		c.UserContext(),
		h.logger,
		"invalid request",
		zap.String("path", c.Path()),
		zap.Any("detail", detail),
	)

	return utils.Detail(c, fiber.StatusBadRequest, detail)
}

func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	req := new(CreateOrderRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	order, err := h.orders.CreateOrder(c.UserContext(), req.toDomain())
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toOrderResponse(order))
}

func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	var customerID *int64

	if raw := c.Query("customer_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return h.invalid(c, "customer_id must be a positive integer")
		}
		customerID = &id
	}

	orders, err := h.orders.GetOrders(c.UserContext(), customerID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toOrderResponses(orders))
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid order id")
	}

	order, err := h.orders.GetOrder(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toOrderResponse(order))
}

func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid order id")
	}

	req := new(UpdateOrderRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	order, err := h.orders.UpdateOrder(c.UserContext(), id, req.toDomain())
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toOrderResponse(order))
}

func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid order id")
	}

	if err := h.orders.DeleteOrder(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *OrderHandler) GetCustomerOrders(c *fiber.Ctx) error {
	customerID, err := utils.ParamID(c, "customer_id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	orders, err := h.orders.GetCustomerOrders(c.UserContext(), customerID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toOrderResponses(orders))
}

package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"github.com/sakashimaa/accessory-shop/services/customer/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/customer/internal/service"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service  service.CustomerService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCustomerHandler(service service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: utils.NewValidator(),
		logger:   logger,
	}
}

func (h *CustomerHandler) fail(c *fiber.Ctx, err error) error {
	status, detail := mapErrorCode(err)

	if status >= fiber.StatusInternalServerError {
		mylogger.Error(
			c.UserContext(),
			h.logger,
			"Customer request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return utils.Detail(c, status, detail)
}

func (h *CustomerHandler) invalid(c *fiber.Ctx, detail any) error {
	mylogger.Warn(
		c.UserContext(),
		h.logger,
		"invalid request",
		zap.String("path", c.Path()),
		zap.Any("detail", detail),
	)

	return utils.Detail(c, fiber.StatusBadRequest, detail)
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	req := new(CreateCustomerRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	customer, err := h.service.Create(c.UserContext(), domain.CreateCustomerInput{
		EmailAddress:      req.EmailAddress,
		Password:          req.Password,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toCustomerResponse(customer))
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	limit, offset, err := utils.Pagination(c)
	if err != nil {
		return h.invalid(c, err.Error())
	}

	customers, err := h.service.List(c.UserContext(), limit, offset)
	if err != nil {
		return h.fail(c, err)
	}

	res := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		res = append(res, toCustomerResponse(&customers[i]))
	}

	return c.JSON(res)
}

func (h *CustomerHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Query("email_address")
	if email == "" {
		return h.invalid(c, "email_address is required")
	}

	customer, err := h.service.GetByEmail(c.UserContext(), email)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toCustomerResponse(customer))
}

func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	customer, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toCustomerResponse(customer))
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	req := new(UpdateCustomerRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	customer, err := h.service.Update(c.UserContext(), id, &domain.UpdateCustomerInput{
		EmailAddress:      req.EmailAddress,
		Password:          req.Password,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toCustomerResponse(customer))
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}

	mylogger.Info(
		c.UserContext(),
		h.logger,
		"customer deleted successfully",
		zap.Int64("customer_id", id),
	)

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CustomerHandler) AddAddress(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	req := new(CreateAddressRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	address, err := h.service.AddAddress(c.UserContext(), &domain.Address{
		CustomerID: id,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		ZipCode:    req.ZipCode,
		Phone:      req.Phone,
		Disabled:   req.Disabled,
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toAddressResponse(address))
}

func (h *CustomerHandler) ListAddresses(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid customer id")
	}

	addresses, err := h.service.ListAddresses(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}

	res := make([]AddressResponse, 0, len(addresses))
	for i := range addresses {
		res = append(res, toAddressResponse(&addresses[i]))
	}

	return c.JSON(res)
}

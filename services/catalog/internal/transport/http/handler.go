package http

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/pkg/mylogger"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	products   service.ProductService
	categories service.CategoryService
	validate   *validator.Validate
	logger     *zap.Logger
}

func NewCatalogHandler(
	products service.ProductService,
	categories service.CategoryService,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		products:   products,
		categories: categories,
		validate:   utils.NewValidator(),
		logger:     logger,
	}
}

func (h *CatalogHandler) fail(c *fiber.Ctx, err error) error {
	status, detail := mapErrorCode(err)

	if status >= fiber.StatusInternalServerError {
		mylogger.Error(
			c.UserContext(),
			h.logger,
			"Catalog request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return utils.Detail(c, status, detail)
}

func (h *CatalogHandler) invalid(c *fiber.Ctx, detail any) error {
	mylogger.Warn(
		c.UserContext(),
		h.logger,
		"invalid request",
		zap.String("path", c.Path()),
		zap.Any("detail", detail),
	)

	return utils.Detail(c, fiber.StatusBadRequest, detail)
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	req := new(CreateProductRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	product := &domain.Product{
		CategoryID:  req.CategoryID,
		ProductName: req.ProductName,
		Description: req.Description,
		ListPrice:   money(req.ListPrice),
	}
	if req.DiscountPercent != nil {
		product.DiscountPercent = money(*req.DiscountPercent)
	}

	created, err := h.products.Create(c.UserContext(), product)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toProductResponse(created))
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	limit, offset, err := utils.Pagination(c)
	if err != nil {
		return h.invalid(c, err.Error())
	}

	filter := domain.ProductFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return h.invalid(c, "category_id must be an integer")
		}
		filter.CategoryID = &id
	}

	if raw := c.Query("min_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return h.invalid(c, "min_price must be a non-negative number")
		}
		filter.MinPrice = &d
	}

	if raw := c.Query("max_price"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil || d.IsNegative() {
			return h.invalid(c, "max_price must be a non-negative number")
		}
		filter.MaxPrice = &d
	}

	products, err := h.products.List(c.UserContext(), filter)
	if err != nil {
		return h.fail(c, err)
	}

	res := make([]ProductResponse, 0, len(products))
	for i := range products {
		res = append(res, toProductResponse(&products[i]))
	}

	return c.JSON(res)
}

func (h *CatalogHandler) GetProduct(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid product id")
	}

	product, err := h.products.FindByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toProductResponse(product))
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid product id")
	}

	req := new(UpdateProductRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	product, err := h.products.Update(c.UserContext(), id, &domain.UpdateProductInput{
		CategoryID:      req.CategoryID,
		ProductCode:     req.ProductCode,
		ProductName:     req.ProductName,
		Description:     req.Description,
		ListPrice:       moneyPtr(req.ListPrice),
		DiscountPercent: moneyPtr(req.DiscountPercent),
	})
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toProductResponse(product))
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid product id")
	}

	if err := h.products.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	req := new(CreateCategoryRequest)
	if detail := utils.BindBody(c, h.validate, req); detail != nil {
		return h.invalid(c, detail)
	}

	category, err := h.categories.Create(c.UserContext(), req.CategoryName)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(category))
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}

	res := make([]*CategoryResponse, 0, len(categories))
	for i := range categories {
		res = append(res, toCategoryResponse(&categories[i]))
	}

	return c.JSON(res)
}

func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		return h.invalid(c, "invalid category id")
	}

	category, err := h.categories.FindByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(toCategoryResponse(category))
}

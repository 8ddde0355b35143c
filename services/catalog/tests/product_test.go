package tests

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/repository"
	"github.com/sakashimaa/accessory-shop/services/catalog/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var productCodeRe = regexp.MustCompile(`^[0-9A-F]{8}$`)

type productBody struct {
	ProductID       int64   `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ListPrice       float64 `json:"list_price"`
	DiscountPercent float64 `json:"discount_percent"`
	ProductCode     string  `json:"product_code"`
	Description     string  `json:"description"`
	CategoryID      int64   `json:"category_id"`
	DateAdded       string  `json:"date_added"`
	Category        *struct {
		CategoryID   int64  `json:"category_id"`
		CategoryName string `json:"category_name"`
	} `json:"category"`
}

func (s *IntegrationTestSuite) createProduct(categoryID int64, name string, price float64) productBody {
	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/products", fiber.Map{
		"category_id":      categoryID,
		"product_name":     name,
		"description":      name + " description",
		"list_price":       price,
		"discount_percent": 10,
	})
	s.Require().Equal(fiber.StatusCreated, status, string(raw))

	var body productBody
	s.DecodeJSON(raw, &body)

	return body
}

func (s *IntegrationTestSuite) TestCreateProduct_Success() {
	categoryID := s.createCategory("Cases")

	created := s.createProduct(categoryID, "Phone case", 100)

	s.Require().NotZero(created.ProductID)
	s.Require().Regexp(productCodeRe, created.ProductCode)
	s.Require().Equal(100.0, created.ListPrice)
	s.Require().Equal(10.0, created.DiscountPercent)
	s.Require().NotEmpty(created.DateAdded)
	s.Require().NotNil(created.Category)
	s.Require().Equal("Cases", created.Category.CategoryName)
}

func (s *IntegrationTestSuite) TestCreateProduct_UnknownCategory() {
	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/products", fiber.Map{
		"category_id":  999,
		"product_name": "Orphan",
		"list_price":   5,
	})
	s.Require().Equal(fiber.StatusBadRequest, status)
	s.Require().JSONEq(`{"detail":"Category not found"}`, string(raw))
	s.Require().Equal(0, s.CountRows("SELECT COUNT(*) FROM products"))
}

func (s *IntegrationTestSuite) TestCreateProduct_ValidationFailure() {
	categoryID := s.createCategory("Cases")

	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/products", fiber.Map{
		"category_id":      categoryID,
		"product_name":     "Free case",
		"list_price":       0,
		"discount_percent": 120,
	})
	s.Require().Equal(fiber.StatusBadRequest, status)

	var body struct {
		Detail map[string]string `json:"detail"`
	}
	s.DecodeJSON(raw, &body)
	s.Require().Contains(body.Detail, "list_price")
	s.Require().Contains(body.Detail, "discount_percent")
}

func (s *IntegrationTestSuite) TestCreateProduct_CodeCollisionRetries() {
	categoryID := s.createCategory("Cases")

	codes := []string{"AAAA0001", "AAAA0001", "AAAA0001", "BBBB0002"}
	next := 0
	generator := func() string {
		code := codes[next]
		next++
		return code
	}

	svc := service.NewProductServiceWithCodes(s.ProductRepo, s.CategoryRepo, generator, zap.NewNop())

	first, err := svc.Create(s.Ctx, &domain.Product{
		CategoryID:  categoryID,
		ProductName: "First",
		ListPrice:   decimal.NewFromInt(10),
	})
	s.Require().NoError(err)
	s.Require().Equal("AAAA0001", first.ProductCode)

	second, err := svc.Create(s.Ctx, &domain.Product{
		CategoryID:  categoryID,
		ProductName: "Second",
		ListPrice:   decimal.NewFromInt(10),
	})
	s.Require().NoError(err)
	s.Require().Equal("BBBB0002", second.ProductCode)
	s.Require().Equal(4, next)
}

func (s *IntegrationTestSuite) TestCreateProduct_CodeGenerationBounded() {
	categoryID := s.createCategory("Cases")

	calls := 0
	svc := service.NewProductServiceWithCodes(s.ProductRepo, s.CategoryRepo, func() string {
		calls++
		return "SAMECODE"
	}, zap.NewNop())

	_, err := svc.Create(s.Ctx, &domain.Product{CategoryID: categoryID, ProductName: "One", ListPrice: decimal.NewFromInt(1)})
	s.Require().NoError(err)

	_, err = svc.Create(s.Ctx, &domain.Product{CategoryID: categoryID, ProductName: "Two", ListPrice: decimal.NewFromInt(1)})
	s.Require().True(errors.Is(err, service.ErrCodeExhausted))
	s.Require().Equal(11, calls)
	s.Require().Equal(1, s.CountRows("SELECT COUNT(*) FROM products"))
}

func (s *IntegrationTestSuite) TestGetProduct_Success() {
	categoryID := s.createCategory("Chargers")
	created := s.createProduct(categoryID, "Wall charger", 25.5)

	status, raw := s.DoJSON(s.App, fiber.MethodGet, fmt.Sprintf("/products/%d", created.ProductID), nil)
	s.Require().Equal(fiber.StatusOK, status)

	var body productBody
	s.DecodeJSON(raw, &body)
	s.Require().Equal(created.ProductID, body.ProductID)
	s.Require().Equal(25.5, body.ListPrice)
	s.Require().Equal(categoryID, body.CategoryID)
	s.Require().Equal(categoryID, body.Category.CategoryID)
}

func (s *IntegrationTestSuite) TestGetProduct_NotFound() {
	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/products/999", nil)
	s.Require().Equal(fiber.StatusNotFound, status)
	s.Require().JSONEq(`{"detail":"Product not found"}`, string(raw))
}

func (s *IntegrationTestSuite) TestGetProduct_IsCached() {
	categoryID := s.createCategory("Chargers")
	created := s.createProduct(categoryID, "Wall charger", 25.5)

	_, err := s.CachedProductService.FindByID(s.Ctx, created.ProductID)
	s.Require().NoError(err)

	key := fmt.Sprintf("product:%d", created.ProductID)
	val, err := s.RedisClient.Get(s.Ctx, key).Result()
	s.Require().NoError(err)
	s.Require().NotEmpty(val)

	ttl, err := s.RedisClient.TTL(s.Ctx, key).Result()
	s.Require().NoError(err)
	s.Require().Greater(ttl.Minutes(), 9.0)

	_, err = s.DbPool.Exec(s.Ctx, "UPDATE products SET product_name = 'changed behind cache' WHERE product_id = $1", created.ProductID)
	s.Require().NoError(err)

	cached, err := s.CachedProductService.FindByID(s.Ctx, created.ProductID)
	s.Require().NoError(err)
	s.Require().Equal("Wall charger", cached.ProductName)
	s.Require().True(decimal.RequireFromString("25.5").Equal(cached.ListPrice))
}

func (s *IntegrationTestSuite) TestUpdateProduct_InvalidatesCache() {
	categoryID := s.createCategory("Chargers")
	created := s.createProduct(categoryID, "Wall charger", 25.5)

	_, err := s.CachedProductService.FindByID(s.Ctx, created.ProductID)
	s.Require().NoError(err)

	status, raw := s.DoJSON(s.App, fiber.MethodPut, fmt.Sprintf("/products/%d", created.ProductID), fiber.Map{
		"list_price": 30,
	})
	s.Require().Equal(fiber.StatusOK, status, string(raw))

	var body productBody
	s.DecodeJSON(raw, &body)
	s.Require().Equal(30.0, body.ListPrice)
	s.Require().Equal("Wall charger", body.ProductName)

	exists, err := s.RedisClient.Exists(s.Ctx, fmt.Sprintf("product:%d", created.ProductID)).Result()
	s.Require().NoError(err)
	s.Require().Zero(exists)

	status, raw = s.DoJSON(s.App, fiber.MethodGet, fmt.Sprintf("/products/%d", created.ProductID), nil)
	s.Require().Equal(fiber.StatusOK, status)
	s.DecodeJSON(raw, &body)
	s.Require().Equal(30.0, body.ListPrice)
}

func (s *IntegrationTestSuite) TestUpdateProduct_UnknownCategory() {
	categoryID := s.createCategory("Chargers")
	created := s.createProduct(categoryID, "Wall charger", 25.5)

	status, raw := s.DoJSON(s.App, fiber.MethodPut, fmt.Sprintf("/products/%d", created.ProductID), fiber.Map{
		"category_id": 999,
	})
	s.Require().Equal(fiber.StatusBadRequest, status)
	s.Require().JSONEq(`{"detail":"Category not found"}`, string(raw))
}

func (s *IntegrationTestSuite) TestUpdateProduct_DuplicateCode() {
	categoryID := s.createCategory("Chargers")
	first := s.createProduct(categoryID, "Wall charger", 25.5)
	second := s.createProduct(categoryID, "Car charger", 15)

	status, raw := s.DoJSON(s.App, fiber.MethodPut, fmt.Sprintf("/products/%d", second.ProductID), fiber.Map{
		"product_code": first.ProductCode,
	})
	s.Require().Equal(fiber.StatusBadRequest, status)
	s.Require().JSONEq(`{"detail":"Product code already exists"}`, string(raw))
}

func (s *IntegrationTestSuite) TestDeleteProduct() {
	categoryID := s.createCategory("Chargers")
	created := s.createProduct(categoryID, "Wall charger", 25.5)

	_, err := s.CachedProductService.FindByID(s.Ctx, created.ProductID)
	s.Require().NoError(err)

	status, _ := s.DoJSON(s.App, fiber.MethodDelete, fmt.Sprintf("/products/%d", created.ProductID), nil)
	s.Require().Equal(fiber.StatusNoContent, status)

	_, err = s.CachedProductService.FindByID(s.Ctx, created.ProductID)
	s.Require().ErrorIs(err, repository.ErrProductNotFound)

	status, _ = s.DoJSON(s.App, fiber.MethodDelete, fmt.Sprintf("/products/%d", created.ProductID), nil)
	s.Require().Equal(fiber.StatusNotFound, status)
}

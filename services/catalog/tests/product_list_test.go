package tests

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (s *IntegrationTestSuite) listProducts(query string) []productBody {
	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/products"+query, nil)
	s.Require().Equal(fiber.StatusOK, status, string(raw))

	var body []productBody
	s.DecodeJSON(raw, &body)

	return body
}

func (s *IntegrationTestSuite) TestListProducts_Filters() {
	cases := s.createCategory("Cases")
	chargers := s.createCategory("Chargers")

	s.createProduct(cases, "Leather case", 40)
	s.createProduct(cases, "Silicone case", 15)
	s.createProduct(chargers, "Wall charger", 25)

	s.Require().Len(s.listProducts(""), 3)
	s.Require().Len(s.listProducts(fmt.Sprintf("?category_id=%d", cases)), 2)
	s.Require().Len(s.listProducts("?search=charger"), 1)
	s.Require().Len(s.listProducts("?search=LEATHER%20CASE%20DESCRIPTION"), 1)
	s.Require().Len(s.listProducts("?min_price=20"), 2)
	s.Require().Len(s.listProducts("?max_price=25"), 2)
	s.Require().Len(s.listProducts("?min_price=20&max_price=30"), 1)
	s.Require().Len(s.listProducts(fmt.Sprintf("?category_id=%d&max_price=20", cases)), 1)
}

func (s *IntegrationTestSuite) TestListProducts_Pagination() {
	categoryID := s.createCategory("Cases")
	for i := 0; i < 5; i++ {
		s.createProduct(categoryID, fmt.Sprintf("Case %d", i), 10)
	}

	page := s.listProducts("?skip=2&limit=2")
	s.Require().Len(page, 2)
	s.Require().Equal("Case 2", page[0].ProductName)
	s.Require().Equal("Case 3", page[1].ProductName)

	status, _ := s.DoJSON(s.App, fiber.MethodGet, "/products?limit=1001", nil)
	s.Require().Equal(fiber.StatusBadRequest, status)

	status, _ = s.DoJSON(s.App, fiber.MethodGet, "/products?skip=-1", nil)
	s.Require().Equal(fiber.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestListProducts_InvalidPriceSpan() {
	status, _ := s.DoJSON(s.App, fiber.MethodGet, "/products?min_price=50&max_price=10", nil)
	s.Require().Equal(fiber.StatusBadRequest, status)
}

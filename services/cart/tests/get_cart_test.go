package tests

import (
	"github.com/gofiber/fiber/v2"
)

func (s *IntegrationTestSuite) TestGetCart_Totals() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.Downstream.AddProduct(4, "Cable", "15.00", "0")

	s.addItem(7, 3, 2)
	s.addItem(7, 4, 3)

	summary := s.getCart(7)

	s.Require().Len(summary.Items, 2)
	s.Require().Equal(int64(3), summary.Items[0].ProductID)
	s.Require().Equal(int64(4), summary.Items[1].ProductID)
	s.Require().Equal(int64(5), summary.TotalItems)
	s.Require().Equal(245.0, summary.TotalAmount)
	s.Require().Equal(20.0, summary.DiscountAmount)
	s.Require().Equal(225.0, summary.FinalAmount)
	s.Require().InDelta(summary.TotalAmount-summary.DiscountAmount, summary.FinalAmount, 0.001)
}

func (s *IntegrationTestSuite) TestGetCart_SkipsFailedLookups() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.Downstream.AddProduct(4, "Cable", "15.00", "0")
	s.Downstream.AddProduct(5, "Stand", "30.00", "50")

	s.addItem(7, 3, 1)
	s.addItem(7, 4, 2)
	s.addItem(7, 5, 1)

	s.Downstream.RemoveProduct(4)
	s.Downstream.BreakProduct(5)

	summary := s.getCart(7)

	s.Require().Len(summary.Items, 1)
	s.Require().Equal(int64(3), summary.Items[0].ProductID)
	s.Require().Equal(int64(1), summary.TotalItems)
	s.Require().Equal(100.0, summary.TotalAmount)
	s.Require().Equal(10.0, summary.DiscountAmount)
	s.Require().Equal(90.0, summary.FinalAmount)

	s.Require().Equal(3, s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, 7))
}

func (s *IntegrationTestSuite) TestGetCart_Empty() {
	s.Downstream.AddCustomer(7)

	summary := s.getCart(7)
	s.Require().NotNil(summary.Items)
	s.Require().Empty(summary.Items)
	s.Require().Zero(summary.TotalItems)
	s.Require().Zero(summary.FinalAmount)
}

func (s *IntegrationTestSuite) TestGetCart_UnknownCustomer() {
	status, _ := s.DoJSON(s.App, fiber.MethodGet, cartPath(8, ""), nil)
	s.Require().Equal(fiber.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestGetCart_NoSideEffects() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.addItem(7, 3, 2)

	first := s.getCart(7)
	second := s.getCart(7)

	s.Require().Equal(first, second)
	s.Require().Equal(int32(2), second.Items[0].Quantity)
	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM cart_items`))
}

func (s *IntegrationTestSuite) TestGetCount() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.Downstream.AddProduct(4, "Cable", "15.00", "0")
	s.addItem(7, 3, 2)
	s.addItem(7, 4, 1)

	status, raw := s.DoJSON(s.App, fiber.MethodGet, cartPath(7, "/count"), nil)
	s.Require().Equal(fiber.StatusOK, status)

	var res map[string]int64
	s.DecodeJSON(raw, &res)
	s.Require().Equal(int64(2), res["count"])

	status, _ = s.DoJSON(s.App, fiber.MethodGet, cartPath(99, "/count"), nil)
	s.Require().Equal(fiber.StatusNotFound, status)
}

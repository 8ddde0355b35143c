package tests

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/services/order/internal/transport/http"
)

func (s *IntegrationTestSuite) TestGetOrder() {
	created := s.createOrder(7, 1)

	status, raw := s.DoJSON(s.App, fiber.MethodGet, fmt.Sprintf("/orders/%d", created.OrderID), nil)
	s.Require().Equal(fiber.StatusOK, status)

	var order http.OrderResponse
	s.DecodeJSON(raw, &order)
	s.Require().Equal(created.OrderID, order.OrderID)
	s.Require().Equal("4111111111111111", order.CardNumber)
	s.Require().Equal("12/29", order.CardExpires)
	s.Require().Len(order.Items, 1)
}

func (s *IntegrationTestSuite) TestGetOrder_NotFound() {
	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/orders/12345", nil)
	s.Require().Equal(fiber.StatusNotFound, status)

	var body map[string]string
	s.DecodeJSON(raw, &body)
	s.Require().Equal("Order not found", body["detail"])
}

func (s *IntegrationTestSuite) TestGetOrder_InvalidID() {
	status, _ := s.DoJSON(s.App, fiber.MethodGet, "/orders/abc", nil)
	s.Require().Equal(fiber.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestGetOrders_FilterByCustomer() {
	s.createOrder(7, 1)
	s.createOrder(7, 2)
	s.createOrder(8, 3)

	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/orders", nil)
	s.Require().Equal(fiber.StatusOK, status)

	var all []http.OrderResponse
	s.DecodeJSON(raw, &all)
	s.Require().Len(all, 3)
	for _, o := range all {
		s.Require().Len(o.Items, 1)
	}

	status, raw = s.DoJSON(s.App, fiber.MethodGet, "/orders?customer_id=7", nil)
	s.Require().Equal(fiber.StatusOK, status)

	var filtered []http.OrderResponse
	s.DecodeJSON(raw, &filtered)
	s.Require().Len(filtered, 2)
	for _, o := range filtered {
		s.Require().Equal(int64(7), o.CustomerID)
	}

	status, _ = s.DoJSON(s.App, fiber.MethodGet, "/orders?customer_id=x", nil)
	s.Require().Equal(fiber.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestGetCustomerOrders() {
	s.createOrder(7, 1)
	s.createOrder(8, 2)

	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/orders/customer/7/orders", nil)
	s.Require().Equal(fiber.StatusOK, status)

	var orders []http.OrderResponse
	s.DecodeJSON(raw, &orders)
	s.Require().Len(orders, 1)
	s.Require().Equal(int64(7), orders[0].CustomerID)
}

func (s *IntegrationTestSuite) TestGetCustomerOrders_UnknownCustomer() {
	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/orders/customer/99/orders", nil)
	s.Require().Equal(fiber.StatusNotFound, status)

	var body map[string]string
	s.DecodeJSON(raw, &body)
	s.Require().Equal("Customer not found", body["detail"])
}

func (s *IntegrationTestSuite) TestGetOrders_NoSideEffects() {
	s.createOrder(7, 1)
	before := s.CountRows(`SELECT COUNT(*) FROM outbox`)

	for i := 0; i < 3; i++ {
		status, _ := s.DoJSON(s.App, fiber.MethodGet, "/orders", nil)
		s.Require().Equal(fiber.StatusOK, status)
	}

	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM orders`))
	s.Require().Equal(before, s.CountRows(`SELECT COUNT(*) FROM outbox`))
}

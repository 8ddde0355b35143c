package tests

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/services/cart/internal/transport/http"
)

func (s *IntegrationTestSuite) TestUpdateItem() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	added := s.addItem(7, 3, 2)

	status, raw := s.DoJSON(s.App, fiber.MethodPut, cartPath(7, fmt.Sprintf("/items/%d", added.ID)), map[string]any{
		"quantity": 5,
	})
	s.Require().Equal(fiber.StatusOK, status, string(raw))

	var item http.CartItemResponse
	s.DecodeJSON(raw, &item)
	s.Require().Equal(int32(5), item.Quantity)
	s.Require().Equal(450.0, *item.Subtotal)
}

func (s *IntegrationTestSuite) TestUpdateItem_ProductGoneStillUpdates() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	added := s.addItem(7, 3, 2)

	s.Downstream.RemoveProduct(3)

	status, raw := s.DoJSON(s.App, fiber.MethodPut, cartPath(7, fmt.Sprintf("/items/%d", added.ID)), map[string]any{
		"quantity": 4,
	})
	s.Require().Equal(fiber.StatusOK, status, string(raw))

	var item http.CartItemResponse
	s.DecodeJSON(raw, &item)
	s.Require().Equal(int32(4), item.Quantity)
	s.Require().Nil(item.ProductInfo)
	s.Require().Nil(item.Subtotal)
}

func (s *IntegrationTestSuite) TestUpdateItem_OtherCustomersItem() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	added := s.addItem(7, 3, 2)

	status, raw := s.DoJSON(s.App, fiber.MethodPut, cartPath(8, fmt.Sprintf("/items/%d", added.ID)), map[string]any{
		"quantity": 4,
	})
	s.Require().Equal(fiber.StatusNotFound, status)

	var body map[string]string
	s.DecodeJSON(raw, &body)
	s.Require().Equal("Cart item not found", body["detail"])
}

func (s *IntegrationTestSuite) TestUpdateItem_ZeroQuantity() {
	status, _ := s.DoJSON(s.App, fiber.MethodPut, cartPath(7, "/items/1"), map[string]any{"quantity": 0})
	s.Require().Equal(fiber.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestRemoveItem() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	added := s.addItem(7, 3, 2)

	path := cartPath(7, fmt.Sprintf("/items/%d", added.ID))

	status, _ := s.DoJSON(s.App, fiber.MethodDelete, path, nil)
	s.Require().Equal(fiber.StatusNoContent, status)

	status, _ = s.DoJSON(s.App, fiber.MethodDelete, path, nil)
	s.Require().Equal(fiber.StatusNotFound, status)

	s.Require().Equal(0, s.CountRows(`SELECT COUNT(*) FROM cart_items`))
}

func (s *IntegrationTestSuite) TestClearCart() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddCustomer(8)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.Downstream.AddProduct(4, "Cable", "15.00", "0")
	s.addItem(7, 3, 1)
	s.addItem(7, 4, 1)
	s.addItem(8, 3, 1)

	status, _ := s.DoJSON(s.App, fiber.MethodDelete, cartPath(7, ""), nil)
	s.Require().Equal(fiber.StatusNoContent, status)

	s.Require().Equal(0, s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, 7))
	s.Require().Equal(1, s.CountRows(`SELECT COUNT(*) FROM cart_items WHERE customer_id = $1`, 8))
}

func (s *IntegrationTestSuite) TestClearCart_UnknownCustomer() {
	status, _ := s.DoJSON(s.App, fiber.MethodDelete, cartPath(99, ""), nil)
	s.Require().Equal(fiber.StatusNotFound, status)
}

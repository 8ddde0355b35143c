package tests

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	eventDomain "github.com/sakashimaa/accessory-shop/pkg/domain"
	"github.com/sakashimaa/accessory-shop/services/wishlist/internal/transport/http"
)

func (s *IntegrationTestSuite) TestAddItem_Success() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")

	item := s.mustAdd(7, 3)

	s.Require().NotZero(item.ID)
	s.Require().Equal(int64(7), item.CustomerID)
	s.Require().Equal(int64(3), item.ProductID)
	s.Require().WithinDuration(time.Now(), item.CreatedAt, time.Minute)
	s.Require().NotNil(item.Product)
	s.Require().Equal("Phone case", item.Product.ProductName)
	s.Require().Equal(100.0, item.Product.ListPrice)
	s.Require().NotNil(item.Product.Category)
}

func (s *IntegrationTestSuite) TestAddItem_Duplicate() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")

	s.mustAdd(7, 3)

	status, raw := s.add(7, 3)
	s.Require().Equal(fiber.StatusBadRequest, status)
	s.Require().Equal("Item already in wishlist", s.detail(raw))
	s.Require().Equal(int64(1), s.count(7))
}

func (s *IntegrationTestSuite) TestAddItem_UnknownCustomer() {
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")

	status, raw := s.add(7, 3)
	s.Require().Equal(fiber.StatusBadRequest, status)
	s.Require().Equal("Customer not found", s.detail(raw))
	s.Require().Zero(s.count(7))
}

func (s *IntegrationTestSuite) TestAddItem_UnknownProduct() {
	s.Downstream.AddCustomer(7)

	status, raw := s.add(7, 999)
	s.Require().Equal(fiber.StatusBadRequest, status)
	s.Require().Equal("Product not found", s.detail(raw))
	s.Require().Zero(s.count(7))
}

func (s *IntegrationTestSuite) TestAddItem_UpstreamDown() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.Downstream.SetDown(true)

	status, _ := s.add(7, 3)
	s.Require().Equal(fiber.StatusServiceUnavailable, status)
	s.Require().Zero(s.count(7))
}

func (s *IntegrationTestSuite) TestAddItem_Validation() {
	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/wishlist", map[string]any{"customer_id": 7})
	s.Require().Equal(fiber.StatusBadRequest, status, string(raw))

	var body struct {
		Detail map[string]string `json:"detail"`
	}
	s.DecodeJSON(raw, &body)
	s.Require().Contains(body.Detail, "product_id")
}

func (s *IntegrationTestSuite) TestGetCustomerWishlist_KeepsUnfetchableItems() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.Downstream.AddProduct(4, "Cable", "15.00", "0")
	s.Downstream.AddProduct(5, "Stand", "30.00", "0")

	s.mustAdd(7, 3)
	s.mustAdd(7, 4)
	s.mustAdd(7, 5)

	s.Downstream.RemoveProduct(4)
	s.Downstream.BreakProduct(5)

	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/wishlist/customer/7", nil)
	s.Require().Equal(fiber.StatusOK, status)

	var items []http.WishlistItemResponse
	s.DecodeJSON(raw, &items)

	s.Require().Len(items, 3)
	s.Require().Equal(int64(3), items[0].ProductID)
	s.Require().NotNil(items[0].Product)
	s.Require().Equal(int64(4), items[1].ProductID)
	s.Require().Nil(items[1].Product)
	s.Require().Equal(int64(5), items[2].ProductID)
	s.Require().Nil(items[2].Product)
}

func (s *IntegrationTestSuite) TestGetCustomerWishlist_UnknownCustomer() {
	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/wishlist/customer/7", nil)
	s.Require().Equal(fiber.StatusNotFound, status)
	s.Require().Equal("Customer not found", s.detail(raw))
}

func (s *IntegrationTestSuite) TestGetCustomerWishlist_NoSideEffects() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.mustAdd(7, 3)

	_, first := s.DoJSON(s.App, fiber.MethodGet, "/wishlist/customer/7", nil)
	_, second := s.DoJSON(s.App, fiber.MethodGet, "/wishlist/customer/7", nil)

	s.Require().JSONEq(string(first), string(second))
	s.Require().Equal(int64(1), s.count(7))
}

func (s *IntegrationTestSuite) TestRemoveItem() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	item := s.mustAdd(7, 3)

	status, _ := s.DoJSON(s.App, fiber.MethodDelete, fmt.Sprintf("/wishlist/%d", item.ID), nil)
	s.Require().Equal(fiber.StatusNoContent, status)

	status, raw := s.DoJSON(s.App, fiber.MethodDelete, fmt.Sprintf("/wishlist/%d", item.ID), nil)
	s.Require().Equal(fiber.StatusNotFound, status)
	s.Require().Equal("Wishlist item not found", s.detail(raw))
}

func (s *IntegrationTestSuite) TestRemoveByProduct() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.mustAdd(7, 3)

	status, _ := s.DoJSON(s.App, fiber.MethodDelete, "/wishlist/customer/7/product/3", nil)
	s.Require().Equal(fiber.StatusNoContent, status)
	s.Require().Zero(s.count(7))

	status, raw := s.DoJSON(s.App, fiber.MethodDelete, "/wishlist/customer/7/product/3", nil)
	s.Require().Equal(fiber.StatusNotFound, status)
	s.Require().Equal("Item not found in wishlist", s.detail(raw))
}

func (s *IntegrationTestSuite) TestClearAndCount() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddCustomer(8)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")
	s.Downstream.AddProduct(4, "Cable", "15.00", "0")
	s.mustAdd(7, 3)
	s.mustAdd(7, 4)
	s.mustAdd(8, 3)

	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/wishlist/customer/7/count", nil)
	s.Require().Equal(fiber.StatusOK, status)

	var res http.CountResponse
	s.DecodeJSON(raw, &res)
	s.Require().Equal(int64(2), res.Count)

	status, _ = s.DoJSON(s.App, fiber.MethodDelete, "/wishlist/customer/7", nil)
	s.Require().Equal(fiber.StatusNoContent, status)

	s.Require().Zero(s.count(7))
	s.Require().Equal(int64(1), s.count(8))

	status, _ = s.DoJSON(s.App, fiber.MethodGet, "/wishlist/customer/99/count", nil)
	s.Require().Equal(fiber.StatusNotFound, status)

	status, _ = s.DoJSON(s.App, fiber.MethodDelete, "/wishlist/customer/99", nil)
	s.Require().Equal(fiber.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestHandleOrderCreated() {
	for _, productID := range []int64{3, 4} {
		_, err := s.WishlistRepo.Add(s.Ctx, 7, productID)
		s.Require().NoError(err)
	}

	event := &eventDomain.OrderCreatedEvent{
		OrderID:    10,
		CustomerID: 7,
		OrderDate:  time.Now().UTC(),
		Items:      []eventDomain.OrderedItem{{ProductID: 3, Quantity: 1}},
	}

	s.Require().NoError(s.WishlistService.HandleOrderCreated(s.Ctx, 5, event))
	s.Require().Equal(int64(1), s.count(7))

	_, err := s.WishlistRepo.Add(s.Ctx, 7, 3)
	s.Require().NoError(err)

	s.Require().NoError(s.WishlistService.HandleOrderCreated(s.Ctx, 5, event))
	s.Require().Equal(int64(2), s.count(7))
}

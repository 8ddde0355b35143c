package tests

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

func (s *IntegrationTestSuite) TestAddAddress_Success() {
	customer := s.createCustomer("ada@example.com")

	status, raw := s.DoJSON(s.App, fiber.MethodPost, fmt.Sprintf("/customers/%d/addresses", customer.CustomerID), fiber.Map{
		"line1":    "12 Analytical St",
		"city":     "London",
		"state":    "LD",
		"zip_code": "12345",
		"phone":    "5551234567",
	})
	s.Require().Equal(fiber.StatusCreated, status, string(raw))

	status, raw = s.DoJSON(s.App, fiber.MethodGet, fmt.Sprintf("/customers/%d/addresses", customer.CustomerID), nil)
	s.Require().Equal(fiber.StatusOK, status)

	var addresses []struct {
		AddressID  int64  `json:"address_id"`
		CustomerID int64  `json:"customer_id"`
		City       string `json:"city"`
	}
	s.DecodeJSON(raw, &addresses)
	s.Require().Len(addresses, 1)
	s.Require().Equal(customer.CustomerID, addresses[0].CustomerID)
	s.Require().Equal("London", addresses[0].City)
}

func (s *IntegrationTestSuite) TestAddAddress_CustomerNotFound() {
	status, _ := s.DoJSON(s.App, fiber.MethodPost, "/customers/999/addresses", fiber.Map{
		"line1":    "12 Analytical St",
		"city":     "London",
		"state":    "LD",
		"zip_code": "12345",
		"phone":    "5551234567",
	})
	s.Require().Equal(fiber.StatusNotFound, status)
	s.Require().Equal(0, s.CountRows("SELECT COUNT(*) FROM addresses"))
}

func (s *IntegrationTestSuite) TestDeleteCustomer_RemovesAddresses() {
	customer := s.createCustomer("ada@example.com")

	status, _ := s.DoJSON(s.App, fiber.MethodPost, fmt.Sprintf("/customers/%d/addresses", customer.CustomerID), fiber.Map{
		"line1":    "12 Analytical St",
		"city":     "London",
		"state":    "LD",
		"zip_code": "12345",
		"phone":    "5551234567",
	})
	s.Require().Equal(fiber.StatusCreated, status)

	status, _ = s.DoJSON(s.App, fiber.MethodDelete, fmt.Sprintf("/customers/%d", customer.CustomerID), nil)
	s.Require().Equal(fiber.StatusNoContent, status)

	s.Require().Equal(0, s.CountRows("SELECT COUNT(*) FROM addresses"))
}

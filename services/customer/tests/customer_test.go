package tests

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/services/customer/internal/domain"
	"github.com/sakashimaa/accessory-shop/services/customer/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type customerBody struct {
	CustomerID   int64  `json:"customer_id"`
	EmailAddress string `json:"email_address"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

func (s *IntegrationTestSuite) createCustomer(email string) customerBody {
	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/customers", fiber.Map{
		"email_address": email,
		"password":      "secret123qwe",
		"first_name":    "Ada",
		"last_name":     "Lovelace",
	})
	s.Require().Equal(fiber.StatusCreated, status, string(raw))

	var body customerBody
	s.DecodeJSON(raw, &body)

	return body
}

func (s *IntegrationTestSuite) TestCreateCustomer_Success() {
	created := s.createCustomer("ada@example.com")

	s.Require().NotZero(created.CustomerID)
	s.Require().Equal("ada@example.com", created.EmailAddress)

	var hash string
	err := s.DbPool.QueryRow(s.Ctx, "SELECT password FROM customers WHERE customer_id = $1", created.CustomerID).
		Scan(&hash)
	s.Require().NoError(err)
	s.Require().NotEqual("secret123qwe", hash)
	s.Require().NoError(bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret123qwe")))
}

func (s *IntegrationTestSuite) TestCreateCustomer_ResponseHasNoPassword() {
	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/customers", fiber.Map{
		"email_address": "grace@example.com",
		"password":      "secret123qwe",
		"first_name":    "Grace",
		"last_name":     "Hopper",
	})
	s.Require().Equal(fiber.StatusCreated, status)

	var body map[string]any
	s.DecodeJSON(raw, &body)
	s.Require().NotContains(body, "password")
}

func (s *IntegrationTestSuite) TestCreateCustomer_DuplicateEmail() {
	s.createCustomer("ada@example.com")

	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/customers", fiber.Map{
		"email_address": "ada@example.com",
		"password":      "another123",
		"first_name":    "Ada",
		"last_name":     "Byron",
	})
	s.Require().Equal(fiber.StatusBadRequest, status)
	s.Require().JSONEq(`{"detail":"Email already registered"}`, string(raw))

	s.Require().Equal(1, s.CountRows("SELECT COUNT(*) FROM customers"))
}

func (s *IntegrationTestSuite) TestCreateCustomer_ValidationFailure() {
	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/customers", fiber.Map{
		"email_address": "not-an-email",
		"password":      "short",
		"first_name":    "Ada",
		"last_name":     "Lovelace",
	})
	s.Require().Equal(fiber.StatusBadRequest, status)

	var body struct {
		Detail map[string]string `json:"detail"`
	}
	s.DecodeJSON(raw, &body)
	s.Require().Contains(body.Detail, "email_address")
	s.Require().Contains(body.Detail, "password")

	s.Require().Equal(0, s.CountRows("SELECT COUNT(*) FROM customers"))
}

func (s *IntegrationTestSuite) TestGetCustomer_Success() {
	created := s.createCustomer("ada@example.com")

	status, raw := s.DoJSON(s.App, fiber.MethodGet, fmt.Sprintf("/customers/%d", created.CustomerID), nil)
	s.Require().Equal(fiber.StatusOK, status)

	var body customerBody
	s.DecodeJSON(raw, &body)
	s.Require().Equal(created, body)
}

func (s *IntegrationTestSuite) TestGetCustomer_NotFound() {
	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/customers/999", nil)
	s.Require().Equal(fiber.StatusNotFound, status)
	s.Require().JSONEq(`{"detail":"Customer not found"}`, string(raw))
}

func (s *IntegrationTestSuite) TestGetCustomer_InvalidID() {
	status, _ := s.DoJSON(s.App, fiber.MethodGet, "/customers/abc", nil)
	s.Require().Equal(fiber.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestGetCustomerByEmail() {
	created := s.createCustomer("ada@example.com")

	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/customers/by-email?email_address=ada@example.com", nil)
	s.Require().Equal(fiber.StatusOK, status)

	var body customerBody
	s.DecodeJSON(raw, &body)
	s.Require().Equal(created.CustomerID, body.CustomerID)

	status, _ = s.DoJSON(s.App, fiber.MethodGet, "/customers/by-email?email_address=nobody@example.com", nil)
	s.Require().Equal(fiber.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestListCustomers_Pagination() {
	for i := 0; i < 3; i++ {
		s.createCustomer(fmt.Sprintf("user%d@example.com", i))
	}

	status, raw := s.DoJSON(s.App, fiber.MethodGet, "/customers?skip=1&limit=1", nil)
	s.Require().Equal(fiber.StatusOK, status)

	var body []customerBody
	s.DecodeJSON(raw, &body)
	s.Require().Len(body, 1)
	s.Require().Equal("user1@example.com", body[0].EmailAddress)

	status, _ = s.DoJSON(s.App, fiber.MethodGet, "/customers?limit=0", nil)
	s.Require().Equal(fiber.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestUpdateCustomer_Partial() {
	created := s.createCustomer("ada@example.com")

	status, raw := s.DoJSON(s.App, fiber.MethodPut, fmt.Sprintf("/customers/%d", created.CustomerID), fiber.Map{
		"first_name": "Augusta",
	})
	s.Require().Equal(fiber.StatusOK, status, string(raw))

	var body customerBody
	s.DecodeJSON(raw, &body)
	s.Require().Equal("Augusta", body.FirstName)
	s.Require().Equal("Lovelace", body.LastName)
	s.Require().Equal("ada@example.com", body.EmailAddress)
}

func (s *IntegrationTestSuite) TestUpdateCustomer_PasswordIsHashed() {
	created := s.createCustomer("ada@example.com")
	newPassword := "brandnew123"

	customer, err := s.CustomerService.Update(s.Ctx, created.CustomerID, &domain.UpdateCustomerInput{
		Password: &newPassword,
	})
	s.Require().NoError(err)
	s.Require().NoError(bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(newPassword)))
}

func (s *IntegrationTestSuite) TestUpdateCustomer_DuplicateEmail() {
	s.createCustomer("ada@example.com")
	other := s.createCustomer("grace@example.com")

	status, raw := s.DoJSON(s.App, fiber.MethodPut, fmt.Sprintf("/customers/%d", other.CustomerID), fiber.Map{
		"email_address": "ada@example.com",
	})
	s.Require().Equal(fiber.StatusBadRequest, status)
	s.Require().JSONEq(`{"detail":"Email already registered"}`, string(raw))
}

func (s *IntegrationTestSuite) TestUpdateCustomer_NotFound() {
	status, _ := s.DoJSON(s.App, fiber.MethodPut, "/customers/999", fiber.Map{
		"first_name": "Nobody",
	})
	s.Require().Equal(fiber.StatusNotFound, status)

	_, err := s.CustomerService.Update(s.Ctx, 999, &domain.UpdateCustomerInput{})
	s.Require().ErrorIs(err, repository.ErrCustomerNotFound)
}

func (s *IntegrationTestSuite) TestDeleteCustomer() {
	created := s.createCustomer("ada@example.com")

	status, _ := s.DoJSON(s.App, fiber.MethodDelete, fmt.Sprintf("/customers/%d", created.CustomerID), nil)
	s.Require().Equal(fiber.StatusNoContent, status)

	status, _ = s.DoJSON(s.App, fiber.MethodDelete, fmt.Sprintf("/customers/%d", created.CustomerID), nil)
	s.Require().Equal(fiber.StatusNotFound, status)
}

package http

import "github.com/sakashimaa/accessory-shop/services/customer/internal/domain"

type CreateCustomerRequest struct {
	EmailAddress      string `json:"email_address" validate:"required,email,max=255"`
	Password          string `json:"password" validate:"required,min=8,max=255"`
	FirstName         string `json:"first_name" validate:"required,max=50"`
	LastName          string `json:"last_name" validate:"required,max=50"`
	ShippingAddressID *int64 `json:"shipping_address_id" validate:"omitempty,gt=0"`
	BillingAddressID  *int64 `json:"billing_address_id" validate:"omitempty,gt=0"`
}

type UpdateCustomerRequest struct {
	EmailAddress      *string `json:"email_address" validate:"omitempty,email,max=255"`
	Password          *string `json:"password" validate:"omitempty,min=8,max=255"`
	FirstName         *string `json:"first_name" validate:"omitempty,min=1,max=50"`
	LastName          *string `json:"last_name" validate:"omitempty,min=1,max=50"`
	ShippingAddressID *int64  `json:"shipping_address_id" validate:"omitempty,gt=0"`
	BillingAddressID  *int64  `json:"billing_address_id" validate:"omitempty,gt=0"`
}

type CreateAddressRequest struct {
	Line1    string `json:"line1" validate:"required,max=60"`
	Line2    string `json:"line2" validate:"max=60"`
	City     string `json:"city" validate:"required,max=40"`
	State    string `json:"state" validate:"required,len=2"`
	ZipCode  string `json:"zip_code" validate:"required,max=10"`
	Phone    string `json:"phone" validate:"required,max=12"`
	Disabled bool   `json:"disabled"`
}

// CustomerResponse never carries the password hash.
type CustomerResponse struct {
	CustomerID        int64  `json:"customer_id"`
	EmailAddress      string `json:"email_address"`
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	ShippingAddressID *int64 `json:"shipping_address_id"`
	BillingAddressID  *int64 `json:"billing_address_id"`
}

type AddressResponse struct {
	AddressID  int64  `json:"address_id"`
	CustomerID int64  `json:"customer_id"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
	Phone      string `json:"phone"`
	Disabled   bool   `json:"disabled"`
}

func toCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:        c.ID,
		EmailAddress:      c.EmailAddress,
		FirstName:         c.FirstName,
		LastName:          c.LastName,
		ShippingAddressID: c.ShippingAddressID,
		BillingAddressID:  c.BillingAddressID,
	}
}

func toAddressResponse(a *domain.Address) AddressResponse {
	return AddressResponse{
		AddressID:  a.ID,
		CustomerID: a.CustomerID,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		ZipCode:    a.ZipCode,
		Phone:      a.Phone,
		Disabled:   a.Disabled,
	}
}

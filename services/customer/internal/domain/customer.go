package domain

type Customer struct {
	ID                int64  `db:"customer_id"`
	EmailAddress      string `db:"email_address"`
	PasswordHash      string `db:"password"`
	FirstName         string `db:"first_name"`
	LastName          string `db:"last_name"`
	ShippingAddressID *int64 `db:"shipping_address_id"`
	BillingAddressID  *int64 `db:"billing_address_id"`
}

type CreateCustomerInput struct {
	EmailAddress      string
	Password          string
	FirstName         string
	LastName          string
	ShippingAddressID *int64
	BillingAddressID  *int64
}

// UpdateCustomerInput lists the only fields a customer update may touch. Nil means unchanged.
type UpdateCustomerInput struct {
	EmailAddress      *string
	Password          *string
	FirstName         *string
	LastName          *string
	ShippingAddressID *int64
	BillingAddressID  *int64
}

func (in *UpdateCustomerInput) IsEmpty() bool {
	return in.EmailAddress == nil &&
		in.Password == nil &&
		in.FirstName == nil &&
		in.LastName == nil &&
		in.ShippingAddressID == nil &&
		in.BillingAddressID == nil
}

type Address struct {
	ID         int64  `db:"address_id"`
	CustomerID int64  `db:"customer_id"`
	Line1      string `db:"line1"`
	Line2      string `db:"line2"`
	City       string `db:"city"`
	State      string `db:"state"`
	ZipCode    string `db:"zip_code"`
	Phone      string `db:"phone"`
	Disabled   bool   `db:"disabled"`
}

package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type Customer struct {
	CustomerID   int64  `json:"customer_id"`
	EmailAddress string `json:"email_address"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
}

type CustomerClient interface {
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
}

type customerClient struct {
	http *httpClient
}

// NewCustomerClient talks to the customer service at baseURL (GET /customers/{id}).
func NewCustomerClient(baseURL string, opts Options, logger *zap.Logger) CustomerClient {
	return &customerClient{
		http: newHTTPClient("customer", baseURL, opts, logger),
	}
}

func (c *customerClient) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	if err := c.http.getJSON(ctx, fmt.Sprintf("/customers/%d", id), &customer); err != nil {
		return nil, err
	}

	return &customer, nil
}

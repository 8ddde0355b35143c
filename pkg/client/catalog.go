package client

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Category struct {
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name"`
}

// Product is the catalog's view of a product as consumed by cart, order and wishlist.
type Product struct {
	ProductID       int64           `json:"product_id"`
	CategoryID      int64           `json:"category_id"`
	ProductCode     string          `json:"product_code"`
	ProductName     string          `json:"product_name"`
	Description     string          `json:"description"`
	ListPrice       decimal.Decimal `json:"list_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Category        *Category       `json:"category,omitempty"`
}

type CatalogClient interface {
	GetProduct(ctx context.Context, id int64) (*Product, error)
}

type catalogClient struct {
	http *httpClient
}

// NewCatalogClient talks to the catalog service at baseURL (GET /products/{id}).
func NewCatalogClient(baseURL string, opts Options, logger *zap.Logger) CatalogClient {
	return &catalogClient{
		http: newHTTPClient("catalog", baseURL, opts, logger),
	}
}

func (c *catalogClient) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.http.getJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, err
	}

	return &product, nil
}

package tests

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sakashimaa/accessory-shop/services/order/internal/transport/http"
)

func (s *IntegrationTestSuite) TestCreateOrder_Success() {
	order := s.createOrder(7, 1, 2)

	s.Require().NotZero(order.OrderID)
	s.Require().Equal(int64(7), order.CustomerID)
	s.Require().Equal(5.0, order.ShipAmount)
	s.Require().Equal(1.5, order.TaxAmount)
	s.Require().Nil(order.ShipDate)
	s.Require().WithinDuration(time.Now(), order.OrderDate, time.Minute)
	s.Require().Len(order.Items, 2)
	s.Require().Equal(int64(1), order.Items[0].ProductID)
	s.Require().Equal(90.0, order.Items[0].ItemPrice)
	s.Require().Equal(0.0, order.Items[0].DiscountAmount)
	s.Require().NotZero(order.Items[0].ItemID)

	s.Require().Equal(1, s.countOrders(7))
	s.Require().Equal(2, s.CountRows(`SELECT COUNT(*) FROM order_items WHERE order_id = $1`, order.OrderID))
}

func (s *IntegrationTestSuite) TestCreateOrder_OutboxEventPublished() {
	order := s.createOrder(7, 1)
	aggregateID := strconv.FormatInt(order.OrderID, 10)

	s.Require().Equal(1, s.CountRows(
		`SELECT COUNT(*) FROM outbox WHERE aggregate_id = $1 AND event_type = 'OrderCreated' AND topic = 'order_events'`,
		aggregateID,
	))

	publishedAtQuery := `
		SELECT published_at
		FROM outbox
		WHERE aggregate_id = $1
	`

	s.Require().Eventually(func() bool {
		var publishedAt *time.Time

		err := s.DbPool.QueryRow(s.Ctx, publishedAtQuery, aggregateID).Scan(&publishedAt)
		if err != nil || publishedAt == nil {
			return false
		}

		return true
	}, 15*time.Second, 100*time.Millisecond)
}

func (s *IntegrationTestSuite) TestCreateOrder_UnknownProductWritesNothing() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(1, "Phone case", "100.00", "10")

	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/orders", orderBody(7,
		orderItem(1, 90.00, 1),
		orderItem(999, 10.00, 1),
	))
	s.Require().Equal(fiber.StatusBadRequest, status)

	var body map[string]string
	s.DecodeJSON(raw, &body)
	s.Require().Equal("Product 999 not found", body["detail"])

	s.Require().Equal(0, s.countOrders(7))
	s.Require().Equal(0, s.CountRows(`SELECT COUNT(*) FROM order_items`))
	s.Require().Equal(0, s.CountRows(`SELECT COUNT(*) FROM outbox`))
}

func (s *IntegrationTestSuite) TestCreateOrder_UnknownCustomer() {
	s.Downstream.AddProduct(1, "Phone case", "100.00", "10")

	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/orders", orderBody(42, orderItem(1, 90.00, 1)))
	s.Require().Equal(fiber.StatusBadRequest, status)

	var body map[string]string
	s.DecodeJSON(raw, &body)
	s.Require().Equal("Customer not found", body["detail"])
	s.Require().Equal(0, s.countOrders(42))
}

func (s *IntegrationTestSuite) TestCreateOrder_UpstreamDown() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(1, "Phone case", "100.00", "10")
	s.Downstream.SetDown(true)

	status, _ := s.DoJSON(s.App, fiber.MethodPost, "/orders", orderBody(7, orderItem(1, 90.00, 1)))
	s.Require().Equal(fiber.StatusServiceUnavailable, status)
	s.Require().Equal(0, s.countOrders(7))
	s.Require().Equal(0, s.CountRows(`SELECT COUNT(*) FROM outbox`))
}

func (s *IntegrationTestSuite) TestCreateOrder_Validation() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(1, "Phone case", "100.00", "10")

	tests := []struct {
		name  string
		mut   func(body map[string]any)
		field string
	}{
		{"short card number", func(b map[string]any) { b["card_number"] = "4111" }, "card_number"},
		{"bad card expiry", func(b map[string]any) { b["card_expires"] = "2029-12" }, "card_expires"},
		{"long card type", func(b map[string]any) { b["card_type"] = strings.Repeat("x", 51) }, "card_type"},
		{"negative ship amount", func(b map[string]any) { b["ship_amount"] = -1 }, "ship_amount"},
		{"no items", func(b map[string]any) { b["items"] = []map[string]any{} }, "items"},
		{"zero quantity", func(b map[string]any) { b["items"] = []map[string]any{orderItem(1, 90, 0)} }, "quantity"},
		{"negative item price", func(b map[string]any) { b["items"] = []map[string]any{orderItem(1, -5, 1)} }, "item_price"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			body := orderBody(7, orderItem(1, 90.00, 1))
			tt.mut(body)

			status, raw := s.DoJSON(s.App, fiber.MethodPost, "/orders", body)
			s.Require().Equal(fiber.StatusBadRequest, status, string(raw))

			var res struct {
				Detail map[string]string `json:"detail"`
			}
			s.DecodeJSON(raw, &res)
			s.Require().Contains(res.Detail, tt.field)
		})
	}

	s.Require().Equal(0, s.countOrders(7))
}

func (s *IntegrationTestSuite) TestCreateOrder_DefaultsAmountsToZero() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(1, "Phone case", "100.00", "10")

	body := orderBody(7, orderItem(1, 90.00, 2))
	delete(body, "ship_amount")
	delete(body, "tax_amount")

	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/orders", body)
	s.Require().Equal(fiber.StatusCreated, status, string(raw))

	var order http.OrderResponse
	s.DecodeJSON(raw, &order)
	s.Require().Equal(0.0, order.ShipAmount)
	s.Require().Equal(0.0, order.TaxAmount)
	s.Require().Equal(int32(2), order.Items[0].Quantity)
}

func (s *IntegrationTestSuite) TestCreateOrder_AmountsStoredExactly() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(1, "Phone case", "100.00", "10")

	item := orderItem(1, 0, 3)
	item["item_price"] = "19.99"
	item["discount_amount"] = 0.1

	body := orderBody(7, item)
	body["ship_amount"] = "0.10"
	body["tax_amount"] = 0.2

	status, raw := s.DoJSON(s.App, fiber.MethodPost, "/orders", body)
	s.Require().Equal(fiber.StatusCreated, status, string(raw))

	var order http.OrderResponse
	s.DecodeJSON(raw, &order)

	var shipAndTax, itemPrice, discount string
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx,
		`SELECT (o.ship_amount + o.tax_amount)::text, i.item_price::text, i.discount_amount::text
		 FROM orders o JOIN order_items i ON i.order_id = o.order_id WHERE o.order_id = $1`,
		order.OrderID,
	).Scan(&shipAndTax, &itemPrice, &discount))

	s.Require().Equal("0.30", shipAndTax)
	s.Require().Equal("19.99", itemPrice)
	s.Require().Equal("0.10", discount)
}

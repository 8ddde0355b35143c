package tests

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

func (s *IntegrationTestSuite) TestAddItem_ConcurrentAddsSumIntoOneRow() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")

	const workers = 12
	statuses := make([]int, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			statuses[i], _ = s.DoJSON(s.App, fiber.MethodPost, "/7/items", map[string]any{
				"product_id": 3,
				"quantity":   i + 1,
			})
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	for _, status := range statuses {
		s.Require().Equal(fiber.StatusCreated, status)
	}

	want := workers * (workers + 1) / 2

	var rows, quantity int
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx,
		`SELECT COUNT(*), COALESCE(SUM(quantity), 0) FROM cart_items WHERE customer_id = $1 AND product_id = $2`,
		7, 3,
	).Scan(&rows, &quantity))
	s.Require().Equal(1, rows)
	s.Require().Equal(want, quantity)
}

package tests

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

func (s *IntegrationTestSuite) TestAddItem_ConcurrentDuplicatesConflict() {
	s.Downstream.AddCustomer(7)
	s.Downstream.AddProduct(3, "Phone case", "100.00", "10")

	const workers = 10
	statuses := make([]int, workers)
	bodies := make([][]byte, workers)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			statuses[i], bodies[i] = s.add(7, 3)
			return nil
		})
	}
	s.Require().NoError(g.Wait())

	created := 0
	for i, status := range statuses {
		if status == fiber.StatusCreated {
			created++
			continue
		}

		s.Require().Equal(fiber.StatusBadRequest, status, string(bodies[i]))
		s.Require().Equal("Item already in wishlist", s.detail(bodies[i]))
	}

	s.Require().Equal(1, created)
	s.Require().Equal(int64(1), s.count(7))
}

package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultEnrichConcurrency = 8

// FetchProducts looks up every id with at most limit calls in flight.
// The result is index-aligned with ids; an entry is nil when its lookup failed for any reason.
// A failed lookup never cancels the others.
func FetchProducts(ctx context.Context, catalog CatalogClient, ids []int64, limit int) []*Product {
	if limit <= 0 {
		limit = defaultEnrichConcurrency
	}

	products := make([]*Product, len(ids))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, id := range ids {
		g.Go(func() error {
			product, err := catalog.GetProduct(ctx, id)
			if err == nil {
				products[i] = product
			}

			return nil
		})
	}

	_ = g.Wait()

	return products
}

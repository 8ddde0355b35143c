package http

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, h *CatalogHandler) {
	products := app.Group("/products")
	products.Post("", h.CreateProduct)
	products.Get("", h.ListProducts)
	products.Get("/:id", h.GetProduct)
	products.Put("/:id", h.UpdateProduct)
	products.Delete("/:id", h.DeleteProduct)

	categories := app.Group("/categories")
	categories.Post("", h.CreateCategory)
	categories.Get("", h.ListCategories)
	categories.Get("/:id", h.GetCategory)
}

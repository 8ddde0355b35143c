package http

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, h *CustomerHandler) {
	customers := app.Group("/customers")

	customers.Post("", h.Create)
	customers.Get("", h.List)
	customers.Get("/by-email", h.GetByEmail)
	customers.Get("/:id", h.GetByID)
	customers.Put("/:id", h.Update)
	customers.Delete("/:id", h.Delete)
	customers.Post("/:id/addresses", h.AddAddress)
	customers.Get("/:id/addresses", h.ListAddresses)
}

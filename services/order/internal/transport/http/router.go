package http

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, h *OrderHandler) {
	orders := app.Group("/orders")
	orders.Post("", h.CreateOrder)
	orders.Get("", h.GetOrders)
	orders.Get("/customer/:customer_id/orders", h.GetCustomerOrders)
	orders.Get("/:id", h.GetOrder)
	orders.Put("/:id", h.UpdateOrder)
	orders.Delete("/:id", h.DeleteOrder)
}

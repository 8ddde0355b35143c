package http

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the cart API under /cart and, for older clients, at the root.
func RegisterRoutes(app *fiber.App, h *CartHandler) {
	mount(app.Group("/cart"), h)
	mount(app.Group(""), h)
}

func mount(r fiber.Router, h *CartHandler) {
	r.Post("/:customer_id/items", h.AddItem)
	r.Get("/:customer_id/count", h.GetCount)
	r.Put("/:customer_id/items/:item_id", h.UpdateItem)
	r.Delete("/:customer_id/items/:item_id", h.RemoveItem)
	r.Get("/:customer_id", h.GetCart)
	r.Delete("/:customer_id", h.ClearCart)
}

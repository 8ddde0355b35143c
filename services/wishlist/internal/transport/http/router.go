package http

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, h *WishlistHandler) {
	wishlist := app.Group("/wishlist")
	wishlist.Post("", h.AddItem)
	wishlist.Get("/customer/:customer_id/count", h.GetCount)
	wishlist.Get("/customer/:customer_id", h.GetCustomerWishlist)
	wishlist.Delete("/customer/:customer_id/product/:product_id", h.RemoveByProduct)
	wishlist.Delete("/customer/:customer_id", h.ClearWishlist)
	wishlist.Delete("/:item_id", h.RemoveItem)
}

package httpserver

import (
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sakashimaa/accessory-shop/pkg/config"
	"github.com/sakashimaa/accessory-shop/pkg/metrics"
	"github.com/sakashimaa/accessory-shop/pkg/utils"
	"go.uber.org/zap"
)

// New builds the fiber app every service runs: tracing, rate limiting, request metrics,
// the shared error body and the /health and /metrics routes.
// A zero limiter Max disables rate limiting.
func New(name string, limits config.Limiter, m *metrics.Metrics, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: utils.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())

	if limits.Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        limits.Max,
			Expiration: limits.Expiration,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return utils.Detail(c, fiber.StatusTooManyRequests, "Too many requests. Try again later.")
			},
		}))
	}

	app.Use(m.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": name,
		})
	})
	app.Get("/metrics", m.Handler())

	return app
}

package gateway

import (
	"chartboard/internal/gateway/proxy"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Service Routes (Proxy)
// ============================================================

const APIPrefix = "/api/v1"

// Register вешает /api/v1 и проксирование в renderer и dashboard.
func Register(app *fiber.App, rendererURL, dashboardURL string) {
	api := app.Group(APIPrefix)

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Chartboard API v1",
			"status":  "ok",
		})
	})

	// Renderer Service
	renderer := proxy.Mount(APIPrefix, rendererURL)
	api.Post("/charts/compile", renderer)
	api.Post("/charts/render", renderer)

	// Dashboard Service
	dashboard := proxy.Mount(APIPrefix, dashboardURL)
	api.All("/chat", dashboard)
	api.All("/cards", dashboard)
	api.All("/cards/*", dashboard)
}

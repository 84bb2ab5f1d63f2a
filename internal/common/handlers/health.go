package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// ReadyCheck проверка зависимости сервиса (БД, апстрим).
type ReadyCheck func(ctx context.Context) error

const readyTimeout = 2 * time.Second

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "alive",
	})
}

// ReadinessProbe выполняет проверки и отвечает 503, если хоть одна упала.
func ReadinessProbe(checks ...ReadyCheck) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), readyTimeout)
		defer cancel()

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.Printf("[HEALTH] not ready: %v", err)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "not ready",
					"error":  err.Error(),
				})
			}
		}

		return c.JSON(fiber.Map{
			"status": "ready",
		})
	}
}

// StartupProbe проверяет, что приложение успешно запустилось
func StartupProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "started",
	})
}

// Register вешает пробы на /health/*.
func Register(app *fiber.App, checks ...ReadyCheck) {
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", ReadinessProbe(checks...))
	app.Get("/health/startup", StartupProbe)
}

package main

import (
	"fmt"
	"log"
	"time"

	"chartboard/internal/common/config"
	"chartboard/internal/common/handlers"
	"chartboard/internal/common/middleware"
	"chartboard/internal/gateway"
	docs "chartboard/internal/gateway/handlers"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// API Gateway
// ============================================================

func main() {
	cfg := config.Load("3000")

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Chartboard Gateway",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	handlers.Register(app)
	docs.Register(app)

	// ============================================================
	// API Routes
	// ============================================================

	gateway.Register(app, cfg.RendererURL, cfg.DashboardURL)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Chartboard Gateway on %s (env: %s)", addr, cfg.Environment)
	log.Printf("Proxying /charts to %s, /chat and /cards to %s", cfg.RendererURL, cfg.DashboardURL)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

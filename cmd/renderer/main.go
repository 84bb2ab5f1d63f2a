package main

import (
	"fmt"
	"log"
	"time"

	charts "chartboard/internal/chart/handlers"
	"chartboard/internal/common/config"
	"chartboard/internal/common/handlers"
	"chartboard/internal/common/middleware"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Renderer Service
// ============================================================

func main() {
	cfg := config.Load("3001")

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Chart Renderer",
	})

	app.Use(recover.New())
	app.Use(middleware.Logger())

	handlers.Register(app)
	charts.Register(app)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Chart Renderer on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"chartboard/internal/common/config"
	"chartboard/internal/common/handlers"
	"chartboard/internal/common/middleware"
	dashboard "chartboard/internal/dashboard/handlers"
	"chartboard/internal/dashboard/repository"
	"chartboard/internal/dashboard/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// ============================================================
// Dashboard Service
// ============================================================

func main() {
	cfg := config.Load("3002")

	db, err := repository.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open db: %v", err)
	}
	defer db.Close()

	repo := repository.New(db)
	if err := repo.Init(context.Background()); err != nil {
		log.Fatalf("Failed to init db: %v", err)
	}

	h := dashboard.New(service.NewChatHistory(repo), service.NewCards(repo))

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Chartboard Dashboard",
	})

	app.Use(recover.New())
	app.Use(middleware.Logger())

	handlers.Register(app, repo.Ping)
	h.Register(app)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Chartboard Dashboard on %s (env: %s, db: %s)", addr, cfg.Environment, cfg.DBPath)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

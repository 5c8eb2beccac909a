package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/KAVIN131005/Florist-Backend/internal/config"
	"github.com/KAVIN131005/Florist-Backend/internal/database"
	"github.com/KAVIN131005/Florist-Backend/internal/handlers"
	"github.com/KAVIN131005/Florist-Backend/internal/routes"
	"github.com/KAVIN131005/Florist-Backend/internal/services"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	app := fiber.New(fiber.Config{
		AppName:      "Florist Backend",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg)

	if err := services.EnsureAdmin(context.Background(), db, cfg); err != nil {
		log.Fatalf("admin bootstrap failed: %v", err)
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

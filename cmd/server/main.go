package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/example/startupvillage/internal/config"
	"github.com/example/startupvillage/internal/database"
	"github.com/example/startupvillage/internal/handlers"
	"github.com/example/startupvillage/internal/repository"
	"github.com/example/startupvillage/internal/repository/memory"
	"github.com/example/startupvillage/internal/repository/postgres"
	"github.com/example/startupvillage/internal/routes"
	"github.com/example/startupvillage/internal/services"
)

func main() {
	cfg := config.Load()

	var store repository.Store
	switch cfg.StorageDriver {
	case config.StorageMemory:
		log.Println("Using in-memory storage; data is lost on restart")
		store = memory.NewStore()
	default:
		store = postgres.NewStore(database.Connect(cfg.DatabaseURL))
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rdb.Close()
	}

	sms := services.NewSMSGateway(cfg.SMSProviderURL, cfg.SMSTimeout)
	push := services.NewPushQueue(rdb, cfg.PushQueueKey)

	app := fiber.New(fiber.Config{
		AppName:      "Startup Village API",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, store, cfg, sms, push)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/startupvillage/internal/config"
	"github.com/example/startupvillage/internal/database"
	"github.com/example/startupvillage/internal/services"
)

const popTimeout = 5 * time.Second

func main() {
	cfg := config.Load()
	if cfg.RedisAddr == "" {
		log.Fatal("REDIS_ADDR must be set for the push worker")
	}

	rdb := database.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer rdb.Close()

	queue := services.NewPushQueue(rdb, cfg.PushQueueKey)
	gateway := services.NewPushGateway(cfg.PushGatewayURL, cfg.PushTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("[Push] Worker consuming %s", cfg.PushQueueKey)
	for ctx.Err() == nil {
		n, err := queue.Pop(ctx, popTimeout)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("[Push] Pop failed: %v", err)
			time.Sleep(time.Second)
			continue
		}
		if n == nil {
			continue
		}

		if err := gateway.Deliver(ctx, *n); err != nil {
			log.Printf("[Push] Delivery of %s to user %d failed: %v", n.ID, n.UserID, err)
		}
	}
	log.Println("[Push] Worker stopped")
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/paybridge/crypto-checkout/internal/cache"
	"github.com/paybridge/crypto-checkout/internal/client"
	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/logger"
	"github.com/paybridge/crypto-checkout/internal/repository"
	"github.com/paybridge/crypto-checkout/internal/server"
	"github.com/paybridge/crypto-checkout/internal/service"
)

func main() {
	godotenv.Load(".env")
	config, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logRepo, err := repository.NewPostgresLogRepository(config.PostgresConn, nil)
	if err != nil {
		log.Fatalf("Failed to initialize log repository: %v", err)
	}
	logger.InitLogger(logRepo)

	redisCache, err := cache.NewRedisCache(config.RedisAddr, config.RedisPass)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	priceClient := client.NewPriceFeedClient(client.WithPriceFeedBaseURL(config.PriceFeedBase))
	paymentClient, err := client.NewNowPaymentsClient(config.NowPaymentsKey,
		client.WithPaymentBaseURL(config.NowPaymentsBase))
	if err != nil {
		log.Fatalf("Failed to initialize payment client: %v", err)
	}

	checkoutService := service.NewCheckoutService(priceClient, paymentClient, redisCache)
	srv := server.NewServer(config, checkoutService)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := srv.Start(ctx); err != nil {
		log.Printf("Server stopped with error: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := logger.Shutdown(shutdownCtx); err != nil {
		log.Printf("Logger shutdown failed: %v", err)
	}
	if err := redisCache.Close(); err != nil {
		log.Printf("Error closing cache: %v", err)
	}
}

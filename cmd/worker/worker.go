package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/paybridge/crypto-checkout/internal/cache"
	"github.com/paybridge/crypto-checkout/internal/client"
	"github.com/paybridge/crypto-checkout/internal/commons"
	"github.com/paybridge/crypto-checkout/internal/logger"
	"github.com/paybridge/crypto-checkout/internal/repository"
	"github.com/paybridge/crypto-checkout/internal/worker"
)

type dependencies struct {
	cache        cache.Cache
	logRepo      repository.LogRepository
	priceWarmer  PriceWarmer
	partitionMgr PartitionManager
}

type PriceWarmer interface {
	Start(ctx context.Context)
}

type PartitionManager interface {
	Start(ctx context.Context) error
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	config, err := commons.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	deps, err := initDependencies(config)
	if err != nil {
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- runWorker(ctx, deps)
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Worker failed: %v", err)
		}
	case <-signalChan:
		log.Println("Shutdown signal received, initiating graceful shutdown...")
		cancel()

		select {
		case <-errChan:
			log.Println("Worker shut down gracefully")
		case <-time.After(30 * time.Second):
			log.Println("Shutdown timed out")
		}
	}
}

func initDependencies(config commons.Config) (*dependencies, error) {
	redisCache, err := cache.NewRedisCache(config.RedisAddr, config.RedisPass)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	logRepo, err := repository.NewPostgresLogRepository(config.PostgresConn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log repository: %w", err)
	}

	priceClient := client.NewPriceFeedClient(client.WithPriceFeedBaseURL(config.PriceFeedBase))
	pairs := worker.ParsePairs(config.WarmupSymbols, config.WarmupCurrencies)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no warmup pairs configured, set WARMUP_SYMBOLS and WARMUP_CURRENCIES")
	}

	priceWarmer := worker.NewPriceWarmer(priceClient, redisCache, pairs, commons.WarmupInterval)
	partitionMgr := logger.NewPartitionManager(logRepo)

	return &dependencies{
		cache:        redisCache,
		logRepo:      logRepo,
		priceWarmer:  priceWarmer,
		partitionMgr: partitionMgr,
	}, nil
}

func runWorker(ctx context.Context, deps *dependencies) error {
	var wg sync.WaitGroup
	errChan := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()

		logger.InitLogger(deps.logRepo)

		if err := deps.partitionMgr.Start(ctx); err != nil {
			errChan <- fmt.Errorf("failed to start partition manager: %w", err)
			return
		}

		deps.priceWarmer.Start(ctx)

		log.Println("Worker shutting down...")
	}()

	go func() {
		wg.Wait()
		close(errChan)
	}()

	defer func() {
		if err := deps.cache.Close(); err != nil {
			log.Printf("Error closing cache: %v", err)
		}
		if err := deps.logRepo.Close(); err != nil {
			log.Printf("Error closing log repository: %v", err)
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"storefront-backend/internal/client"
	"storefront-backend/internal/config"
	"storefront-backend/internal/imagestore"
	"storefront-backend/internal/logger"
	"storefront-backend/internal/repository"
	"storefront-backend/internal/server"
	"storefront-backend/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("storefront-api", cfg.Log.Level)

	dataClient := client.NewDataClient(&cfg.DataService)
	gatewayClient := client.NewRazorpayClient(&cfg.Razorpay)

	store, err := newImageStore(&cfg.ImageStore)
	if err != nil {
		log.Fatal().Err(err).Msg("init image store")
	}

	customerRepo := repository.NewCustomerRepository(dataClient)
	catalogRepo := repository.NewCatalogRepository(dataClient)
	orderRepo := repository.NewOrderRepository(dataClient)

	checkoutService := service.NewCheckoutService(gatewayClient, customerRepo, &cfg.Checkout, log)
	imageService := service.NewImageService(store)
	catalogService := service.NewCatalogService(catalogRepo, orderRepo)

	srv := server.NewServer(checkoutService, imageService, catalogService, log)
	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Info().Str("addr", serverAddr).Str("environment", cfg.Environment.Name).Msg("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info().Msg("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("HTTP server shutdown error")
	}
}

func newImageStore(cfg *config.ImageStore) (imagestore.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return imagestore.NewSQLite(cfg.Path)
	case "memory", "":
		return imagestore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown image store backend %q", cfg.Backend)
	}
}

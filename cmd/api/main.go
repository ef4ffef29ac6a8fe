// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-gateway/internal/backend"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/notification"
	"github.com/your-org/storefront-gateway/internal/domain/order"
	"github.com/your-org/storefront-gateway/internal/domain/payment"
	"github.com/your-org/storefront-gateway/internal/domain/product"
	"github.com/your-org/storefront-gateway/internal/domain/review"
	"github.com/your-org/storefront-gateway/internal/domain/search"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/domain/wishlist"
	"github.com/your-org/storefront-gateway/internal/infrastructure/redis"
	"github.com/your-org/storefront-gateway/internal/interfaces/http"
	"github.com/your-org/storefront-gateway/internal/interfaces/http/routes"
	"github.com/your-org/storefront-gateway/internal/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg)
	logger.WithField("environment", cfg.App.Environment).
		Infof("Starting %s v%s", cfg.App.Name, cfg.App.Version)

	// Connect to Redis
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		log.Fatalf("Redis health check failed: %v", err)
	}

	// Upstream API clients
	commerce := backend.NewClient(cfg.Backend.CommerceURL, cfg.Backend.Timeout, logger)
	engagement := backend.NewClient(cfg.Backend.EngagementURL, cfg.Backend.Timeout, logger)

	// Domain services. Checkout shares the cart service so it sees the same
	// observed cart the cart endpoints maintain.
	cartService := cart.NewService(commerce, logger)
	orderService := order.NewService(commerce, logger)
	gateways := payment.NewManager(func() payment.Gateway {
		return payment.NewHostedGateway(commerce, cfg, logger)
	})
	guard := checkout.NewRedisGuard(redisClient.GetClient(), cfg.Checkout.LockTTL)
	checkoutService := checkout.NewService(commerce, cartService, orderService, gateways, guard, cfg, logger)

	services := &routes.Services{
		Commerce:      commerce,
		Engagement:    engagement,
		Session:       session.NewService(commerce, logger),
		Cart:          cartService,
		Orders:        orderService,
		Checkout:      checkoutService,
		Products:      product.NewService(commerce, logger),
		Reviews:       review.NewService(engagement, logger),
		Wishlist:      wishlist.NewService(engagement, logger),
		Notifications: notification.NewService(engagement, logger),
		Search:        search.NewService(engagement, logger),
	}

	// Sweep abandoned gateway sessions so mounted card inputs don't outlive
	// their checkout
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go gateways.Run(sweepCtx, 5*time.Minute, 30*time.Minute)

	// Create and start HTTP server
	server := http.NewServer(cfg, services, redisClient.GetClient(), logger)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logger.Info("Server shutdown completed")
}

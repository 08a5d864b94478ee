package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/investjournal/backend/internal/api"
	"github.com/investjournal/backend/internal/config"
	"github.com/investjournal/backend/internal/database"
	"github.com/investjournal/backend/internal/market"
	"github.com/investjournal/backend/internal/repository"
	"github.com/investjournal/backend/internal/service"
	"github.com/investjournal/backend/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Run schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	// Market data client and quote cache
	yahooClient := yahoo.NewFinanceClient()
	prices := market.NewPriceService(yahooClient, cfg.Market.CacheTTL)

	// Create services
	systemService := service.NewSystemService(db)
	authService, err := service.NewAuthService(userRepo, cfg.Session.Key, cfg.Session.TTL)
	if err != nil {
		log.Fatalf("Failed to initialize auth service: %v", err)
	}
	transactionService := service.NewTransactionService(
		transactionRepo,
		portfolioRepo,
	)
	portfolioService := service.NewPortfolioService(
		portfolioRepo,
		transactionRepo,
		prices,
	)
	performanceService := service.NewPerformanceService(
		portfolioRepo,
		transactionRepo,
		prices,
	)
	priceRefreshService := service.NewPriceRefreshService(
		transactionRepo,
		prices,
	)

	// Background price refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Market.RefreshSchedule, priceRefreshService.Run); err != nil {
		log.Fatalf("Failed to schedule price refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Auth:        authService,
		Portfolio:   portfolioService,
		Transaction: transactionService,
		Performance: performanceService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

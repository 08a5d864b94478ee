package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/investjournal/backend/internal/api/handlers"
	custommiddleware "github.com/investjournal/backend/internal/api/middleware"
	"github.com/investjournal/backend/internal/config"
	"github.com/investjournal/backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System      *service.SystemService
	Auth        *service.AuthService
	Portfolio   *service.PortfolioService
	Transaction *service.TransactionService
	Performance *service.PerformanceService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	requireAuth := custommiddleware.NewAuth(services.Auth)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		authHandler := handlers.NewAuthHandler(services.Auth)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		// Everything below requires a session token
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/portfolio", func(r chi.Router) {
				portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
				r.Get("/", portfolioHandler.Portfolios)
				r.Post("/", portfolioHandler.CreatePortfolio)
				r.Get("/stats", portfolioHandler.OverallStats)
				r.Get("/{portfolioID}", portfolioHandler.GetPortfolio)
				r.Get("/{portfolioID}/stats", portfolioHandler.PortfolioStats)
			})

			r.Route("/transaction", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(services.Transaction)
				r.Get("/", transactionHandler.Transactions)
				r.Post("/", transactionHandler.CreateTransaction)
			})

			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			r.Get("/holdings", portfolioHandler.Holdings)

			performanceHandler := handlers.NewPerformanceHandler(services.Performance)
			r.Get("/performance", performanceHandler.Summary)

			exportHandler := handlers.NewExportHandler(services.Transaction, services.Portfolio)
			r.Route("/export", func(r chi.Router) {
				r.Get("/transactions", exportHandler.Transactions)
				r.Get("/portfolios", exportHandler.Portfolios)
			})

			r.Delete("/user/data", authHandler.ClearData)
		})
	})

	return r
}

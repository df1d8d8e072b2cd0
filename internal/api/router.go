package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carteira-app/carteira-backend/internal/api/handlers"
	custommiddleware "github.com/carteira-app/carteira-backend/internal/api/middleware"
	"github.com/carteira-app/carteira-backend/internal/config"
	"github.com/carteira-app/carteira-backend/internal/repository"
	"github.com/carteira-app/carteira-backend/internal/service"
)

// Services bundles the dependencies the router wires into handlers.
type Services struct {
	System       *service.SystemService
	Transactions *service.TransactionService
	Portfolio    *service.PortfolioService
	MarketData   *service.MarketDataService
	Advisor      *service.AdvisorService
	ImportExport *service.ImportExportService
	AssetRepo    *repository.AssetRepository
	SettingsRepo *repository.SettingsRepository
}

// NewRouter creates and configures the HTTP router
func NewRouter(svcs Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svcs.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/transaction", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(svcs.Transactions)
			r.Get("/", transactionHandler.AllTransactions)
			r.Post("/", transactionHandler.CreateTransaction)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", transactionHandler.GetTransaction)
				r.Put("/", transactionHandler.UpdateTransaction)
				r.Delete("/", transactionHandler.DeleteTransaction)
			})
		})

		r.Route("/asset", func(r chi.Router) {
			assetHandler := handlers.NewAssetHandler(svcs.AssetRepo)
			r.Get("/", assetHandler.Assets)
			r.Get("/{ticker}", assetHandler.GetAsset)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/composition", portfolioHandler.Composition)
		})

		r.Route("/market", func(r chi.Router) {
			marketHandler := handlers.NewMarketHandler(svcs.MarketData)
			r.Post("/refresh", marketHandler.Refresh)
			r.Get("/history/{ticker}", marketHandler.History)
		})

		r.Route("/advisor", func(r chi.Router) {
			advisorHandler := handlers.NewAdvisorHandler(svcs.Advisor)
			r.Post("/ask", advisorHandler.Ask)
		})

		impexpHandler := handlers.NewImportExportHandler(svcs.ImportExport)
		r.Get("/export", impexpHandler.Export)
		r.Post("/import", impexpHandler.Import)

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(svcs.SettingsRepo)
			r.Get("/theme", settingsHandler.GetTheme)
			r.Put("/theme", settingsHandler.SetTheme)
		})
	})

	return r
}

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

	"github.com/carteira-app/carteira-backend/internal/api"
	"github.com/carteira-app/carteira-backend/internal/brapi"
	"github.com/carteira-app/carteira-backend/internal/config"
	"github.com/carteira-app/carteira-backend/internal/database"
	"github.com/carteira-app/carteira-backend/internal/repository"
	"github.com/carteira-app/carteira-backend/internal/service"
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

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	cacheRepo := repository.NewCacheRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingsRepo, err := repository.NewSettingsRepository(db, cfg.Settings.Secret)
	if err != nil {
		log.Fatalf("Failed to initialize settings: %v", err)
	}

	// The market token comes from the environment when set, otherwise from
	// the encrypted settings store.
	token := cfg.Market.Token
	if token == "" {
		token = settingsRepo.GetMarketToken()
	}
	quoteClient := brapi.NewClient(token)
	if !quoteClient.HasToken() {
		log.Println("No market data token configured; quotes will be empty until one is set")
	}

	// Create services
	systemService := service.NewSystemService(db)
	reconcileService := service.NewReconcileService(transactionRepo, assetRepo)
	marketDataService := service.NewMarketDataService(
		quoteClient,
		cacheRepo,
		assetRepo,
		service.NewRefreshController(),
	)
	refreshScheduler := service.NewRefreshScheduler(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := marketDataService.RefreshPositions(ctx, false); err != nil {
			log.Printf("Scheduled market refresh failed: %v", err)
		}
	})
	defer refreshScheduler.Stop()
	transactionService := service.NewTransactionService(
		transactionRepo,
		assetRepo,
		reconcileService,
		refreshScheduler,
	)
	portfolioService := service.NewPortfolioService(assetRepo)
	advisorService := service.NewAdvisorService(assetRepo, cfg.Advisor.APIKey, cfg.Advisor.Model)
	impexpService := service.NewImportExportService(assetRepo, transactionRepo, snapshotRepo)

	// Create router
	router := api.NewRouter(api.Services{
		System:       systemService,
		Transactions: transactionService,
		Portfolio:    portfolioService,
		MarketData:   marketDataService,
		Advisor:      advisorService,
		ImportExport: impexpService,
		AssetRepo:    assetRepo,
		SettingsRepo: settingsRepo,
	}, cfg)

	// Periodic jobs: refresh quotes every 15 minutes, purge dead cache
	// entries daily. The refresh respects the TTL and throttle.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 15m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := marketDataService.RefreshPositions(ctx, false); err != nil {
			log.Printf("Periodic market refresh failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule market refresh: %v", err)
	}
	if _, err := scheduler.AddFunc("@daily", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		marketDataService.PurgeExpired(ctx)
	}); err != nil {
		log.Fatalf("Failed to schedule cache purge: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Warm the dashboard on startup: refresh quotes and pre-fetch history
	// for held tickers in the background.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if _, err := marketDataService.RefreshPositions(ctx, false); err != nil {
			log.Printf("Startup market refresh failed: %v", err)
			return
		}

		assets, err := assetRepo.GetAssets()
		if err != nil {
			log.Printf("Startup history warm-up failed: %v", err)
			return
		}
		tickers := make([]string, len(assets))
		for i, a := range assets {
			tickers[i] = a.Ticker
		}
		if err := marketDataService.WarmHistory(ctx, tickers, "3mo", "1d"); err != nil {
			log.Printf("Startup history warm-up failed: %v", err)
		}
	}()

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

package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/carteira-app/carteira-backend/internal/repository"
	"github.com/carteira-app/carteira-backend/internal/service"
)

func NewTestReconcileService(t *testing.T, db *sql.DB) *service.ReconcileService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	return service.NewReconcileService(
		transactionRepo,
		assetRepo,
	)
}

// NewTestTransactionService creates a TransactionService without a refresh
// scheduler, so mutations in tests never trigger background market calls.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		assetRepo,
		service.NewReconcileService(transactionRepo, assetRepo),
		nil,
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(repository.NewAssetRepository(db))
}

// NewTestMarketDataService creates a MarketDataService backed by the given
// quote provider and a fixed clock. Use the returned clock value with
// AdvanceClock-style wrappers when stepping through TTL windows.
func NewTestMarketDataService(t *testing.T, db *sql.DB, provider service.QuoteProvider, now func() time.Time) *service.MarketDataService {
	t.Helper()

	return service.NewMarketDataServiceWithClock(
		provider,
		repository.NewCacheRepository(db),
		repository.NewAssetRepository(db),
		service.NewRefreshControllerWithClock(now),
		now,
	)
}

func NewTestImportExportService(t *testing.T, db *sql.DB) *service.ImportExportService {
	t.Helper()

	return service.NewImportExportService(
		repository.NewAssetRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewSnapshotRepository(db),
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// FixedClock returns a clock function pinned to the given time plus any
// offset accumulated through the returned advance function.
//
// Example usage:
//
//	now, advance := testutil.FixedClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
//	advance(16 * time.Minute) // step past the quote TTL
func FixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	current := start
	now := func() time.Time { return current }
	advance := func(d time.Duration) { current = current.Add(d) }
	return now, advance
}

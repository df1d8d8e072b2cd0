package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrAssetNotFound indicates that no position exists for the given ticker.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrThemeNotFound indicates that no theme preference has been saved yet.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrCacheEntryNotFound indicates that no cache entry exists for the given key.
	ErrCacheEntryNotFound = errors.New("cache entry not found")
)

// Market-data provider errors. The distinction matters: an invalid credential
// is a configuration error and must not fall back to cache, while rate limits
// and transient failures are recovered via stale cache.
var (
	// ErrUnauthorized indicates a missing or rejected API credential (HTTP 401).
	ErrUnauthorized = errors.New("market data credential missing or invalid")

	// ErrRateLimited indicates the provider rejected the request with HTTP 429.
	ErrRateLimited = errors.New("market data rate limited")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientQuantity indicates a sell request for more units than the
	// position currently holds.
	ErrInsufficientQuantity = errors.New("insufficient quantity for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrInvalidImportFile indicates the import payload failed its structural
	// check (assets must be present and array-shaped).
	ErrInvalidImportFile = errors.New("invalid import file")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrieveAssets       = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset        = errors.New("failed to retrieve asset")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToRefreshMarketData    = errors.New("failed to refresh market data")
	ErrFailedToRetrieveHistory      = errors.New("failed to retrieve price history")
	ErrFailedToGetSummary           = errors.New("failed to get portfolio summary")
	ErrFailedToExport               = errors.New("failed to export portfolio")
	ErrFailedToImport               = errors.New("failed to import portfolio")
	ErrFailedToRetrieveTheme        = errors.New("failed to retrieve theme")
	ErrFailedToSaveTheme            = errors.New("failed to save theme")
	ErrAdvisorUnavailable           = errors.New("advisor unavailable")
)

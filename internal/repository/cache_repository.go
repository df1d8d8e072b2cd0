package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/model"
)

// CacheRepository persists market-data cache entries keyed by request shape.
// Entries survive restarts; TTL evaluation is the market-data service's job,
// the repository only stores and retrieves.
type CacheRepository struct {
	db *sql.DB
}

// NewCacheRepository creates a new CacheRepository with the provided database connection.
func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// Get retrieves the cache entry for a key.
// Returns apperrors.ErrCacheEntryNotFound when the key is absent or the
// stored payload is not valid JSON; corrupt cache degrades to a miss.
func (r *CacheRepository) Get(key string) (model.CacheEntry, error) {
	var entry model.CacheEntry
	var data string
	var timestampStr string

	err := r.db.QueryRow(`SELECT key, data, timestamp FROM market_cache WHERE key = ?`, key).
		Scan(&entry.Key, &data, &timestampStr)
	if err == sql.ErrNoRows {
		return model.CacheEntry{}, apperrors.ErrCacheEntryNotFound
	}
	if err != nil {
		return model.CacheEntry{}, fmt.Errorf("failed to scan market_cache results: %w", err)
	}

	if !json.Valid([]byte(data)) {
		return model.CacheEntry{}, apperrors.ErrCacheEntryNotFound
	}
	entry.Data = json.RawMessage(data)

	entry.Timestamp, err = ParseTime(timestampStr)
	if err != nil {
		return model.CacheEntry{}, apperrors.ErrCacheEntryNotFound
	}

	return entry, nil
}

// Put stores or overwrites the cache entry for a key.
func (r *CacheRepository) Put(ctx context.Context, key string, data json.RawMessage, timestamp time.Time) error {
	query := `
		INSERT INTO market_cache (key, data, timestamp)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			data = excluded.data,
			timestamp = excluded.timestamp
	`

	_, err := r.db.ExecContext(ctx, query, key, string(data), timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Purge deletes entries older than the cutoff. Called opportunistically by
// the scheduled refresh so the cache table does not grow without bound.
func (r *CacheRepository) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM market_cache WHERE timestamp < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	return result.RowsAffected()
}

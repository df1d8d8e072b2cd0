package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction ledger.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves the full ledger ordered by creation time.
// The date column holds the localized display string and is returned as
// stored; chronological ordering is the reconciler's job, not the repository's.
func (r *TransactionRepository) GetTransactions() ([]model.Transaction, error) {
	query := `
		SELECT id, ticker, date, type, quantity, price, total, created_at
		FROM "transaction"
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransactionsByTicker retrieves every ledger entry for one ticker.
// This is the reconciler's input: the complete history, never a slice of it.
func (r *TransactionRepository) GetTransactionsByTicker(ticker string) ([]model.Transaction, error) {
	query := `
		SELECT id, ticker, date, type, quantity, price, total, created_at
		FROM "transaction"
		WHERE ticker = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, ticker)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransaction retrieves a single transaction by its ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) GetTransaction(id string) (model.Transaction, error) {
	query := `
		SELECT id, ticker, date, type, quantity, price, total, created_at
		FROM "transaction"
		WHERE id = ?
	`

	var t model.Transaction
	var createdAtStr string
	err := r.db.QueryRow(query, id).Scan(
		&t.ID,
		&t.Ticker,
		&t.Date,
		&t.Type,
		&t.Quantity,
		&t.Price,
		&t.Total,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to scan transaction table results: %w", err)
	}

	if created, parseErr := ParseTime(createdAtStr); parseErr == nil {
		t.CreatedAt = created
	}

	return t, nil
}

// InsertTransaction stores a new ledger entry.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, ticker, date, type, quantity, price, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Ticker, t.Date, t.Type, t.Quantity, t.Price, t.Total,
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction replaces the mutable fields of an existing ledger entry.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET ticker = ?, date = ?, type = ?, quantity = ?, price = ?, total = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Ticker, t.Date, t.Type, t.Quantity, t.Price, t.Total, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a ledger entry by ID.
// Returns apperrors.ErrTransactionNotFound when no row matches.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// scanTransactions reads ledger rows. A row that fails to scan is skipped:
// corrupt persisted data degrades to absence instead of failing the load.
func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}

	for rows.Next() {
		var t model.Transaction
		var createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.Ticker,
			&t.Date,
			&t.Type,
			&t.Quantity,
			&t.Price,
			&t.Total,
			&createdAtStr,
		)
		if err != nil {
			continue
		}

		if created, parseErr := ParseTime(createdAtStr); parseErr == nil {
			t.CreatedAt = created
		}

		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

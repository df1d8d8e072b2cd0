package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Asset table: one reconciled position per ticker
		CREATE TABLE IF NOT EXISTS asset (
			ticker VARCHAR(12) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			quantity FLOAT NOT NULL,
			total_cost FLOAT NOT NULL,
			average_price FLOAT NOT NULL,
			current_price FLOAT NOT NULL,
			total_value FLOAT NOT NULL,
			daily_change_percent FLOAT NOT NULL DEFAULT 0,
			last_dividend_per_unit FLOAT NOT NULL DEFAULT 0,
			asset_type VARCHAR(10) NOT NULL,
			segment VARCHAR(50) NOT NULL DEFAULT '',
			allocation_type VARCHAR(50) NOT NULL DEFAULT '',
			color VARCHAR(7) NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Transaction ledger (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			ticker VARCHAR(12) NOT NULL,
			date VARCHAR(20) NOT NULL,
			type VARCHAR(10) NOT NULL,
			quantity FLOAT NOT NULL,
			price FLOAT NOT NULL,
			total FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_transaction_ticker ON "transaction"(ticker);

		-- Market-data cache table
		CREATE TABLE IF NOT EXISTS market_cache (
			key VARCHAR(255) NOT NULL PRIMARY KEY,
			data TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		-- Settings table
		CREATE TABLE IF NOT EXISTS setting (
			key VARCHAR(50) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables.
// Useful for reusing the same database across multiple tests.
//
// Example usage:
//
//	func TestMultipleThings(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//
//	    t.Run("First test", func(t *testing.T) {
//	        // Create data
//	        testutil.CleanDatabase(t, db)  // Clean after
//	    })
//
//	    t.Run("Second test", func(t *testing.T) {
//	        // Fresh clean database
//	    })
//	}
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"transaction",
		"asset",
		"market_cache",
		"setting",
	}

	for _, table := range tables {
		query := `DELETE FROM "` + table + `"`
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
//
// Example usage:
//
//	count := testutil.CountRows(t, db, "asset")
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := `SELECT COUNT(*) FROM "` + table + `"`
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
//
// Example usage:
//
//	testutil.AssertRowCount(t, db, "asset", 2)
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}

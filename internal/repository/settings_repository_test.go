package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fernet/fernet-go"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/repository"
	"github.com/carteira-app/carteira-backend/internal/testutil"
)

// newTestSecret generates a fresh fernet key encoded the way configuration
// supplies it.
func newTestSecret(t *testing.T) string {
	t.Helper()
	var key fernet.Key
	if err := key.Generate(); err != nil {
		t.Fatalf("Failed to generate fernet key: %v", err)
	}
	return key.Encode()
}

// TestSettingsRepository_Theme tests theme storage and the object-shape guard.
//
// WHY: The theme is opaque JSON owned by the frontend, but a stored value
// that is not an object would break every client that loads it. The
// repository enforces the shape on both write and read.
func TestSettingsRepository_Theme(t *testing.T) {
	t.Run("round-trips a theme object", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		theme := json.RawMessage(`{"mode":"dark","accent":"#4E79A7"}`)

		// Execute
		if err := repo.SetTheme(context.Background(), theme); err != nil {
			t.Fatalf("SetTheme() returned unexpected error: %v", err)
		}
		stored, err := repo.GetTheme()

		// Assert
		if err != nil {
			t.Fatalf("GetTheme() returned unexpected error: %v", err)
		}
		if string(stored) != string(theme) {
			t.Errorf("Expected theme %s, got %s", theme, stored)
		}
	})

	t.Run("overwrites the previous theme", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		if err := repo.SetTheme(context.Background(), json.RawMessage(`{"mode":"light"}`)); err != nil {
			t.Fatalf("SetTheme() returned unexpected error: %v", err)
		}
		if err := repo.SetTheme(context.Background(), json.RawMessage(`{"mode":"dark"}`)); err != nil {
			t.Fatalf("SetTheme() returned unexpected error: %v", err)
		}

		stored, err := repo.GetTheme()
		if err != nil {
			t.Fatalf("GetTheme() returned unexpected error: %v", err)
		}
		if string(stored) != `{"mode":"dark"}` {
			t.Errorf("Expected latest theme, got %s", stored)
		}
		testutil.AssertRowCount(t, db, "setting", 1)
	})

	t.Run("returns not found when no theme is stored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		if _, err := repo.GetTheme(); !errors.Is(err, apperrors.ErrThemeNotFound) {
			t.Errorf("Expected ErrThemeNotFound, got %v", err)
		}
	})

	t.Run("rejects a theme that is not a JSON object", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		for _, payload := range []string{`"dark"`, `[1,2,3]`, `42`, `not json`} {
			if err := repo.SetTheme(context.Background(), json.RawMessage(payload)); err == nil {
				t.Errorf("Expected rejection of payload %s", payload)
			}
		}
	})

	t.Run("corrupt stored value degrades to not found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		if _, err := db.Exec(`INSERT INTO setting (key, value) VALUES ('theme', 'garbage')`); err != nil {
			t.Fatalf("Failed to seed corrupt value: %v", err)
		}

		if _, err := repo.GetTheme(); !errors.Is(err, apperrors.ErrThemeNotFound) {
			t.Errorf("Expected ErrThemeNotFound for corrupt value, got %v", err)
		}
	})
}

// TestSettingsRepository_MarketToken tests encrypted credential storage.
//
// WHY: The market token is a paid credential stored at rest. It must never
// land in the database as plaintext, and a missing or wrong secret must read
// as absence rather than an error the caller would retry.
func TestSettingsRepository_MarketToken(t *testing.T) {
	t.Run("encrypts at rest and round-trips", func(t *testing.T) {
		// Setup
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, newTestSecret(t))
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		// Execute
		if err := repo.SetMarketToken(context.Background(), "brapi-secret-token"); err != nil {
			t.Fatalf("SetMarketToken() returned unexpected error: %v", err)
		}

		// Assert
		if got := repo.GetMarketToken(); got != "brapi-secret-token" {
			t.Errorf("Expected decrypted token, got %q", got)
		}

		var stored string
		if err := db.QueryRow(`SELECT value FROM setting WHERE key = 'market_token'`).Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored token: %v", err)
		}
		if stored == "brapi-secret-token" {
			t.Error("Expected ciphertext in the database, found plaintext")
		}
	})

	t.Run("missing token reads as empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, newTestSecret(t))
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		if got := repo.GetMarketToken(); got != "" {
			t.Errorf("Expected empty token, got %q", got)
		}
	})

	t.Run("unconfigured secret disables token storage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo, err := repository.NewSettingsRepository(db, "")
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}

		if err := repo.SetMarketToken(context.Background(), "token"); err == nil {
			t.Error("Expected SetMarketToken to fail without a secret")
		}
		if got := repo.GetMarketToken(); got != "" {
			t.Errorf("Expected empty token without a secret, got %q", got)
		}
	})

	t.Run("wrong secret reads as empty", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		writer, err := repository.NewSettingsRepository(db, newTestSecret(t))
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}
		if err := writer.SetMarketToken(context.Background(), "token"); err != nil {
			t.Fatalf("SetMarketToken() returned unexpected error: %v", err)
		}

		reader, err := repository.NewSettingsRepository(db, newTestSecret(t))
		if err != nil {
			t.Fatalf("Failed to create repository: %v", err)
		}
		if got := reader.GetMarketToken(); got != "" {
			t.Errorf("Expected empty token under the wrong secret, got %q", got)
		}
	})

	t.Run("rejects an invalid secret at construction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		if _, err := repository.NewSettingsRepository(db, "not-a-fernet-key"); err == nil {
			t.Error("Expected constructor to reject an invalid secret")
		}
	})
}

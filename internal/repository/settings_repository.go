package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
)

// Setting keys stored in the setting table.
const (
	settingTheme       = "theme"
	settingMarketToken = "market_token"
)

// SettingsRepository persists user settings: the active theme (a JSON object
// round-tripped as text) and the market-data API token, encrypted at rest
// with fernet when a secret is configured.
type SettingsRepository struct {
	db     *sql.DB
	secret *fernet.Key
}

// NewSettingsRepository creates a new SettingsRepository.
// secret is the base64 fernet key used for credential encryption; when empty,
// token storage is disabled and GetMarketToken reports absence.
func NewSettingsRepository(db *sql.DB, secret string) (*SettingsRepository, error) {
	repo := &SettingsRepository{db: db}

	if secret != "" {
		key, err := fernet.DecodeKey(secret)
		if err != nil {
			return nil, fmt.Errorf("invalid settings secret: %w", err)
		}
		repo.secret = key
	}

	return repo, nil
}

// GetTheme retrieves the active theme object.
// Returns apperrors.ErrThemeNotFound when no theme is stored or the stored
// value is not a JSON object; corrupt data degrades to absence.
func (r *SettingsRepository) GetTheme() (json.RawMessage, error) {
	value, err := r.get(settingTheme)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrThemeNotFound
	}
	if err != nil {
		return nil, err
	}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal([]byte(value), &shape); err != nil {
		return nil, apperrors.ErrThemeNotFound
	}

	return json.RawMessage(value), nil
}

// SetTheme stores the active theme object.
func (r *SettingsRepository) SetTheme(ctx context.Context, theme json.RawMessage) error {
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(theme, &shape); err != nil {
		return fmt.Errorf("theme must be a JSON object: %w", err)
	}
	return r.put(ctx, settingTheme, string(theme))
}

// GetMarketToken retrieves and decrypts the stored market-data API token.
// Returns empty string when no token is stored, the secret is unconfigured,
// or the ciphertext fails verification.
func (r *SettingsRepository) GetMarketToken() string {
	if r.secret == nil {
		return ""
	}

	value, err := r.get(settingMarketToken)
	if err != nil {
		return ""
	}

	token := fernet.VerifyAndDecrypt([]byte(value), 0, []*fernet.Key{r.secret})
	return string(token)
}

// SetMarketToken encrypts and stores the market-data API token.
func (r *SettingsRepository) SetMarketToken(ctx context.Context, token string) error {
	if r.secret == nil {
		return fmt.Errorf("settings secret not configured")
	}

	ciphertext, err := fernet.EncryptAndSign([]byte(token), r.secret)
	if err != nil {
		return fmt.Errorf("failed to encrypt token: %w", err)
	}

	return r.put(ctx, settingMarketToken, string(ciphertext))
}

func (r *SettingsRepository) get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM setting WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

func (r *SettingsRepository) put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO setting (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to store setting %s: %w", key, err)
	}
	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/model"
	"github.com/carteira-app/carteira-backend/internal/repository"
)

// ImportExportService round-trips the whole portfolio state as a single JSON
// document: {version, timestamp, assets[], transactions[]}.
type ImportExportService struct {
	assetRepo       *repository.AssetRepository
	transactionRepo *repository.TransactionRepository
	snapshotRepo    *repository.SnapshotRepository
}

// NewImportExportService creates a new ImportExportService with the provided repository dependencies.
func NewImportExportService(
	assetRepo *repository.AssetRepository,
	transactionRepo *repository.TransactionRepository,
	snapshotRepo *repository.SnapshotRepository,
) *ImportExportService {
	return &ImportExportService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		snapshotRepo:    snapshotRepo,
	}
}

// Export serializes the current positions and ledger with a version tag and
// timestamp.
func (s *ImportExportService) Export() (model.ExportFile, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return model.ExportFile{}, fmt.Errorf("failed to export assets: %w", err)
	}

	transactions, err := s.transactionRepo.GetTransactions()
	if err != nil {
		return model.ExportFile{}, fmt.Errorf("failed to export transactions: %w", err)
	}

	return model.ExportFile{
		Version:      model.ExportFileVersion,
		Timestamp:    time.Now().UTC(),
		Assets:       assets,
		Transactions: transactions,
	}, nil
}

// Import replaces the entire positions+transactions state from a
// user-supplied JSON payload.
//
// The structural check is deliberately minimal: `assets` must be present and
// array-shaped. `transactions` defaults to an empty ledger. Anything less
// well-formed is rejected with apperrors.ErrInvalidImportFile before any
// state is touched; the replace itself is atomic.
func (s *ImportExportService) Import(ctx context.Context, payload []byte) (int, int, error) {
	var shape struct {
		Assets       json.RawMessage `json:"assets"`
		Transactions json.RawMessage `json:"transactions"`
	}
	if err := json.Unmarshal(payload, &shape); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", apperrors.ErrInvalidImportFile, err)
	}
	if len(shape.Assets) == 0 {
		return 0, 0, fmt.Errorf("%w: missing assets", apperrors.ErrInvalidImportFile)
	}

	var assets []model.Asset
	if err := json.Unmarshal(shape.Assets, &assets); err != nil {
		return 0, 0, fmt.Errorf("%w: assets must be an array", apperrors.ErrInvalidImportFile)
	}

	transactions := []model.Transaction{}
	if len(shape.Transactions) > 0 {
		if err := json.Unmarshal(shape.Transactions, &transactions); err != nil {
			return 0, 0, fmt.Errorf("%w: transactions must be an array", apperrors.ErrInvalidImportFile)
		}
	}

	if err := s.snapshotRepo.ReplaceAll(ctx, assets, transactions); err != nil {
		return 0, 0, err
	}

	return len(assets), len(transactions), nil
}

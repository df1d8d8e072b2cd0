package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carteira-app/carteira-backend/internal/api/request"
	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/model"
	"github.com/carteira-app/carteira-backend/internal/repository"
)

// TransactionService handles ledger mutations. Every mutation reconciles the
// affected ticker synchronously before returning, then schedules the
// debounced market refresh; the ledger and the positions are never out of
// step from the caller's point of view.
type TransactionService struct {
	transactionRepo  *repository.TransactionRepository
	assetRepo        *repository.AssetRepository
	reconcileService *ReconcileService
	scheduler        *RefreshScheduler
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
// scheduler may be nil when no refresh should follow mutations (tests).
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
	reconcileService *ReconcileService,
	scheduler *RefreshScheduler,
) *TransactionService {
	return &TransactionService{
		transactionRepo:  transactionRepo,
		assetRepo:        assetRepo,
		reconcileService: reconcileService,
		scheduler:        scheduler,
	}
}

// GetTransactions retrieves the full ledger.
func (s *TransactionService) GetTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions()
}

// GetTransaction retrieves a single ledger entry by ID.
func (s *TransactionService) GetTransaction(id string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(id)
}

// CreateTransaction stores a new ledger entry and reconciles its ticker.
//
// Sell requests are checked against the currently held quantity and rejected
// with apperrors.ErrInsufficientQuantity when they exceed it. The reconciler
// itself still clamps (imports and historical edits bypass this check); the
// rejection exists purely to catch data-entry mistakes at the API edge.
func (s *TransactionService) CreateTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))

	if req.Type == model.TransactionSell {
		if err := s.checkSellQuantity(ticker, req.Quantity); err != nil {
			return nil, err
		}
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		Ticker:    ticker,
		Date:      req.Date,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Price:     req.Price,
		Total:     req.Quantity * req.Price,
		CreatedAt: time.Now(),
	}

	if err := s.transactionRepo.InsertTransaction(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := s.reconcileService.RebuildPosition(ctx, ticker); err != nil {
		return nil, err
	}

	s.scheduleRefresh()
	return transaction, nil
}

// UpdateTransaction replaces the fields of an existing ledger entry and
// reconciles the affected ticker(s). When the edit moves the entry to a
// different ticker, both the old and the new position are rebuilt.
//
// An edit that turns the entry into a sell exceeding the holdings net of the
// entry itself is rejected with apperrors.ErrInsufficientQuantity, mirroring
// the check on create.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, req request.UpdateTransactionRequest) (*model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(id)
	if err != nil {
		return nil, err
	}

	previous := transaction

	if req.Ticker != nil {
		transaction.Ticker = strings.ToUpper(strings.TrimSpace(*req.Ticker))
	}
	if req.Date != nil {
		transaction.Date = *req.Date
	}
	if req.Type != nil {
		transaction.Type = *req.Type
	}
	if req.Quantity != nil {
		transaction.Quantity = *req.Quantity
	}
	if req.Price != nil {
		transaction.Price = *req.Price
	}
	transaction.Total = transaction.Quantity * transaction.Price

	if transaction.Type == model.TransactionSell {
		if err := s.checkSellQuantityNet(transaction, previous); err != nil {
			return nil, err
		}
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, &transaction); err != nil {
		return nil, err
	}

	if err := s.reconcileService.RebuildPosition(ctx, transaction.Ticker); err != nil {
		return nil, err
	}
	if previous.Ticker != transaction.Ticker {
		if err := s.reconcileService.RebuildPosition(ctx, previous.Ticker); err != nil {
			return nil, err
		}
	}

	s.scheduleRefresh()
	return &transaction, nil
}

// DeleteTransaction removes a ledger entry and reconciles its ticker.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	transaction, err := s.transactionRepo.GetTransaction(id)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	if err := s.reconcileService.RebuildPosition(ctx, transaction.Ticker); err != nil {
		return err
	}

	s.scheduleRefresh()
	return nil
}

// checkSellQuantity rejects sells that exceed the currently held quantity.
func (s *TransactionService) checkSellQuantity(ticker string, quantity float64) error {
	asset, err := s.assetRepo.GetAsset(ticker)
	if err != nil {
		return apperrors.ErrInsufficientQuantity
	}
	if quantity > asset.Quantity+positionEpsilon {
		return apperrors.ErrInsufficientQuantity
	}
	return nil
}

// checkSellQuantityNet rejects an edited sell that exceeds the quantity that
// would be held without the entry being edited. The prior entry's own effect
// on the position is backed out before comparing, so shrinking or keeping a
// sell always passes while inflating it past the remaining holdings fails.
func (s *TransactionService) checkSellQuantityNet(updated, previous model.Transaction) error {
	var held float64
	if asset, err := s.assetRepo.GetAsset(updated.Ticker); err == nil {
		held = asset.Quantity
	}

	if previous.Ticker == updated.Ticker {
		switch previous.Type {
		case model.TransactionSell:
			held += previous.Quantity
		case model.TransactionBuy:
			held -= previous.Quantity
		}
	}

	if updated.Quantity > held+positionEpsilon {
		return apperrors.ErrInsufficientQuantity
	}
	return nil
}

func (s *TransactionService) scheduleRefresh() {
	if s.scheduler != nil {
		s.scheduler.Schedule()
	}
}

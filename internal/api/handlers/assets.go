package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carteira-app/carteira-backend/internal/api/response"
	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/repository"
)

// AssetHandler handles HTTP requests for position endpoints. Positions are
// read-only over HTTP: they are derived from the ledger by reconciliation
// and refreshed by the market-data service, never edited directly.
type AssetHandler struct {
	assetRepo *repository.AssetRepository
}

// NewAssetHandler creates a new AssetHandler with the provided repository dependency.
func NewAssetHandler(assetRepo *repository.AssetRepository) *AssetHandler {
	return &AssetHandler{
		assetRepo: assetRepo,
	}
}

// Assets handles GET requests to retrieve all current positions.
//
// Endpoint: GET /api/asset
// Response: 200 OK with array of Asset
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) Assets(w http.ResponseWriter, _ *http.Request) {
	assets, err := h.assetRepo.GetAssets()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAssets.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests to retrieve a single position by ticker.
//
// Endpoint: GET /api/asset/{ticker}
// Response: 200 OK with Asset
// Error: 404 Not Found if no position exists for the ticker
// Error: 500 Internal Server Error if retrieval fails
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	asset, err := h.assetRepo.GetAsset(ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrAssetNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAsset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

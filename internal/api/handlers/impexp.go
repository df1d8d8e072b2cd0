package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/carteira-app/carteira-backend/internal/api/response"
	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/service"
)

// maxImportSize caps import payloads at 10 MiB. A personal portfolio export
// is a few kilobytes; anything near the cap is not one.
const maxImportSize = 10 << 20

// ImportExportHandler handles HTTP requests for portfolio backup endpoints.
type ImportExportHandler struct {
	impexpService *service.ImportExportService
}

// NewImportExportHandler creates a new ImportExportHandler with the provided service dependency.
func NewImportExportHandler(impexpService *service.ImportExportService) *ImportExportHandler {
	return &ImportExportHandler{
		impexpService: impexpService,
	}
}

// ImportResponse reports how many records an import loaded.
type ImportResponse struct {
	Assets       int `json:"assets"`
	Transactions int `json:"transactions"`
}

// Export handles GET requests to download the full portfolio state as a
// single versioned JSON document.
//
// Endpoint: GET /api/export
// Response: 200 OK with ExportFile
// Error: 500 Internal Server Error if retrieval fails
func (h *ImportExportHandler) Export(w http.ResponseWriter, _ *http.Request) {
	file, err := h.impexpService.Export()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToExport.Error(), err.Error())
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="carteira-export.json"`)
	response.RespondJSON(w, http.StatusOK, file)
}

// Import handles POST requests to replace the full portfolio state from an
// uploaded JSON document. The replace is atomic: a payload that fails the
// structural check leaves the existing data untouched.
//
// Endpoint: POST /api/import
// Request Body: ExportFile-shaped JSON (assets required, transactions optional)
// Response: 200 OK with ImportResponse
// Error: 400 Bad Request if the payload fails its structural check
// Error: 500 Internal Server Error if the replace fails
func (h *ImportExportHandler) Import(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	assetCount, transactionCount, err := h.impexpService.Import(r.Context(), payload)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidImportFile) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidImportFile.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToImport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ImportResponse{
		Assets:       assetCount,
		Transactions: transactionCount,
	})
}

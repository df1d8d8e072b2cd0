package handlers

import (
	"net/http"

	"github.com/carteira-app/carteira-backend/internal/api/response"
	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/service"
)

// PortfolioHandler handles HTTP requests for portfolio analytics endpoints.
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler with the provided service dependency.
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Summary handles GET requests for the portfolio summary: total balance,
// invested capital, capital gain, projected income, yield on cost and the
// value-weighted daily change. An empty portfolio summarizes to zeros.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Summary(w http.ResponseWriter, _ *http.Request) {
	summary, err := h.portfolioService.GetSummary()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// Composition handles GET requests for the portfolio breakdown by the
// grouping given in the groupBy query parameter: "assetType" (default),
// "segment" or "allocationType".
//
// Endpoint: GET /api/portfolio/composition?groupBy=segment
// Response: 200 OK with array of CompositionSlice
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Composition(w http.ResponseWriter, r *http.Request) {
	groupBy := r.URL.Query().Get("groupBy")

	slices, err := h.portfolioService.GetComposition(groupBy)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, slices)
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carteira-app/carteira-backend/internal/api/response"
	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/service"
)

// Default history window served to the dashboard chart.
const (
	defaultHistoryRange    = "3mo"
	defaultHistoryInterval = "1d"
)

// MarketHandler handles HTTP requests for market-data endpoints.
type MarketHandler struct {
	marketDataService *service.MarketDataService
}

// NewMarketHandler creates a new MarketHandler with the provided service dependency.
func NewMarketHandler(marketDataService *service.MarketDataService) *MarketHandler {
	return &MarketHandler{
		marketDataService: marketDataService,
	}
}

// RefreshResponse reports how many positions a refresh touched.
type RefreshResponse struct {
	Updated int `json:"updated"`
}

// Refresh handles POST requests to refresh quotes for every held position.
// With force=true the TTL and throttle checks are bypassed; the in-flight
// guard still serializes concurrent refreshes. Provider failures degrade to
// cached data, so the endpoint only errors on storage problems.
//
// Endpoint: POST /api/market/refresh?force=true
// Response: 200 OK with RefreshResponse
// Error: 500 Internal Server Error if positions cannot be loaded or stored
func (h *MarketHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	updated, err := h.marketDataService.RefreshPositions(r.Context(), force)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefreshMarketData.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshResponse{Updated: updated})
}

// History handles GET requests for a ticker's historical price series.
// Range and interval default to a 3 month daily series. Provider failures
// degrade to cached or empty data, never an error status.
//
// Endpoint: GET /api/market/history/{ticker}?range=1y&interval=1d
// Response: 200 OK with array of PricePoint
// Error: 500 Internal Server Error if the cache cannot be read
func (h *MarketHandler) History(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(chi.URLParam(r, "ticker"))

	rng := r.URL.Query().Get("range")
	if rng == "" {
		rng = defaultHistoryRange
	}
	interval := r.URL.Query().Get("interval")
	if interval == "" {
		interval = defaultHistoryInterval
	}
	force := r.URL.Query().Get("force") == "true"

	points, err := h.marketDataService.FetchHistory(r.Context(), ticker, rng, interval, force)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, points)
}

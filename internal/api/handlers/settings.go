package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/carteira-app/carteira-backend/internal/api/response"
	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/repository"
)

// maxThemeSize caps stored theme objects at 64 KiB.
const maxThemeSize = 64 << 10

// SettingsHandler handles HTTP requests for user settings endpoints.
type SettingsHandler struct {
	settingsRepo *repository.SettingsRepository
}

// NewSettingsHandler creates a new SettingsHandler with the provided repository dependency.
func NewSettingsHandler(settingsRepo *repository.SettingsRepository) *SettingsHandler {
	return &SettingsHandler{
		settingsRepo: settingsRepo,
	}
}

// GetTheme handles GET requests to retrieve the saved theme object.
//
// Endpoint: GET /api/settings/theme
// Response: 200 OK with the stored theme JSON object
// Error: 404 Not Found if no theme has been saved
// Error: 500 Internal Server Error if retrieval fails
func (h *SettingsHandler) GetTheme(w http.ResponseWriter, _ *http.Request) {
	theme, err := h.settingsRepo.GetTheme()
	if err != nil {
		if errors.Is(err, apperrors.ErrThemeNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrThemeNotFound.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTheme.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, theme)
}

// SetTheme handles PUT requests to store the theme object. The payload must
// be a JSON object; its contents are opaque to the backend.
//
// Endpoint: PUT /api/settings/theme
// Request Body: arbitrary JSON object
// Response: 204 No Content
// Error: 400 Bad Request if the payload is not a JSON object
// Error: 500 Internal Server Error if storage fails
func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxThemeSize))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal(payload, &shape); err != nil {
		response.RespondError(w, http.StatusBadRequest, "theme must be a JSON object", err.Error())
		return
	}

	if err := h.settingsRepo.SetTheme(r.Context(), json.RawMessage(payload)); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveTheme.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

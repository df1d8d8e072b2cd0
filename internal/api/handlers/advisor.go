package handlers

import (
	"net/http"

	"github.com/carteira-app/carteira-backend/internal/api/request"
	"github.com/carteira-app/carteira-backend/internal/api/response"
	"github.com/carteira-app/carteira-backend/internal/service"
	"github.com/carteira-app/carteira-backend/internal/validation"
)

// AdvisorHandler handles HTTP requests for the advisor chat endpoint.
type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

// NewAdvisorHandler creates a new AdvisorHandler with the provided service dependency.
func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
	}
}

// AskResponse carries the advisor's answer.
type AskResponse struct {
	Answer string `json:"answer"`
}

// Ask handles POST requests to ask the advisor a question about the
// portfolio. Provider failures never surface as errors; the service answers
// with a canned apology instead, so this endpoint only rejects bad input.
//
// Endpoint: POST /api/advisor/ask
// Request Body: AskAdvisorRequest (question)
// Response: 200 OK with AskResponse
// Error: 400 Bad Request if validation fails or request body is invalid
func (h *AdvisorHandler) Ask(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AskAdvisorRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateAskAdvisor(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	answer := h.advisorService.Ask(r.Context(), req.Question)
	response.RespondJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

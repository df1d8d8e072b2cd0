package validation

import (
	"strings"

	"github.com/carteira-app/carteira-backend/internal/api/request"
)

// maxQuestionLength caps advisor questions. Anything longer is almost
// certainly a paste accident and would waste provider tokens.
const maxQuestionLength = 2000

// ValidateAskAdvisor validates an advisor chat request.
func ValidateAskAdvisor(req request.AskAdvisorRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Question) == "" {
		errors["question"] = "question is required"
	} else if len(req.Question) > maxQuestionLength {
		errors["question"] = "question is too long"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

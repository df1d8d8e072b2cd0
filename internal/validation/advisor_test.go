package validation_test

import (
	"strings"
	"testing"

	"github.com/carteira-app/carteira-backend/internal/api/request"
	"github.com/carteira-app/carteira-backend/internal/validation"
)

func TestValidateAskAdvisor(t *testing.T) {
	t.Run("accepts a normal question", func(t *testing.T) {
		req := request.AskAdvisorRequest{Question: "Como está a diversificação da minha carteira?"}
		if err := validation.ValidateAskAdvisor(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects a blank question", func(t *testing.T) {
		req := request.AskAdvisorRequest{Question: "   "}
		fields := fieldError(t, validation.ValidateAskAdvisor(req))
		if _, ok := fields["question"]; !ok {
			t.Errorf("Expected error on question, got %v", fields)
		}
	})

	t.Run("rejects an oversized question", func(t *testing.T) {
		req := request.AskAdvisorRequest{Question: strings.Repeat("a", 2001)}
		fields := fieldError(t, validation.ValidateAskAdvisor(req))
		if _, ok := fields["question"]; !ok {
			t.Errorf("Expected error on question, got %v", fields)
		}
	})
}

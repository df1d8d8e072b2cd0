package validation

import (
	"fmt"
	"strings"

	"github.com/carteira-app/carteira-backend/internal/api/request"
	"github.com/carteira-app/carteira-backend/internal/service"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	"buy": true, "sell": true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - ticker: Must be non-empty
//   - date: Must be a "DD Mon YYYY" display date (pt-BR or English month)
//   - type: Must be one of: buy, sell
//   - quantity: Must be positive
//   - price: Must be positive
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if service.ParseDisplayDate(req.Date).IsZero() {
		errors["date"] = fmt.Sprintf("invalid date: %s, expected DD Mon YYYY", req.Date)
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["type"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.Ticker != nil && strings.TrimSpace(*req.Ticker) == "" {
		errors["ticker"] = "ticker is required"
	}
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		} else if service.ParseDisplayDate(*req.Date).IsZero() {
			errors["date"] = fmt.Sprintf("invalid date: %s, expected DD Mon YYYY", *req.Date)
		}
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["type"] = "type is required"
		} else if !ValidTransactionType[*req.Type] {
			errors["type"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Quantity != nil && *req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}
	if req.Price != nil && *req.Price <= 0.0 {
		errors["price"] = "price must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

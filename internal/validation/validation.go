package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
)

// ValidateUUID checks if a string is a valid UUID.
// Returns apperrors.ErrInvalidUUID (wrapped with the offending value) so
// callers can match it with errors.Is.
func ValidateUUID(id string) error {
	if id == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

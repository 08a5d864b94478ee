// Package validation checks incoming request payloads before they reach the
// service layer. Failures are reported per field through Error.
package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/investjournal/backend/internal/apperrors"
)

// Error carries field-specific validation messages.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ValidateUUID checks that an identifier is present and is a valid UUID.
// Failures wrap apperrors.ErrEmptyID or apperrors.ErrInvalidUUID.
func ValidateUUID(id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ErrEmptyID
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

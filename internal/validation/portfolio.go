package validation

import (
	"strings"

	"github.com/investjournal/backend/internal/api/request"
)

func ValidateCreatePortfolio(req request.CreatePortfolioRequest) error {
	errors := make(map[string]string)

	// Required field
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	} else if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	// Optional but has constraints
	if len(req.Description) > 500 {
		errors["description"] = "description must be 500 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

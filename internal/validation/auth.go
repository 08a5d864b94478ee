package validation

import (
	"strings"

	"github.com/investjournal/backend/internal/api/request"
)

func ValidateRegister(req request.RegisterRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	} else if len(req.Username) > 80 {
		errors["username"] = "username must be 80 characters or less"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !strings.Contains(req.Email, "@") {
		errors["email"] = "email is not valid"
	}

	if len(req.Password) < 8 {
		errors["password"] = "password must be at least 8 characters"
	}

	if len(req.FullName) > 120 {
		errors["fullName"] = "fullName must be 120 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateLogin(req request.LoginRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	}

	if req.Password == "" {
		errors["password"] = "password is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

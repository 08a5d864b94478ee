package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/investjournal/backend/internal/api/middleware"
	"github.com/investjournal/backend/internal/model"
)

// parseJSON decodes the request body into the target request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, fmt.Errorf("request body is empty")
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// currentUser pulls the authenticated user out of the request context.
// Handlers behind the auth middleware can rely on it being present; the
// error covers routes mistakenly mounted without it.
func currentUser(r *http.Request) (model.User, error) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		return model.User{}, fmt.Errorf("no authenticated user in request context")
	}
	return user, nil
}

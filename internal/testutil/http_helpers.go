package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/investjournal/backend/internal/api/middleware"
	"github.com/investjournal/backend/internal/model"
)

// NewRequestWithURLParams creates an HTTP request with chi URL parameters.
// This helper simplifies testing chi handlers that use chi.URLParam() to extract path parameters.
//
// Example:
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodGet,
//	    "/api/portfolio/123-456",
//	    map[string]string{"portfolioID": "123-456"},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

// NewJSONRequest creates an HTTP request with a JSON-encoded body.
//
// Example:
//
//	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio",
//	    request.CreatePortfolioRequest{Name: "Growth"})
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AsUser attaches the user to the request context as if it had passed the
// auth middleware.
//
// Example:
//
//	req = testutil.AsUser(req, user)
func AsUser(req *http.Request, user model.User) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), user))
}

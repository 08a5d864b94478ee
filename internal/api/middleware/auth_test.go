package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/investjournal/backend/internal/api/middleware"
	"github.com/investjournal/backend/internal/testutil"
)

// TestAuthMiddleware tests session token enforcement.
//
// WHY: Every data endpoint sits behind this middleware. Requests without a
// valid token must be rejected before reaching the handler, and valid tokens
// must yield the right user in the request context.
func TestAuthMiddleware(t *testing.T) {
	setup := func(t *testing.T) (http.Handler, string) {
		t.Helper()

		db := testutil.SetupTestDB(t)
		authService := testutil.NewTestAuthService(t, db)

		if _, err := authService.Register("alice", "alice@example.com", "Alice", "s3cret-pass"); err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}
		token, _, err := authService.Login("alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		handler := middleware.NewAuth(authService)(next)
		return handler, token
	}

	t.Run("rejects a request without a token", func(t *testing.T) {
		handler, _ := setup(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects a malformed authorization header", func(t *testing.T) {
		handler, token := setup(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		req.Header.Set("Authorization", token) // missing Bearer prefix
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("rejects a forged token", func(t *testing.T) {
		handler, _ := setup(t)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("passes a valid token through with the user in context", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		authService := testutil.NewTestAuthService(t, db)

		registered, err := authService.Register("alice", "alice@example.com", "Alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}
		token, _, err := authService.Login("alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}

		var gotUserID string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := middleware.UserFrom(r.Context())
			if !ok {
				t.Error("Expected user in request context")
			}
			gotUserID = user.ID
			w.WriteHeader(http.StatusOK)
		})

		handler := middleware.NewAuth(authService)(next)

		req := httptest.NewRequest(http.MethodGet, "/api/portfolio", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if gotUserID != registered.ID {
			t.Errorf("Expected user %s in context, got %s", registered.ID, gotUserID)
		}
	})
}

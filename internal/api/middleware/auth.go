// Package middleware provides HTTP middleware for request logging,
// CORS handling, and session authentication.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/investjournal/backend/internal/api/response"
	"github.com/investjournal/backend/internal/model"
	"github.com/investjournal/backend/internal/service"
)

type contextKey string

const userContextKey contextKey = "user"

// NewAuth returns a middleware that requires a valid session token in the
// Authorization header ("Bearer <token>") and stores the resolved user in the
// request context. Requests with a missing, malformed, or expired token get a
// 401 and never reach the handler.
func NewAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.RespondError(w, http.StatusUnauthorized, "missing bearer token", "")
				return
			}

			user, err := authService.VerifyToken(token)
			if err != nil {
				response.RespondError(w, http.StatusUnauthorized, "invalid or expired session token", "")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFrom extracts the authenticated user stored by NewAuth.
// The second return is false when the request did not pass the auth middleware.
func UserFrom(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey).(model.User)
	return user, ok
}

// WithUser returns a context carrying the user as if it had passed the auth
// middleware. Intended for handler tests that call handlers directly.
func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

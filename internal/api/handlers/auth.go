package handlers

import (
	"errors"
	"net/http"

	"github.com/investjournal/backend/internal/api/request"
	"github.com/investjournal/backend/internal/api/response"
	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/service"
	"github.com/investjournal/backend/internal/validation"
)

// AuthHandler handles HTTP requests for account and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the provided service dependency.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// UserResponse represents a user account in API responses.
// The password hash never leaves the service layer.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// LoginResponse represents a successful login: the session token plus the account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Register handles POST requests to create a new user account.
//
// Endpoint: POST /api/auth/register
// Request Body: RegisterRequest (username, email, fullName, password)
// Response: 201 Created with UserResponse
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the username or email is already taken
// Error: 500 Internal Server Error if creation fails
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	user, err := h.authService.Register(req.Username, req.Email, req.FullName, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEntry) {
			response.RespondError(w, http.StatusConflict, "username or email already in use", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create account", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	})
}

// Login handles POST requests to authenticate a user.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (username, password)
// Response: 200 OK with LoginResponse
// Error: 400 Bad Request if validation fails
// Error: 401 Unauthorized if the credentials are wrong
// Error: 500 Internal Server Error if login fails
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			response.RespondError(w, http.StatusUnauthorized, "invalid username or password", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to log in", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User: UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			FullName: user.FullName,
		},
	})
}

// Me handles GET requests for the authenticated account.
//
// Endpoint: GET /api/auth/me
// Response: 200 OK with UserResponse
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	response.RespondJSON(w, http.StatusOK, UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
	})
}

// ClearData handles DELETE requests to remove all of the user's portfolios and
// transactions. The account itself stays.
//
// Endpoint: DELETE /api/user/data
// Response: 204 No Content
// Error: 500 Internal Server Error if deletion fails
func (h *AuthHandler) ClearData(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	if err := h.authService.ClearUserData(user.ID); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to clear user data", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

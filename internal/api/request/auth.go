package request

// RegisterRequest represents the request body for creating a user account
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/model"
	"github.com/investjournal/backend/internal/repository"
)

// AuthService handles user registration, login, and session token handling.
// Session tokens are fernet tokens carrying the user ID; they are verified
// against the signing key and the configured TTL, so no session state is kept
// server-side.
type AuthService struct {
	userRepo *repository.UserRepository
	key      *fernet.Key
	ttl      time.Duration
}

// NewAuthService creates a new AuthService. keyStr is a base64 fernet key;
// when empty a random key is generated, which invalidates outstanding session
// tokens on restart.
func NewAuthService(userRepo *repository.UserRepository, keyStr string, ttl time.Duration) (*AuthService, error) {
	var key *fernet.Key
	if keyStr == "" {
		key = new(fernet.Key)
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate session key: %w", err)
		}
	} else {
		var err error
		key, err = fernet.DecodeKey(keyStr)
		if err != nil {
			return nil, fmt.Errorf("failed to decode session key: %w", err)
		}
	}

	return &AuthService{
		userRepo: userRepo,
		key:      key,
		ttl:      ttl,
	}, nil
}

// Register creates a new user account with a bcrypt password hash.
// Returns apperrors.ErrDuplicateEntry when the username or email is taken.
func (s *AuthService) Register(username, email, fullName, password string) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		IsActive:     true,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Login verifies the credentials and returns a session token with the user.
// Unknown usernames and wrong passwords both fail with
// apperrors.ErrInvalidCredentials so responses do not leak which accounts exist.
func (s *AuthService) Login(username, password string) (string, model.User, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return "", model.User{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.User{}, apperrors.ErrInvalidCredentials
	}

	token, err := fernet.EncryptAndSign([]byte(user.ID), s.key)
	if err != nil {
		return "", model.User{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return string(token), user, nil
}

// VerifyToken validates a session token and returns the user it belongs to.
// Returns apperrors.ErrInvalidSessionToken for malformed, forged, or expired
// tokens, and for tokens referencing a deactivated user.
func (s *AuthService) VerifyToken(token string) (model.User, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), s.ttl, []*fernet.Key{s.key})
	if payload == nil {
		return model.User{}, apperrors.ErrInvalidSessionToken
	}

	user, err := s.userRepo.GetUserByID(string(payload))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, apperrors.ErrInvalidSessionToken
	}
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

// ClearUserData removes all portfolios and transactions belonging to the user.
// The account itself stays active.
func (s *AuthService) ClearUserData(userID string) error {
	return s.userRepo.ClearUserData(userID)
}

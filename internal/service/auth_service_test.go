package service_test

import (
	"errors"
	"testing"

	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/repository"
	"github.com/investjournal/backend/internal/testutil"
)

// TestAuthService_Register tests account creation.
//
// WHY: Registration is the entry point for every user. The password must be
// stored hashed and duplicate usernames or emails must be rejected.
func TestAuthService_Register(t *testing.T) {
	t.Run("creates an account with a hashed password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		user, err := svc.Register("alice", "alice@example.com", "Alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		if user.ID == "" {
			t.Error("Expected generated user ID")
		}
		if user.PasswordHash == "s3cret-pass" {
			t.Error("Password must not be stored in plaintext")
		}
		if !user.IsActive {
			t.Error("Expected new account to be active")
		}
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		if _, err := svc.Register("alice", "alice@example.com", "Alice", "s3cret-pass"); err != nil {
			t.Fatalf("First Register() returned unexpected error: %v", err)
		}

		_, err := svc.Register("alice", "other@example.com", "Alice Two", "s3cret-pass")
		if !errors.Is(err, apperrors.ErrDuplicateEntry) {
			t.Errorf("Expected ErrDuplicateEntry, got %v", err)
		}
	})
}

// TestAuthService_Login tests credential verification and token issuance.
//
// WHY: Login failures for unknown users and wrong passwords must be
// indistinguishable, and a successful login must yield a token that
// VerifyToken resolves back to the same account.
func TestAuthService_Login(t *testing.T) {
	t.Run("returns a verifiable token for valid credentials", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		registered, err := svc.Register("alice", "alice@example.com", "Alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		token, user, err := svc.Login("alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}
		if token == "" {
			t.Fatal("Expected non-empty session token")
		}
		if user.ID != registered.ID {
			t.Errorf("Expected user %s, got %s", registered.ID, user.ID)
		}

		verified, err := svc.VerifyToken(token)
		if err != nil {
			t.Fatalf("VerifyToken() returned unexpected error: %v", err)
		}
		if verified.ID != registered.ID {
			t.Errorf("Token resolved to user %s, expected %s", verified.ID, registered.ID)
		}
	})

	t.Run("rejects a wrong password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		if _, err := svc.Register("alice", "alice@example.com", "Alice", "s3cret-pass"); err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}

		_, _, err := svc.Login("alice", "wrong-pass")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("rejects an unknown username with the same error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		_, _, err := svc.Login("nobody", "whatever-pass")
		if !errors.Is(err, apperrors.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}

// TestAuthService_VerifyToken tests token rejection cases.
//
// WHY: The auth middleware trusts VerifyToken completely, so forged tokens
// and tokens for deactivated accounts must fail.
func TestAuthService_VerifyToken(t *testing.T) {
	t.Run("rejects a malformed token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)

		_, err := svc.VerifyToken("not-a-real-token")
		if !errors.Is(err, apperrors.ErrInvalidSessionToken) {
			t.Errorf("Expected ErrInvalidSessionToken, got %v", err)
		}
	})

	t.Run("rejects a token signed by a different key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestAuthService(t, db)
		other := testutil.NewTestAuthService(t, db)

		if _, err := svc.Register("alice", "alice@example.com", "Alice", "s3cret-pass"); err != nil {
			t.Fatalf("Register() returned unexpected error: %v", err)
		}
		token, _, err := svc.Login("alice", "s3cret-pass")
		if err != nil {
			t.Fatalf("Login() returned unexpected error: %v", err)
		}

		_, err = other.VerifyToken(token)
		if !errors.Is(err, apperrors.ErrInvalidSessionToken) {
			t.Errorf("Expected ErrInvalidSessionToken for foreign key, got %v", err)
		}
	})
}

// TestAuthService_ClearUserData tests the account data wipe.
//
// WHY: Clearing must remove the user's portfolios and transactions while
// leaving the account itself intact and other users' data untouched.
func TestAuthService_ClearUserData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestAuthService(t, db)

	user := testutil.CreateUser(t, db)
	other := testutil.CreateUser(t, db)

	portfolio := testutil.CreatePortfolio(t, db, user.ID, "Mine")
	otherPortfolio := testutil.CreatePortfolio(t, db, other.ID, "Theirs")
	testutil.CreateBuy(t, db, user.ID, portfolio.ID, "AAPL", "2024-01-02", 10, 100)
	testutil.CreateBuy(t, db, other.ID, otherPortfolio.ID, "MSFT", "2024-01-02", 5, 200)

	if err := svc.ClearUserData(user.ID); err != nil {
		t.Fatalf("ClearUserData() returned unexpected error: %v", err)
	}

	portfolioRepo := repository.NewPortfolioRepository(db)
	mine, err := portfolioRepo.GetPortfolios(user.ID)
	if err != nil {
		t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("Expected user's portfolios gone, got %d", len(mine))
	}

	theirs, err := portfolioRepo.GetPortfolios(other.ID)
	if err != nil {
		t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
	}
	if len(theirs) != 1 {
		t.Errorf("Expected other user's portfolio untouched, got %d", len(theirs))
	}

	userRepo := repository.NewUserRepository(db)
	if _, err := userRepo.GetUserByID(user.ID); err != nil {
		t.Errorf("Expected account to survive data clear, got %v", err)
	}
}

// Package auth is the identity layer: credential storage, email
// verification, and resolution of a session's user id to a profile row.
// Handlers never touch auth_users or verification tokens directly.
package auth

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/AlexTLDR/gather/internal/database"
	"github.com/sethvargo/go-retry"
)

const tokenTTL = 24 * time.Hour

type Service struct {
	db      *database.DB
	mailer  Mailer
	baseURL string
}

func New(db *database.DB, mailer Mailer, baseURL string) *Service {
	return &Service{
		db:      db,
		mailer:  mailer,
		baseURL: baseURL,
	}
}

// SignUp creates a credential record, the denormalized profile row, and a
// single-use verification token, then hands the verification link to the
// mailer. A profile write that fails here is retried on the user's first
// authenticated read, so the two stores converge without a transaction
// across them.
func (s *Service) SignUp(email, password, name string) (*database.AuthUser, error) {
	if email == "" || password == "" || name == "" {
		return nil, authErr(CodeInvalidCredentials, "Name, email and password are required")
	}

	existing, err := s.db.GetAuthUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authErr(CodeEmailTaken, "Email already registered")
	}

	user, err := s.db.CreateAuthUser(email, name, password)
	if err != nil {
		return nil, err
	}

	// Best effort; healed later by CurrentUser if it fails.
	if err := s.db.EnsureProfile(user.ID, user.Name, user.Email); err != nil {
		fmt.Printf("Warning: failed to create profile row at sign-up: %v\n", err)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	if err := s.db.CreateVerificationToken(token, user.ID, time.Now().UTC().Add(tokenTTL)); err != nil {
		return nil, err
	}

	link := s.baseURL + "/auth/callback?" + url.Values{"code": {token}}.Encode()
	if err := s.mailer.SendVerificationLink(user.Email, link); err != nil {
		return nil, fmt.Errorf("failed to send verification link: %w", err)
	}

	return user, nil
}

// SignIn checks the password and requires a verified email. Unknown emails
// and wrong passwords share one error so the response does not reveal which
// accounts exist.
func (s *Service) SignIn(email, password string) (*database.AuthUser, error) {
	if email == "" || password == "" {
		return nil, authErr(CodeInvalidCredentials, "Email and password are required")
	}

	user, err := s.db.GetAuthUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, authErr(CodeInvalidCredentials, "Invalid email or password")
	}
	if err := database.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, authErr(CodeInvalidCredentials, "Invalid email or password")
	}
	if !user.EmailVerified {
		return nil, authErr(CodeEmailNotVerified, "Please verify your email before signing in")
	}

	return user, nil
}

// ExchangeCode trades a verification code for the verified user. Tokens are
// single use; unknown and expired codes are indistinguishable to the caller.
func (s *Service) ExchangeCode(code string) (*database.AuthUser, error) {
	if code == "" {
		return nil, authErr(CodeInvalidCode, "Verification code is missing")
	}

	authUserID, err := s.db.ConsumeVerificationToken(code, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if authUserID == "" {
		return nil, authErr(CodeInvalidCode, "Verification link is invalid or has expired")
	}

	if err := s.db.MarkEmailVerified(authUserID); err != nil {
		return nil, err
	}

	user, err := s.db.GetAuthUserByID(authUserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authErr(CodeInvalidCode, "Verification link is invalid or has expired")
	}
	return user, nil
}

// CurrentUser resolves a session's user id to the profile row. When the
// profile write was lost at sign-up, it is recreated here from the
// credential record, with backoff in case the store is briefly unavailable.
func (s *Service) CurrentUser(ctx context.Context, id string) (*database.User, error) {
	if id == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := s.db.GetUserByID(id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	authUser, err := s.db.GetAuthUserByID(id)
	if err != nil {
		return nil, err
	}
	if authUser == nil {
		// Stale session cookie for a deleted account.
		return nil, ErrNotAuthenticated
	}

	backoff := retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.db.EnsureProfile(authUser.ID, authUser.Name, authUser.Email); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.db.GetUserByID(id)
}

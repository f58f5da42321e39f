package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"airmailer/internal/models"
	"airmailer/internal/repositories"
)

const verificationTTL = 24 * time.Hour

type SignupResult struct {
	Account *models.Account
	Token   string
	APIKey  string
}

type LoginResult struct {
	Token         string
	EmailVerified bool
}

type AccountService interface {
	Signup(ctx context.Context, email, password string) (*SignupResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Refresh(ctx context.Context, token string) (string, error)
	Status(ctx context.Context, accountID int) (bool, error)
	VerifyPassword(ctx context.Context, accountID int, password string) error
}

type accountService struct {
	repo   repositories.AccountRepository
	keys   APIKeyService
	auth   AuthService
	mailer Mailer
}

func NewAccountService(repo repositories.AccountRepository, keys APIKeyService, auth AuthService, mailer Mailer) AccountService {
	return &accountService{repo: repo, keys: keys, auth: auth, mailer: mailer}
}

// Signup creates an unverified account with a pending verification token,
// issues the account's API key and a short session token. The verification
// mail is fire-and-log: a relay failure does not roll the signup back, the
// holder can always resend.
func (s *accountService) Signup(ctx context.Context, email, password string) (*SignupResult, error) {
	taken, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("signup exists check: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("signup hash: %w", err)
	}

	verificationToken := uuid.NewString()
	expires := time.Now().Add(verificationTTL)
	account := &models.Account{
		Email:               email,
		PasswordHash:        hash,
		VerificationToken:   &verificationToken,
		VerificationExpires: &expires,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	apiKey, err := s.keys.Issue(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(email, verificationToken); err != nil {
		log.Printf("[auth][signup] warning: verification email to %s failed: %v", email, err)
	}

	token, err := s.auth.IssueToken(account.ID, SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("signup token: %w", err)
	}

	return &SignupResult{Account: account, Token: token, APIKey: apiKey}, nil
}

// Login keeps one failure shape for unknown email and wrong password.
func (s *accountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login lookup: %w", err)
	}
	if err := s.auth.CheckPassword(account.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(account.ID, SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("login token: %w", err)
	}
	return &LoginResult{Token: token, EmailVerified: account.EmailVerified}, nil
}

// Refresh exchanges a valid-or-within-grace token for a day-scale one,
// confirming the account still exists first.
func (s *accountService) Refresh(ctx context.Context, token string) (string, error) {
	accountID, err := s.auth.Refresh(token)
	if err != nil {
		return "", err
	}
	if _, err := s.repo.GetByID(ctx, accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrAccountNotFound
		}
		return "", fmt.Errorf("refresh lookup: %w", err)
	}
	return s.auth.IssueToken(accountID, RefreshTTL)
}

func (s *accountService) Status(ctx context.Context, accountID int) (bool, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, ErrAccountNotFound
		}
		return false, fmt.Errorf("status lookup: %w", err)
	}
	return account.EmailVerified, nil
}

// VerifyPassword re-confirms the holder's password before sensitive reveals.
func (s *accountService) VerifyPassword(ctx context.Context, accountID int, password string) error {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("verify password lookup: %w", err)
	}
	return s.auth.CheckPassword(account.PasswordHash, password)
}

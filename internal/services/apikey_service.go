package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"airmailer/internal/repositories"
)

const apiKeyPrefix = "am_"

// APIKeyService manages the one long-lived key each account holds: issued at
// signup, rotated only after a password re-confirmation.
type APIKeyService interface {
	Issue(ctx context.Context, accountID int) (string, error)
	Get(ctx context.Context, accountID int) (string, error)
	Rotate(ctx context.Context, accountID int, password string) (string, error)
	Authenticate(ctx context.Context, key string) (int, error)
}

type apiKeyService struct {
	repo     repositories.APIKeyRepository
	accounts repositories.AccountRepository
	auth     AuthService
}

func NewAPIKeyService(repo repositories.APIKeyRepository, accounts repositories.AccountRepository, auth AuthService) APIKeyService {
	return &apiKeyService{repo: repo, accounts: accounts, auth: auth}
}

func newKey() string {
	return apiKeyPrefix + uuid.NewString()
}

func (s *apiKeyService) Issue(ctx context.Context, accountID int) (string, error) {
	key := newKey()
	if err := s.repo.Insert(ctx, accountID, key); err != nil {
		return "", err
	}
	return key, nil
}

func (s *apiKeyService) Get(ctx context.Context, accountID int) (string, error) {
	key, err := s.repo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("api key get: %w", err)
	}
	return key, nil
}

// Rotate re-confirms the password, then swaps the key in one transaction.
// The previous key stops authenticating the moment the swap commits.
func (s *apiKeyService) Rotate(ctx context.Context, accountID int, password string) (string, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrAccountNotFound
		}
		return "", fmt.Errorf("rotate lookup: %w", err)
	}
	if err := s.auth.CheckPassword(account.PasswordHash, password); err != nil {
		return "", err
	}

	key := newKey()
	if err := s.repo.Rotate(ctx, accountID, key); err != nil {
		return "", err
	}
	return key, nil
}

// Authenticate resolves a bearer API key to its account for the dispatch
// route.
func (s *apiKeyService) Authenticate(ctx context.Context, key string) (int, error) {
	id, err := s.repo.GetAccountIDByKey(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrInvalidAPIKey
		}
		return 0, fmt.Errorf("api key auth: %w", err)
	}
	return id, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"airmailer/internal/repositories"
)

const resetTTL = time.Hour

// ResetService drives the password-reset state machine. Request never reveals
// whether the email exists; Consume is the only path that rotates the hash.
type ResetService interface {
	Request(ctx context.Context, email string) error
	Consume(ctx context.Context, token, newPassword string) error
}

type resetService struct {
	repo   repositories.AccountRepository
	auth   AuthService
	mailer Mailer
}

func NewResetService(repo repositories.AccountRepository, auth AuthService, mailer Mailer) ResetService {
	return &resetService{repo: repo, auth: auth, mailer: mailer}
}

// Request always succeeds from the caller's point of view. Unknown emails and
// throttled requests are logged and dropped, the response is identical.
func (s *resetService) Request(ctx context.Context, email string) error {
	account, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("[reset][request] no account for submitted email")
			return nil
		}
		return fmt.Errorf("reset request lookup: %w", err)
	}

	token := uuid.NewString()
	expires := time.Now().Add(resetTTL)
	ok, err := s.repo.BeginPasswordReset(ctx, account.ID, token, expires)
	if err != nil {
		return err
	}
	if !ok {
		log.Printf("[reset][request] throttled for account=%d", account.ID)
		return nil
	}

	if err := s.mailer.SendPasswordResetEmail(account.Email, token); err != nil {
		log.Printf("[reset][request] warning: email to account=%d failed: %v", account.ID, err)
	}
	return nil
}

// Consume matches token and expiry in one store predicate and clears the
// reset state atomically with the password write, so a token can never be
// spent twice.
func (s *resetService) Consume(ctx context.Context, token, newPassword string) error {
	hash, err := s.auth.HashPasswordStrong(newPassword)
	if err != nil {
		return fmt.Errorf("reset hash: %w", err)
	}
	ok, err := s.repo.ConsumeResetToken(ctx, token, hash)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTokenInvalid
	}
	return nil
}

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

// VerificationService drives the email-verification state machine:
// unverified-pending from signup, throttled resends, verified as the terminal
// state.
type VerificationService interface {
	Resend(ctx context.Context, accountID int) error
	Confirm(ctx context.Context, token string) error
}

type verificationService struct {
	repo   repositories.AccountRepository
	mailer Mailer
}

func NewVerificationService(repo repositories.AccountRepository, mailer Mailer) VerificationService {
	return &verificationService{repo: repo, mailer: mailer}
}

// Resend issues a fresh token and dispatches it, at most 3 times per rolling
// hour. The throttle check and the counter bump are one store statement, so
// concurrent resends cannot exceed the ceiling.
func (s *verificationService) Resend(ctx context.Context, accountID int) error {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("resend lookup: %w", err)
	}
	if account.EmailVerified {
		return ErrAlreadyVerified
	}

	token := uuid.NewString()
	expires := time.Now().Add(verificationTTL)
	ok, err := s.repo.BeginVerificationResend(ctx, accountID, token, expires)
	if err != nil {
		return err
	}
	if !ok {
		return ErrRateLimited
	}

	if err := s.mailer.SendVerificationEmail(account.Email, token); err != nil {
		// token state is already committed; the holder can resend
		log.Printf("[verify][resend] warning: email to %s failed: %v", account.Email, err)
	}
	return nil
}

// Confirm consumes a verification token. An expired token stays in place; the
// account must request a fresh one.
func (s *verificationService) Confirm(ctx context.Context, token string) error {
	account, err := s.repo.GetByVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("confirm lookup: %w", err)
	}
	if account.VerificationExpires == nil || time.Now().After(*account.VerificationExpires) {
		return ErrTokenExpired
	}
	if err := s.repo.MarkVerified(ctx, account.ID); err != nil {
		return fmt.Errorf("confirm update: %w", err)
	}
	return nil
}

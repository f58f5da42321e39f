package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"airmailer/internal/repositories"
)

func TestResend_OK(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mailer := &fakeMailer{}
	svc := NewVerificationService(repositories.NewAccountRepository(db), mailer)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(3).
		WillReturnRows(accountRow(3, "a@b.co", "hash", false))
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Resend(context.Background(), 3); err != nil {
		t.Fatalf("Resend error: %v", err)
	}
	if len(mailer.verifications) != 1 || mailer.verifications[0] == "" {
		t.Fatalf("expected one verification mail with a token, got %v", mailer.verifications)
	}
	expectationsMet(t, mock)
}

func TestResend_Throttled(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mailer := &fakeMailer{}
	svc := NewVerificationService(repositories.NewAccountRepository(db), mailer)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(3).
		WillReturnRows(accountRow(3, "a@b.co", "hash", false))
	// zero rows affected: the rolling-hour ceiling is hit
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.Resend(context.Background(), 3); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if len(mailer.verifications) != 0 {
		t.Fatalf("throttled resend must not send mail")
	}
	expectationsMet(t, mock)
}

func TestResend_AlreadyVerified(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewVerificationService(repositories.NewAccountRepository(db), &fakeMailer{})

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(3).
		WillReturnRows(accountRow(3, "a@b.co", "hash", true))

	if err := svc.Resend(context.Background(), 3); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestConfirm_OK(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewVerificationService(repositories.NewAccountRepository(db), &fakeMailer{})

	mock.ExpectQuery("SELECT (.+) FROM users WHERE verification_token").
		WithArgs("tok").
		WillReturnRows(accountRowWithVerification(3, "a@b.co", time.Now().Add(time.Hour)))
	mock.ExpectExec("UPDATE users").
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Confirm(context.Background(), "tok"); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestConfirm_UnknownToken(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewVerificationService(repositories.NewAccountRepository(db), &fakeMailer{})

	mock.ExpectQuery("SELECT (.+) FROM users WHERE verification_token").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(accountTestColumns))

	if err := svc.Confirm(context.Background(), "nope"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestConfirm_Expired(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewVerificationService(repositories.NewAccountRepository(db), &fakeMailer{})

	mock.ExpectQuery("SELECT (.+) FROM users WHERE verification_token").
		WithArgs("tok").
		WillReturnRows(accountRowWithVerification(3, "a@b.co", time.Now().Add(-time.Minute)))

	// no UPDATE expected: an expired token stays in place
	if err := svc.Confirm(context.Background(), "tok"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	expectationsMet(t, mock)
}

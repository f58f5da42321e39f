package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"airmailer/internal/repositories"
)

func TestAPIKeyIssue(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAPIKeyService(
		repositories.NewAPIKeyRepository(db),
		repositories.NewAccountRepository(db),
		NewAuthService("s"),
	)

	mock.ExpectExec("INSERT INTO api_keys").
		WillReturnResult(sqlmock.NewResult(1, 1))

	key, err := svc.Issue(context.Background(), 5)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if !strings.HasPrefix(key, "am_") {
		t.Fatalf("key %q missing am_ prefix", key)
	}
	expectationsMet(t, mock)
}

func TestAPIKeyGet_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAPIKeyService(
		repositories.NewAPIKeyRepository(db),
		repositories.NewAccountRepository(db),
		NewAuthService("s"),
	)

	mock.ExpectQuery("SELECT api_key FROM api_keys").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"api_key"}))

	if _, err := svc.Get(context.Background(), 5); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestAPIKeyRotate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	auth := NewAuthService("s")
	svc := NewAPIKeyService(
		repositories.NewAPIKeyRepository(db),
		repositories.NewAccountRepository(db),
		auth,
	)

	hash, err := auth.HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(5).
		WillReturnRows(accountRow(5, "a@b.co", hash, true))
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM api_keys").
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO api_keys").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	key, err := svc.Rotate(context.Background(), 5, "Passw0rd!")
	if err != nil {
		t.Fatalf("Rotate error: %v", err)
	}
	if !strings.HasPrefix(key, "am_") {
		t.Fatalf("rotated key %q missing am_ prefix", key)
	}
	expectationsMet(t, mock)
}

func TestAPIKeyRotate_WrongPassword(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	auth := NewAuthService("s")
	svc := NewAPIKeyService(
		repositories.NewAPIKeyRepository(db),
		repositories.NewAccountRepository(db),
		auth,
	)

	hash, err := auth.HashPassword("Passw0rd!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(5).
		WillReturnRows(accountRow(5, "a@b.co", hash, true))

	// no transaction may start on a failed re-confirmation
	if _, err := svc.Rotate(context.Background(), 5, "wrong"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestAPIKeyAuthenticate(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	svc := NewAPIKeyService(
		repositories.NewAPIKeyRepository(db),
		repositories.NewAccountRepository(db),
		NewAuthService("s"),
	)

	mock.ExpectQuery("SELECT user_id FROM api_keys").
		WithArgs("am_known").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(8))
	mock.ExpectQuery("SELECT user_id FROM api_keys").
		WithArgs("am_unknown").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

	id, err := svc.Authenticate(context.Background(), "am_known")
	if err != nil {
		t.Fatalf("Authenticate error: %v", err)
	}
	if id != 8 {
		t.Fatalf("account id mismatch: got %d want 8", id)
	}
	if _, err := svc.Authenticate(context.Background(), "am_unknown"); !errors.Is(err, ErrInvalidAPIKey) {
		t.Fatalf("expected ErrInvalidAPIKey, got %v", err)
	}
	expectationsMet(t, mock)
}

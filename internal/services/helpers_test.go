package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var accountTestColumns = []string{
	"id", "email", "password_hash", "email_verified",
	"verification_token", "verification_expires", "verification_attempts", "last_verification_sent",
	"reset_token", "reset_expires", "reset_attempts", "last_reset_sent",
	"created_at",
}

// accountRow builds a single-account result set with the optional token state
// left NULL.
func accountRow(id int, email, hash string, verified bool) *sqlmock.Rows {
	return sqlmock.NewRows(accountTestColumns).
		AddRow(id, email, hash, verified, nil, nil, 0, nil, nil, nil, 0, nil, time.Now())
}

func accountRowWithVerification(id int, email string, expires time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(accountTestColumns).
		AddRow(id, email, "hash", false, "tok", expires, 1, time.Now(), nil, nil, 0, nil, time.Now())
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

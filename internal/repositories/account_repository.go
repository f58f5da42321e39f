package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"airmailer/internal/models"
)

type AccountRepository interface {
	Create(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, id int) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)

	// verification workflow
	GetByVerificationToken(ctx context.Context, token string) (*models.Account, error)
	MarkVerified(ctx context.Context, id int) error
	BeginVerificationResend(ctx context.Context, id int, token string, expires time.Time) (bool, error)

	// reset workflow
	BeginPasswordReset(ctx context.Context, id int, token string, expires time.Time) (bool, error)
	ConsumeResetToken(ctx context.Context, token, newHash string) (bool, error)

	UpdatePassword(ctx context.Context, id int, hash string) error
}

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{DB: db}
}

const accountColumns = `
	id, email, password_hash, email_verified,
	verification_token, verification_expires, verification_attempts, last_verification_sent,
	reset_token, reset_expires, reset_attempts, last_reset_sent,
	created_at
`

func scanAccount(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	var (
		vt sql.NullString
		ve sql.NullTime
		vs sql.NullTime
		rt sql.NullString
		re sql.NullTime
		rs sql.NullTime
	)
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.EmailVerified,
		&vt, &ve, &a.VerificationAttempts, &vs,
		&rt, &re, &a.ResetAttempts, &rs,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if vt.Valid {
		s := vt.String
		a.VerificationToken = &s
	}
	if ve.Valid {
		t := ve.Time
		a.VerificationExpires = &t
	}
	if vs.Valid {
		t := vs.Time
		a.LastVerificationSent = &t
	}
	if rt.Valid {
		s := rt.String
		a.ResetToken = &s
	}
	if re.Valid {
		t := re.Time
		a.ResetExpires = &t
	}
	if rs.Valid {
		t := rs.Time
		a.LastResetSent = &t
	}
	return a, nil
}

// Create inserts a fresh unverified account. The verification token and its
// expiry are written in the same statement so the pair is never half-set.
func (r *accountRepository) Create(ctx context.Context, a *models.Account) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `
		INSERT INTO users (email, password_hash, verification_token, verification_expires)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, q,
		a.Email,
		a.PasswordHash,
		a.VerificationToken,
		a.VerificationExpires,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("account create: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int) (*models.Account, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `SELECT ` + accountColumns + ` FROM users WHERE id = $1`
	return scanAccount(r.DB.QueryRowContext(ctx, q, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `SELECT ` + accountColumns + ` FROM users WHERE email = $1`
	return scanAccount(r.DB.QueryRowContext(ctx, q, email))
}

func (r *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	return exists, err
}

func (r *accountRepository) GetByVerificationToken(ctx context.Context, token string) (*models.Account, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `SELECT ` + accountColumns + ` FROM users WHERE verification_token = $1`
	return scanAccount(r.DB.QueryRowContext(ctx, q, token))
}

// MarkVerified consumes the verification token: the verified flag flips and
// the token/expiry pair clears in one UPDATE, so the token is never usable twice.
func (r *accountRepository) MarkVerified(ctx context.Context, id int) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `
		UPDATE users
		SET email_verified = TRUE, verification_token = NULL, verification_expires = NULL
		WHERE id = $1
	`
	_, err := r.DB.ExecContext(ctx, q, id)
	return err
}

// BeginVerificationResend is the whole resend rate limit in one statement:
// allowed when nothing was sent yet, the rolling hour has elapsed (counter
// restarts at 1), or fewer than 3 sends happened inside the hour. Zero rows
// affected means throttled. Two concurrent resends cannot both slip under the
// ceiling because the check and the increment are the same write.
func (r *accountRepository) BeginVerificationResend(ctx context.Context, id int, token string, expires time.Time) (bool, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `
		UPDATE users
		SET verification_token = $2,
		    verification_expires = $3,
		    verification_attempts = CASE
		        WHEN last_verification_sent IS NULL
		          OR last_verification_sent <= now() - interval '1 hour' THEN 1
		        ELSE verification_attempts + 1
		    END,
		    last_verification_sent = now()
		WHERE id = $1
		  AND (last_verification_sent IS NULL
		       OR last_verification_sent <= now() - interval '1 hour'
		       OR verification_attempts < 3)
	`
	res, err := r.DB.ExecContext(ctx, q, id, token, expires)
	if err != nil {
		return false, fmt.Errorf("verification resend: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// BeginPasswordReset applies the same atomic throttle to reset requests.
func (r *accountRepository) BeginPasswordReset(ctx context.Context, id int, token string, expires time.Time) (bool, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `
		UPDATE users
		SET reset_token = $2,
		    reset_expires = $3,
		    reset_attempts = CASE
		        WHEN last_reset_sent IS NULL
		          OR last_reset_sent <= now() - interval '1 hour' THEN 1
		        ELSE reset_attempts + 1
		    END,
		    last_reset_sent = now()
		WHERE id = $1
		  AND (last_reset_sent IS NULL
		       OR last_reset_sent <= now() - interval '1 hour'
		       OR reset_attempts < 3)
	`
	res, err := r.DB.ExecContext(ctx, q, id, token, expires)
	if err != nil {
		return false, fmt.Errorf("password reset request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ConsumeResetToken matches token and expiry in the same predicate and clears
// the reset state atomically with the password write. Zero rows means the
// token is unknown, already consumed or expired.
func (r *accountRepository) ConsumeResetToken(ctx context.Context, token, newHash string) (bool, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `
		UPDATE users
		SET password_hash = $2, reset_token = NULL, reset_expires = NULL, reset_attempts = 0
		WHERE reset_token = $1 AND reset_expires > now()
	`
	res, err := r.DB.ExecContext(ctx, q, token, newHash)
	if err != nil {
		return false, fmt.Errorf("reset consume: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id int, hash string) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, hash, id)
	return err
}

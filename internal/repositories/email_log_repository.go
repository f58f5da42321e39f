package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"airmailer/internal/models"
)

type EmailLogRepository interface {
	// Reserve appends a pending row only while the account's calendar-day
	// count is below limit. ok=false means the quota is exhausted.
	Reserve(ctx context.Context, accountID int, recipient string, limit int) (id int64, ok bool, err error)
	MarkSuccess(ctx context.Context, id int64) error
	MarkFailure(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	ListRecent(ctx context.Context, accountID, limit int) ([]*models.EmailLog, error)
}

type emailLogRepository struct {
	DB *sql.DB
}

func NewEmailLogRepository(db *sql.DB) EmailLogRepository {
	return &emailLogRepository{DB: db}
}

// Reserve is the quota gate in a single statement: the day's count (successes
// plus in-flight reservations, store-local calendar day) and the insert happen
// in one conditional INSERT, so two concurrent sends cannot both pass the same
// check before either write lands.
func (r *emailLogRepository) Reserve(ctx context.Context, accountID int, recipient string, limit int) (int64, bool, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `
		INSERT INTO email_logs (user_id, recipient, status)
		SELECT $1, $2, 'pending'
		WHERE (
			SELECT COUNT(*) FROM email_logs
			WHERE user_id = $1
			  AND sent_at >= CURRENT_DATE
			  AND status IN ('pending', 'success')
		) < $3
		RETURNING id
	`
	var id int64
	err := r.DB.QueryRowContext(ctx, q, accountID, recipient, limit).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("dispatch reserve: %w", err)
	}
	return id, true, nil
}

func (r *emailLogRepository) MarkSuccess(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, models.DispatchSuccess)
}

func (r *emailLogRepository) MarkFailure(ctx context.Context, id int64) error {
	return r.setStatus(ctx, id, models.DispatchFailure)
}

func (r *emailLogRepository) setStatus(ctx context.Context, id int64, status string) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `UPDATE email_logs SET status = $1 WHERE id = $2 AND status = 'pending'`
	if _, err := r.DB.ExecContext(ctx, q, status, id); err != nil {
		return fmt.Errorf("dispatch status %s: %w", status, err)
	}
	return nil
}

func (r *emailLogRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	_, err := r.DB.ExecContext(ctx, `DELETE FROM email_logs WHERE id = $1 AND status = 'pending'`, id)
	return err
}

func (r *emailLogRepository) ListRecent(ctx context.Context, accountID, limit int) ([]*models.EmailLog, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `
		SELECT id, user_id, recipient, status, sent_at
		FROM email_logs
		WHERE user_id = $1 AND status <> 'pending'
		ORDER BY sent_at DESC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, q, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("dispatch list: %w", err)
	}
	defer rows.Close()

	var res []*models.EmailLog
	for rows.Next() {
		l := &models.EmailLog{}
		if err := rows.Scan(&l.ID, &l.AccountID, &l.Recipient, &l.Status, &l.SentAt); err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type APIKeyRepository interface {
	Insert(ctx context.Context, accountID int, key string) error
	GetByAccountID(ctx context.Context, accountID int) (string, error)
	GetAccountIDByKey(ctx context.Context, key string) (int, error)
	Rotate(ctx context.Context, accountID int, newKey string) error
}

type apiKeyRepository struct {
	DB *sql.DB
}

func NewAPIKeyRepository(db *sql.DB) APIKeyRepository {
	return &apiKeyRepository{DB: db}
}

func (r *apiKeyRepository) Insert(ctx context.Context, accountID int, key string) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	const q = `INSERT INTO api_keys (user_id, api_key) VALUES ($1, $2)`
	if _, err := r.DB.ExecContext(ctx, q, accountID, key); err != nil {
		return fmt.Errorf("api key insert: %w", err)
	}
	return nil
}

func (r *apiKeyRepository) GetByAccountID(ctx context.Context, accountID int) (string, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var key string
	err := r.DB.QueryRowContext(ctx,
		`SELECT api_key FROM api_keys WHERE user_id = $1`, accountID,
	).Scan(&key)
	return key, err
}

func (r *apiKeyRepository) GetAccountIDByKey(ctx context.Context, key string) (int, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	var id int
	err := r.DB.QueryRowContext(ctx,
		`SELECT user_id FROM api_keys WHERE api_key = $1`, key,
	).Scan(&id)
	return id, err
}

// Rotate replaces the account's key inside one transaction. The delete and
// the insert commit together, so concurrent rotations serialize on the row
// locks and exactly one key survives; the old key is dead the instant the
// transaction commits.
func (r *apiKeyRepository) Rotate(ctx context.Context, accountID int, newKey string) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("api key rotate begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM api_keys WHERE user_id = $1`, accountID); err != nil {
		return fmt.Errorf("api key rotate delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO api_keys (user_id, api_key) VALUES ($1, $2)`, accountID, newKey); err != nil {
		return fmt.Errorf("api key rotate insert: %w", err)
	}
	return tx.Commit()
}

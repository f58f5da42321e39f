package repositories

import (
	"context"
	"time"
)

// Query timeout applied at every store boundary; mirrors the pool's
// statement_timeout so a stuck query surfaces as an error, not a hang.
var QueryTimeout = 10 * time.Second

func withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, QueryTimeout)
}

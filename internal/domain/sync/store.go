package sync

import (
	"context"
	"time"

	"multibank/internal/domain/account"
	"multibank/internal/domain/transaction"
)

// Store opens the database transaction a sync pass stages its writes in.
// Implemented in the infrastructure layer.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one pass's database transaction. The orchestrator is the only
// writer of account and transaction rows system-wide; everything staged
// here either commits atomically or rolls back together.
type Tx interface {
	// AccountExists checks the external id against the whole system,
	// inside this transaction.
	AccountExists(ctx context.Context, externalID string) (bool, error)

	// InsertAccount stages a new account row and returns its internal id.
	InsertAccount(ctx context.Context, params account.CreateParams) (int64, error)

	// TransactionExists checks the external id against the whole system,
	// inside this transaction.
	TransactionExists(ctx context.Context, externalID string) (bool, error)

	// InsertTransaction stages a new transaction row.
	InsertTransaction(ctx context.Context, params transaction.CreateParams) error

	// TouchLastSynced advances the connection's last_synced_at. The value
	// only ever moves forward.
	TouchLastSynced(ctx context.Context, connectionID int64, at time.Time) error

	Commit() error
	Rollback() error
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"multibank/internal/domain/account"
	"multibank/internal/domain/sync"
	"multibank/internal/domain/transaction"
)

// SyncStore implements sync.Store on PostgreSQL. Each Begin opens one
// database transaction; every write of a sync pass goes through the
// returned syncTx so the pass commits or rolls back as a whole.
type SyncStore struct {
	db *DB
}

// NewSyncStore creates a new PostgreSQL sync store
func NewSyncStore(db *DB) *SyncStore {
	return &SyncStore{db: db}
}

// Begin opens the transaction backing one sync pass.
func (s *SyncStore) Begin(ctx context.Context) (sync.Tx, error) {
	tx, err := s.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin sync transaction: %w", err)
	}
	return &syncTx{tx: tx}, nil
}

type syncTx struct {
	tx *sql.Tx
}

func (t *syncTx) AccountExists(ctx context.Context, externalID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE external_account_id = $1)`

	var exists bool
	if err := t.tx.QueryRowContext(ctx, query, externalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}

func (t *syncTx) InsertAccount(ctx context.Context, params account.CreateParams) (int64, error) {
	query := `
		INSERT INTO accounts (user_id, bank_connection_id, external_account_id, account_type,
		                      account_name, currency, balance, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := t.tx.QueryRowContext(
		ctx, query,
		params.UserID, params.BankConnectionID, params.ExternalID, params.AccountType,
		params.AccountName, params.Currency, params.Balance, params.IsActive,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert account: %w", err)
	}

	return id, nil
}

func (t *syncTx) TransactionExists(ctx context.Context, externalID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE external_transaction_id = $1)`

	var exists bool
	if err := t.tx.QueryRowContext(ctx, query, externalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}
	return exists, nil
}

func (t *syncTx) InsertTransaction(ctx context.Context, params transaction.CreateParams) error {
	query := `
		INSERT INTO transactions (user_id, account_id, external_transaction_id, transaction_date,
		                          amount, currency, transaction_type, description, merchant_name,
		                          merchant_category, category, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	var balanceAfter any
	if params.BalanceAfter != nil {
		balanceAfter = *params.BalanceAfter
	}

	_, err := t.tx.ExecContext(
		ctx, query,
		params.UserID, params.AccountID, params.ExternalID, params.TransactionDate,
		params.Amount, params.Currency, params.TransactionType,
		nullString(params.Description), nullString(params.MerchantName),
		nullString(params.MerchantCategory), nullString(params.Category),
		balanceAfter,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

func (t *syncTx) TouchLastSynced(ctx context.Context, connectionID int64, at time.Time) error {
	query := `
		UPDATE bank_connections
		SET last_synced_at = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`

	if _, err := t.tx.ExecContext(ctx, query, at, connectionID); err != nil {
		return fmt.Errorf("failed to update last_synced_at: %w", err)
	}
	return nil
}

func (t *syncTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sync transaction: %w", err)
	}
	return nil
}

func (t *syncTx) Rollback() error {
	return t.tx.Rollback()
}

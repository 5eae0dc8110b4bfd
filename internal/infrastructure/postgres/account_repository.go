package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"multibank/internal/domain/account"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, user_id, bank_connection_id, external_account_id, account_number,
	       account_type, account_name, currency, balance, available_balance, is_active,
	       created_at, updated_at`

// GetByID retrieves an account by its internal ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	acc, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, account.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return acc, nil
}

// ListByUserID retrieves all accounts for a specific user
func (r *AccountRepository) ListByUserID(ctx context.Context, userID int64) ([]*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ListByConnectionID retrieves all accounts under a bank connection
func (r *AccountRepository) ListByConnectionID(ctx context.Context, connectionID int64) ([]*account.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE bank_connection_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by connection: %w", err)
	}
	defer rows.Close()

	return collectAccounts(rows)
}

// ExistsByExternalID checks whether any account carries the given external ID
func (r *AccountRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE external_account_id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, externalID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}

	return exists, nil
}

func scanAccount(s scanner) (*account.Account, error) {
	var acc account.Account
	var accountNumber sql.NullString
	var availableBalance decimal.NullDecimal

	err := s.Scan(
		&acc.ID, &acc.UserID, &acc.BankConnectionID, &acc.ExternalID,
		&accountNumber, &acc.AccountType, &acc.AccountName, &acc.Currency,
		&acc.Balance, &availableBalance, &acc.IsActive,
		&acc.CreatedAt, &acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if accountNumber.Valid {
		acc.AccountNumber = accountNumber.String
	}
	if availableBalance.Valid {
		acc.AvailableBalance = &availableBalance.Decimal
	}

	return &acc, nil
}

func collectAccounts(rows *sql.Rows) ([]*account.Account, error) {
	var accounts []*account.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"multibank/internal/domain/transaction"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, account_id, external_transaction_id, transaction_date,
	       amount, currency, transaction_type, description, merchant_name, merchant_category,
	       category, balance_after, created_at, updated_at`

// GetByID retrieves a transaction by its internal ID
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	txn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// ListByUserID retrieves a user's transactions, newest first. The filter's
// optional fields add WHERE clauses; Limit and Offset page the result.
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	var b strings.Builder
	b.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)

	args := []any{userID}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		b.WriteString(" AND account_id = $" + strconv.Itoa(len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		b.WriteString(" AND category = $" + strconv.Itoa(len(args)))
	}

	b.WriteString(" ORDER BY transaction_date DESC, id DESC")

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		b.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		b.WriteString(" OFFSET $" + strconv.Itoa(len(args)))
	}

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// ExistsByExternalID checks whether any transaction carries the given external ID
func (r *TransactionRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM transactions WHERE external_transaction_id = $1)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, externalID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}

	return exists, nil
}

func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var txn transaction.Transaction
	var description, merchantName, merchantCategory, category sql.NullString
	var balanceAfter decimal.NullDecimal

	err := s.Scan(
		&txn.ID, &txn.UserID, &txn.AccountID, &txn.ExternalID,
		&txn.TransactionDate, &txn.Amount, &txn.Currency, &txn.TransactionType,
		&description, &merchantName, &merchantCategory, &category,
		&balanceAfter, &txn.CreatedAt, &txn.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		txn.Description = description.String
	}
	if merchantName.Valid {
		txn.MerchantName = merchantName.String
	}
	if merchantCategory.Valid {
		txn.MerchantCategory = merchantCategory.String
	}
	if category.Valid {
		txn.Category = category.String
	}
	if balanceAfter.Valid {
		txn.BalanceAfter = &balanceAfter.Decimal
	}

	return &txn, nil
}

// Package transaction holds the transaction domain entity and the
// description-based categorizer.
package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Transaction types derived from the upstream creditDebitIndicator.
const (
	TypeIncome   = "income"
	TypeExpense  = "expense"
	TypeTransfer = "transfer"
)

// Transaction represents a single booked transaction. Rows are immutable:
// a sync pass only ever inserts transactions not yet seen, keyed by
// ExternalID, and never updates existing ones.
type Transaction struct {
	ID               int64            `json:"id"`
	UserID           int64            `json:"userId"`
	AccountID        int64            `json:"accountId"`
	ExternalID       string           `json:"externalTransactionId"`
	TransactionDate  time.Time        `json:"transactionDate"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	TransactionType  string           `json:"transactionType"`
	Description      string           `json:"description,omitempty"`
	MerchantName     string           `json:"merchantName,omitempty"`
	MerchantCategory string           `json:"merchantCategory,omitempty"`
	Category         string           `json:"category,omitempty"`
	BalanceAfter     *decimal.Decimal `json:"balanceAfter"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// CreateParams contains parameters for inserting a newly synced transaction.
type CreateParams struct {
	UserID           int64
	AccountID        int64
	ExternalID       string
	TransactionDate  time.Time
	Amount           decimal.Decimal
	Currency         string
	TransactionType  string
	Description      string
	MerchantName     string
	MerchantCategory string
	Category         string
	BalanceAfter     *decimal.Decimal
}

// TypeFromIndicator maps the upstream creditDebitIndicator to a local
// transaction type. "Credit" means money in; anything else, including an
// absent indicator, is treated as an expense.
func TypeFromIndicator(indicator string) string {
	if indicator == "Credit" {
		return TypeIncome
	}
	return TypeExpense
}

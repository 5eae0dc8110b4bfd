// Package account holds the bank account domain entity.
package account

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrForbidden       = errors.New("access forbidden")
)

// StatusEnabled is the upstream sentinel that marks an account active.
const StatusEnabled = "Enabled"

// Account represents a bank account pulled from a linked bank.
// ExternalID is the bank's own identifier and is unique system-wide;
// it is the idempotency key for sync inserts.
type Account struct {
	ID               int64            `json:"id"`
	UserID           int64            `json:"userId"`
	BankConnectionID int64            `json:"bankConnectionId"`
	ExternalID       string           `json:"externalAccountId"`
	AccountNumber    string           `json:"accountNumber,omitempty"`
	AccountType      string           `json:"accountType"`
	AccountName      string           `json:"accountName"`
	Currency         string           `json:"currency"`
	Balance          decimal.Decimal  `json:"balance"`
	AvailableBalance *decimal.Decimal `json:"availableBalance"`
	IsActive         bool             `json:"isActive"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// CreateParams contains parameters for inserting a newly discovered account.
type CreateParams struct {
	UserID           int64
	BankConnectionID int64
	ExternalID       string
	AccountType      string
	AccountName      string
	Currency         string
	Balance          decimal.Decimal
	IsActive         bool
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.BankConnectionID <= 0 {
		return errors.New("valid bank connection ID is required")
	}
	if p.ExternalID == "" {
		return errors.New("external account ID is required")
	}
	if p.AccountType == "" {
		return errors.New("account type is required")
	}
	if len(p.Currency) != 3 {
		return errors.New("currency must be a 3-letter ISO 4217 code")
	}
	return nil
}

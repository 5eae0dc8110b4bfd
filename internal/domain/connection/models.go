// Package connection holds the bank connection domain entity: one linked
// external bank per user, carrying the encrypted OAuth-style credentials
// the sync engine needs to talk to that bank.
package connection

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("bank connection not found")
)

// BankConnection represents a user's linked external bank.
// AccessToken and RefreshToken are stored encrypted and must be passed
// through the encryptor before use.
type BankConnection struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"userId"`
	BankName       string     `json:"bankName"`
	BankIdentifier string     `json:"bankIdentifier"`
	AccessToken    string     `json:"-"`
	RefreshToken   string     `json:"-"`
	TokenType      string     `json:"tokenType"`
	ExpiresAt      *time.Time `json:"expiresAt"`
	IsActive       bool       `json:"isActive"`
	LastSyncedAt   *time.Time `json:"lastSyncedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateParams contains parameters for linking a new bank.
type CreateParams struct {
	UserID         int64
	BankName       string
	BankIdentifier string
	AccessToken    string // already encrypted
	RefreshToken   string // already encrypted, may be empty
	TokenType      string
	ExpiresAt      *time.Time
}

// Validate validates the create parameters.
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.BankName == "" {
		return errors.New("bank name is required")
	}
	if p.BankIdentifier == "" {
		return errors.New("bank identifier is required")
	}
	if p.AccessToken == "" {
		return errors.New("access token is required")
	}
	if p.TokenType == "" {
		return errors.New("token type is required")
	}
	return nil
}

// NeverSynced reports whether this connection has completed no sync pass yet.
func (c *BankConnection) NeverSynced() bool {
	return c.LastSyncedAt == nil
}

// StaleSince reports whether the connection needs a refresh relative to the
// given cutoff: it has never synced, or its last pass predates the cutoff.
func (c *BankConnection) StaleSince(cutoff time.Time) bool {
	return c.LastSyncedAt == nil || c.LastSyncedAt.Before(cutoff)
}

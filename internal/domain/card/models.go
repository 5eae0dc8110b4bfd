// Package card holds the bank card domain entity. Cards follow the same
// external-id idempotency rules as accounts but are not populated by the
// current sync pipeline.
package card

import (
	"errors"
	"time"
)

var ErrCardNotFound = errors.New("card not found")

// Card represents a bank card attached to an account.
type Card struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	AccountID        int64     `json:"accountId"`
	ExternalID       string    `json:"externalCardId"`
	CardNumberMasked string    `json:"cardNumberMasked"`
	CardType         string    `json:"cardType,omitempty"`
	CardBrand        string    `json:"cardBrand,omitempty"`
	CardHolderName   string    `json:"cardHolderName,omitempty"`
	ExpiryDate       string    `json:"expiryDate,omitempty"` // MM/YYYY
	IsActive         bool      `json:"isActive"`
	IsBlocked        bool      `json:"isBlocked"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

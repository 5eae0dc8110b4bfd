package banking

import (
	"context"
	"time"
)

// ClientInterface defines the contract for the banking API client.
// This allows for mocking in tests and explicit dependency injection into
// the sync orchestrator.
type ClientInterface interface {
	// CreateConsent initiates an access grant for a set of permission
	// scopes on behalf of clientID. A nil permissions slice requests the
	// default scopes.
	CreateConsent(ctx context.Context, accessToken, clientID string, permissions []string) (*ConsentResponse, error)

	// GetAccounts fetches the accounts visible under a consent.
	GetAccounts(ctx context.Context, accessToken, clientID, consentID string) (*AccountsResponse, error)

	// GetBalances fetches the balances for one account.
	GetBalances(ctx context.Context, accessToken, accountID, clientID, consentID string) (*BalancesResponse, error)

	// GetTransactions fetches the transactions for one account, optionally
	// bounded by booking date.
	GetTransactions(ctx context.Context, accessToken, accountID, clientID, consentID string, fromDate, toDate *time.Time) (*TransactionsResponse, error)
}

// Package banking wraps the external Open-Banking-style API: consent
// creation, accounts, balances and transactions. The client normalizes
// failures into APIError / TransportError values and carries no retry
// logic; retries are the orchestrator's call.
package banking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	consentPath      = "/account-consents/request"
	accountsPath     = "/accounts"
	balancesPathFmt  = "/accounts/%s/balances"
	transactionsFmt  = "/accounts/%s/transactions"
	bookingTimeParam = "2006-01-02T15:04:05Z07:00"
)

// DefaultPermissions are the consent scopes the sync pipeline needs.
var DefaultPermissions = []string{
	"ReadAccountsDetail",
	"ReadBalances",
	"ReadTransactionsDetail",
}

// Config holds the client's connection settings.
type Config struct {
	BaseURL        string
	RequestingBank string // sent as X-Requesting-Bank on every call
	Timeout        time.Duration
}

// Client handles communication with the banking API. It holds a single
// reusable http.Client for its lifetime; the host application owns its
// lifecycle and passes it into the sync engine explicitly.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	requestingBank string
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new banking API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:        cfg.BaseURL,
		requestingBank: cfg.RequestingBank,
	}
}

// CreateConsent initiates an access grant for a set of permission scopes.
func (c *Client) CreateConsent(ctx context.Context, accessToken, clientID string, permissions []string) (*ConsentResponse, error) {
	if permissions == nil {
		permissions = DefaultPermissions
	}

	payload := map[string]any{
		"client_id":            clientID,
		"permissions":          permissions,
		"reason":               "Multibank aggregation",
		"requesting_bank":      c.requestingBank,
		"requesting_bank_name": fmt.Sprintf("%s Aggregator", c.requestingBank),
	}

	var resp ConsentResponse
	if err := c.do(ctx, http.MethodPost, consentPath, accessToken, "", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetAccounts fetches the accounts visible under a consent.
func (c *Client) GetAccounts(ctx context.Context, accessToken, clientID, consentID string) (*AccountsResponse, error) {
	params := url.Values{"client_id": {clientID}}

	var resp AccountsResponse
	if err := c.do(ctx, http.MethodGet, accountsPath, accessToken, consentID, params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetBalances fetches the balances for one account.
func (c *Client) GetBalances(ctx context.Context, accessToken, accountID, clientID, consentID string) (*BalancesResponse, error) {
	params := url.Values{"client_id": {clientID}}

	var resp BalancesResponse
	path := fmt.Sprintf(balancesPathFmt, url.PathEscape(accountID))
	if err := c.do(ctx, http.MethodGet, path, accessToken, consentID, params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTransactions fetches the transactions for one account, optionally
// bounded by booking date.
func (c *Client) GetTransactions(ctx context.Context, accessToken, accountID, clientID, consentID string, fromDate, toDate *time.Time) (*TransactionsResponse, error) {
	params := url.Values{"client_id": {clientID}}
	if fromDate != nil {
		params.Set("fromBookingDateTime", fromDate.Format(bookingTimeParam))
	}
	if toDate != nil {
		params.Set("toBookingDateTime", toDate.Format(bookingTimeParam))
	}

	var resp TransactionsResponse
	path := fmt.Sprintf(transactionsFmt, url.PathEscape(accountID))
	if err := c.do(ctx, http.MethodGet, path, accessToken, consentID, params, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs a single bounded request. Transport failures come back as
// *TransportError, non-2xx responses as *APIError with status and raw body.
func (c *Client) do(ctx context.Context, method, path, accessToken, consentID string, params url.Values, payload, out any) error {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", accessToken))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Requesting-Bank", c.requestingBank)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if consentID != "" {
		req.Header.Set("X-Consent-Id", consentID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}

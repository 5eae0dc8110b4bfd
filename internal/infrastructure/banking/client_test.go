package banking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Config{
		BaseURL:        serverURL,
		RequestingBank: "team073",
		Timeout:        5 * time.Second,
	})
}

func TestCreateConsent_Success(t *testing.T) {
	var gotAuth, gotBank string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/account-consents/request" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotBank = r.Header.Get("X-Requesting-Bank")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"consent_id": "consent-123", "status": "Authorised"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.CreateConsent(context.Background(), "tok-1", "client-1", nil)
	if err != nil {
		t.Fatalf("CreateConsent() failed: %v", err)
	}

	id, shape, ok := resp.ExtractConsentID()
	if !ok || id != "consent-123" {
		t.Errorf("ExtractConsentID() = (%q, %q, %v), want consent-123", id, shape, ok)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer tok-1")
	}
	if gotBank != "team073" {
		t.Errorf("X-Requesting-Bank header = %q, want %q", gotBank, "team073")
	}
}

func TestGetAccounts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Consent-Id"); got != "consent-123" {
			t.Errorf("X-Consent-Id header = %q, want consent-123", got)
		}
		if got := r.URL.Query().Get("client_id"); got != "client-1" {
			t.Errorf("client_id param = %q, want client-1", got)
		}
		w.Write([]byte(`{
			"data": {
				"account": [
					{"accountId": "acc-1", "accountType": "Personal", "nickname": "Main", "currency": "RUB", "status": "Enabled"},
					{"accountId": "acc-2", "accountType": "Business", "nickname": "Biz", "currency": "RUB", "status": "Disabled"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.GetAccounts(context.Background(), "tok-1", "client-1", "consent-123")
	if err != nil {
		t.Fatalf("GetAccounts() failed: %v", err)
	}

	if len(resp.Data.Account) != 2 {
		t.Fatalf("got %d accounts, want 2", len(resp.Data.Account))
	}
	if resp.Data.Account[0].AccountID != "acc-1" || resp.Data.Account[0].Status != "Enabled" {
		t.Errorf("unexpected first account: %+v", resp.Data.Account[0])
	}
}

func TestGetBalances_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts/acc-1/balances" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"data": {
				"balance": [
					{"accountId": "acc-1", "amount": {"amount": "1250.75", "currency": "RUB"}, "type": "InterimAvailable"}
				]
			}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.GetBalances(context.Background(), "tok-1", "acc-1", "client-1", "consent-123")
	if err != nil {
		t.Fatalf("GetBalances() failed: %v", err)
	}

	balance, ok := resp.CurrentBalance()
	if !ok {
		t.Fatal("CurrentBalance() reported no balance")
	}
	if balance.String() != "1250.75" {
		t.Errorf("CurrentBalance() = %s, want 1250.75", balance)
	}
}

func TestGetTransactions_DateParams(t *testing.T) {
	var gotFrom, gotTo string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFrom = r.URL.Query().Get("fromBookingDateTime")
		gotTo = r.URL.Query().Get("toBookingDateTime")
		w.Write([]byte(`{"data": {"transaction": []}}`))
	}))
	defer server.Close()

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	client := newTestClient(server.URL)
	_, err := client.GetTransactions(context.Background(), "tok-1", "acc-1", "client-1", "consent-123", &from, &to)
	if err != nil {
		t.Fatalf("GetTransactions() failed: %v", err)
	}

	if gotFrom != "2025-01-01T00:00:00Z" {
		t.Errorf("fromBookingDateTime = %q", gotFrom)
	}
	if gotTo != "2025-02-01T00:00:00Z" {
		t.Errorf("toBookingDateTime = %q", gotTo)
	}
}

func TestDo_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": "consent expired"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetAccounts(context.Background(), "tok-1", "client-1", "consent-old")
	if err == nil {
		t.Fatal("GetAccounts() succeeded, want APIError")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
	if apiErr.Body != `{"error": "consent expired"}` {
		t.Errorf("Body = %q", apiErr.Body)
	}
}

func TestDo_TransportFailure(t *testing.T) {
	// Server closed before the call: connection refused
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetAccounts(context.Background(), "tok-1", "client-1", "consent-123")
	if err == nil {
		t.Fatal("GetAccounts() succeeded, want TransportError")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("error type = %T, want *TransportError", err)
	}
}

func TestCreateConsent_DefaultPermissions(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		decodeJSONBody(t, r, &gotBody)
		w.Write([]byte(`{"consentId": "c-1"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.CreateConsent(context.Background(), "tok-1", "client-1", nil); err != nil {
		t.Fatalf("CreateConsent() failed: %v", err)
	}

	perms, ok := gotBody["permissions"].([]any)
	if !ok || len(perms) != 3 {
		t.Fatalf("permissions = %v, want the 3 default scopes", gotBody["permissions"])
	}
	if gotBody["requesting_bank"] != "team073" {
		t.Errorf("requesting_bank = %v, want team073", gotBody["requesting_bank"])
	}
}

func decodeJSONBody(t *testing.T, r *http.Request, out any) {
	t.Helper()
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
}

package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"multibank/internal/domain/account"
	"multibank/internal/domain/connection"
	"multibank/internal/domain/transaction"
	"multibank/internal/infrastructure/banking"
)

const (
	// Per-pass bounds capping upstream cost per cycle. Accounts beyond the
	// cap are picked up by a later pass once earlier ones exist locally.
	maxAccountsPerPass        = 10
	maxTransactionsPerAccount = 50

	defaultPassTimeout = 5 * time.Minute

	fallbackCurrency    = "RUB"
	fallbackAccountType = "Personal"
)

// ErrSyncInProgress is returned when a pass for the same connection is
// already running in this process.
var ErrSyncInProgress = errors.New("sync already in progress for this connection")

// TokenDecrypter decrypts stored bank credentials. Satisfied by
// crypto.Encryptor.
type TokenDecrypter interface {
	Decrypt(ciphertext string) (string, error)
}

// Config holds orchestrator settings.
type Config struct {
	// ClientID identifies the aggregated client at the bank; sent on every
	// upstream call.
	ClientID string

	// PassTimeout is the overall deadline for one connection's pass,
	// layered over the client's per-request timeout. Zero means the
	// default.
	PassTimeout time.Duration

	// Publisher, when set, receives a CompletedEvent after each committed
	// pass.
	Publisher Publisher
}

// Service drives the consent → accounts → balances → transactions pipeline
// for one bank connection at a time. All collaborators are injected; the
// service owns no global state beyond its per-connection locks.
type Service struct {
	connections connection.Repository
	store       Store
	client      banking.ClientInterface
	tokens      TokenDecrypter
	publisher   Publisher
	clientID    string
	passTimeout time.Duration
	locks       *connectionLocks
}

// NewService creates a sync orchestrator.
func NewService(connections connection.Repository, store Store, client banking.ClientInterface, tokens TokenDecrypter, cfg Config) *Service {
	timeout := cfg.PassTimeout
	if timeout <= 0 {
		timeout = defaultPassTimeout
	}
	return &Service{
		connections: connections,
		store:       store,
		client:      client,
		tokens:      tokens,
		publisher:   cfg.Publisher,
		clientID:    cfg.ClientID,
		passTimeout: timeout,
		locks:       newConnectionLocks(),
	}
}

// SyncConnection runs one sync pass for a connection, scoped to its owning
// user. Returns connection.ErrNotFound when the connection is absent or
// owned by someone else, and ErrSyncInProgress when a concurrent pass
// holds the connection. Any other failure rolls back everything staged and
// yields a Result with StatusError, zero counts and a message, alongside
// the causing error.
func (s *Service) SyncConnection(ctx context.Context, userID, connectionID int64) (*Result, error) {
	if !s.locks.TryAcquire(connectionID) {
		return nil, ErrSyncInProgress
	}
	defer s.locks.Release(connectionID)

	ctx, cancel := context.WithTimeout(ctx, s.passTimeout)
	defer cancel()

	passID := uuid.NewString()

	conn, err := s.connections.GetByIDForUser(ctx, connectionID, userID)
	if err != nil {
		if errors.Is(err, connection.ErrNotFound) {
			return nil, err
		}
		return errResult(fmt.Errorf("failed to load connection: %w", err))
	}

	accessToken, err := s.tokens.Decrypt(conn.AccessToken)
	if err != nil {
		return errResult(fmt.Errorf("failed to decrypt access token: %w", err))
	}

	log.Printf("sync %s: connection %d (user %d, bank %s): starting pass", passID, conn.ID, conn.UserID, conn.BankIdentifier)

	consentResp, err := s.client.CreateConsent(ctx, accessToken, s.clientID, nil)
	if err != nil {
		return errResult(fmt.Errorf("failed to create consent: %w", err))
	}

	consentID, shape, ok := consentResp.ExtractConsentID()
	if !ok {
		// No writes have happened yet; nothing to roll back.
		return errResult(fmt.Errorf("no consent id in consent response (status %q)", consentResp.Status))
	}
	log.Printf("sync %s: consent %s created (shape %s)", passID, consentID, shape)

	accountsResp, err := s.client.GetAccounts(ctx, accessToken, s.clientID, consentID)
	if err != nil {
		return errResult(fmt.Errorf("failed to fetch accounts: %w", err))
	}

	tx, err := s.store.Begin(ctx)
	if err != nil {
		return errResult(fmt.Errorf("failed to begin sync transaction: %w", err))
	}

	counts, err := s.runPass(ctx, tx, conn, accessToken, consentID, accountsResp.Data.Account, passID)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("sync %s: rollback failed: %v", passID, rbErr)
		}
		return errResult(err)
	}

	if err := tx.Commit(); err != nil {
		return errResult(fmt.Errorf("failed to commit sync transaction: %w", err))
	}

	log.Printf("sync %s: connection %d: committed %d accounts, %d transactions",
		passID, conn.ID, counts.Accounts, counts.Transactions)

	s.publishCompleted(ctx, CompletedEvent{
		PassID:       passID,
		ConnectionID: conn.ID,
		UserID:       conn.UserID,
		ConsentID:    consentID,
		Synced:       counts,
		CompletedAt:  time.Now().UTC(),
	})

	return &Result{
		Status:    StatusSuccess,
		Synced:    counts,
		ConsentID: consentID,
	}, nil
}

// runPass stages all inserts for a pass inside tx. A returned error means
// the whole pass must roll back; upstream failures scoped to a single
// account (balance or transaction fetches) are logged and isolated here
// instead of escaping.
func (s *Service) runPass(ctx context.Context, tx Tx, conn *connection.BankConnection, accessToken, consentID string, records []banking.AccountRecord, passID string) (Counts, error) {
	var counts Counts

	if len(records) > maxAccountsPerPass {
		log.Printf("sync %s: capping pass at %d of %d upstream accounts", passID, maxAccountsPerPass, len(records))
		records = records[:maxAccountsPerPass]
	}

	for _, rec := range records {
		if rec.AccountID == "" {
			log.Printf("sync %s: skipping account record without accountId", passID)
			continue
		}

		exists, err := tx.AccountExists(ctx, rec.AccountID)
		if err != nil {
			return counts, fmt.Errorf("failed to check account %s: %w", rec.AccountID, err)
		}
		if exists {
			// Create-only: existing accounts are not refreshed.
			log.Printf("sync %s: account %s already exists, skipping", passID, rec.AccountID)
			continue
		}

		balance := s.fetchBalance(ctx, accessToken, rec.AccountID, consentID, passID)

		params := account.CreateParams{
			UserID:           conn.UserID,
			BankConnectionID: conn.ID,
			ExternalID:       rec.AccountID,
			AccountType:      rec.AccountType,
			AccountName:      rec.Nickname,
			Currency:         rec.Currency,
			Balance:          balance,
			IsActive:         rec.Status == account.StatusEnabled,
		}
		if params.AccountType == "" {
			params.AccountType = fallbackAccountType
		}
		if params.Currency == "" {
			params.Currency = fallbackCurrency
		}

		accountID, err := tx.InsertAccount(ctx, params)
		if err != nil {
			return counts, fmt.Errorf("failed to insert account %s: %w", rec.AccountID, err)
		}
		counts.Accounts++

		inserted, err := s.syncTransactions(ctx, tx, conn, accessToken, consentID, rec.AccountID, accountID, passID)
		if err != nil {
			return counts, err
		}
		counts.Transactions += inserted
	}

	if err := tx.TouchLastSynced(ctx, conn.ID, time.Now().UTC()); err != nil {
		return counts, fmt.Errorf("failed to advance last_synced_at: %w", err)
	}

	return counts, nil
}

// fetchBalance fetches an account's current balance. Any failure here is
// isolated to the account: it logs and defaults the balance to zero rather
// than aborting the connection's pass.
func (s *Service) fetchBalance(ctx context.Context, accessToken, externalID, consentID, passID string) decimal.Decimal {
	resp, err := s.client.GetBalances(ctx, accessToken, externalID, s.clientID, consentID)
	if err != nil {
		log.Printf("sync %s: balance fetch failed for %s, defaulting to zero: %v", passID, externalID, err)
		return decimal.Zero
	}

	balance, ok := resp.CurrentBalance()
	if !ok {
		log.Printf("sync %s: no balance reported for %s, defaulting to zero", passID, externalID)
		return decimal.Zero
	}
	return balance
}

// syncTransactions stages transactions for one newly created account.
// Upstream fetch failures are non-fatal to the rest of the pass; database
// errors propagate and abort it.
func (s *Service) syncTransactions(ctx context.Context, tx Tx, conn *connection.BankConnection, accessToken, consentID, externalAccountID string, accountID int64, passID string) (int, error) {
	resp, err := s.client.GetTransactions(ctx, accessToken, externalAccountID, s.clientID, consentID, nil, nil)
	if err != nil {
		log.Printf("sync %s: transaction fetch failed for %s, continuing: %v", passID, externalAccountID, err)
		return 0, nil
	}

	records := resp.Data.Transaction
	if len(records) > maxTransactionsPerAccount {
		records = records[:maxTransactionsPerAccount]
	}

	inserted := 0
	for _, rec := range records {
		if rec.TransactionID == "" {
			continue
		}

		exists, err := tx.TransactionExists(ctx, rec.TransactionID)
		if err != nil {
			return inserted, fmt.Errorf("failed to check transaction %s: %w", rec.TransactionID, err)
		}
		if exists {
			continue
		}

		amount, err := rec.Amount.Decimal()
		if err != nil {
			return inserted, fmt.Errorf("failed to parse amount for transaction %s: %w", rec.TransactionID, err)
		}
		currency := rec.Amount.Currency
		if currency == "" {
			currency = fallbackCurrency
		}

		date, ok := rec.Date()
		if !ok {
			date = time.Now().UTC()
		}

		params := transaction.CreateParams{
			UserID:          conn.UserID,
			AccountID:       accountID,
			ExternalID:      rec.TransactionID,
			TransactionDate: date,
			Amount:          amount,
			Currency:        currency,
			TransactionType: transaction.TypeFromIndicator(rec.CreditDebitIndicator),
			Description:     rec.TransactionInformation,
			Category:        transaction.Categorize(rec.TransactionInformation),
			BalanceAfter:    rec.BalanceAfter(),
		}
		if rec.MerchantDetails != nil {
			params.MerchantName = rec.MerchantDetails.MerchantName
			params.MerchantCategory = rec.MerchantDetails.MerchantCategoryCode
		}

		if err := tx.InsertTransaction(ctx, params); err != nil {
			return inserted, fmt.Errorf("failed to insert transaction %s: %w", rec.TransactionID, err)
		}
		inserted++
	}

	return inserted, nil
}

func (s *Service) publishCompleted(ctx context.Context, event CompletedEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSyncCompleted(ctx, event); err != nil {
		log.Printf("sync %s: failed to publish completion event: %v", event.PassID, err)
	}
}

// errResult shapes a failed pass: StatusError, zero counts (everything
// staged was rolled back) and the cause as message.
func errResult(err error) (*Result, error) {
	return &Result{
		Status:  StatusError,
		Message: err.Error(),
	}, err
}

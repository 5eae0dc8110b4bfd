package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"multibank/internal/domain/connection"
	"multibank/internal/domain/sync"
)

// ConnectionSyncJob implements the Job interface for refreshing one bank
// connection's accounts and transactions.
type ConnectionSyncJob struct {
	connectionID int64
	userID       int64
	bankName     string
	syncService  *sync.Service
}

// NewConnectionSyncJob creates a sync job for a bank connection
func NewConnectionSyncJob(conn *connection.BankConnection, syncService *sync.Service) *ConnectionSyncJob {
	return &ConnectionSyncJob{
		connectionID: conn.ID,
		userID:       conn.UserID,
		bankName:     conn.BankName,
		syncService:  syncService,
	}
}

// Execute runs one sync pass for the connection. A pass already running
// for the same connection is not an error: the data is being refreshed
// either way, so the job just yields.
func (j *ConnectionSyncJob) Execute(ctx context.Context) error {
	log.Printf("Starting sync for connection %d (%s)", j.connectionID, j.bankName)

	result, err := j.syncService.SyncConnection(ctx, j.userID, j.connectionID)
	if errors.Is(err, sync.ErrSyncInProgress) {
		log.Printf("Sync for connection %d already in progress, skipping", j.connectionID)
		return nil
	}
	if err != nil {
		log.Printf("Sync failed for connection %d (%s): %v", j.connectionID, j.bankName, err)
		return fmt.Errorf("sync failed: %w", err)
	}

	log.Printf("Sync for connection %d (%s) completed: accounts=%d, transactions=%d",
		j.connectionID, j.bankName, result.Synced.Accounts, result.Synced.Transactions)

	return nil
}

// ConnectionID returns the bank connection this job operates on
func (j *ConnectionSyncJob) ConnectionID() int64 {
	return j.connectionID
}

// Description returns a human-readable description of the job
func (j *ConnectionSyncJob) Description() string {
	return fmt.Sprintf("Sync for %s connection %d", j.bankName, j.connectionID)
}

// DueConnectionsProvider builds a job provider that lists active
// connections whose last sync is older than staleAfter (or that have
// never synced) and wraps each in a ConnectionSyncJob.
func DueConnectionsProvider(connections connection.Repository, syncService *sync.Service, staleAfter time.Duration) func(context.Context) ([]Job, error) {
	return func(ctx context.Context) ([]Job, error) {
		staleBefore := time.Now().UTC().Add(-staleAfter)

		due, err := connections.ListDue(ctx, staleBefore)
		if err != nil {
			return nil, fmt.Errorf("failed to list due connections: %w", err)
		}

		jobs := make([]Job, 0, len(due))
		for _, conn := range due {
			jobs = append(jobs, NewConnectionSyncJob(conn, syncService))
		}
		return jobs, nil
	}
}

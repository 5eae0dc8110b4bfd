package account

import "context"

// Repository defines read access to accounts outside a sync pass.
// All writes happen through the sync store so they share the pass's
// database transaction.
type Repository interface {
	// GetByID retrieves an account by its internal ID.
	GetByID(ctx context.Context, id int64) (*Account, error)

	// ListByUserID retrieves all accounts for a specific user.
	ListByUserID(ctx context.Context, userID int64) ([]*Account, error)

	// ListByConnectionID retrieves all accounts under a bank connection.
	ListByConnectionID(ctx context.Context, connectionID int64) ([]*Account, error)

	// ExistsByExternalID checks whether any account in the system carries
	// the given external ID.
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
}

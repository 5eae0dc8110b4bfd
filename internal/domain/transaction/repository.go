package transaction

import "context"

// ListFilter narrows transaction listings.
type ListFilter struct {
	AccountID *int64
	Category  *string
	Limit     int
	Offset    int
}

// Repository defines read access to transactions outside a sync pass.
// Inserts happen exclusively through the sync store; transactions are
// never updated or deleted except via cascading deletes.
type Repository interface {
	// GetByID retrieves a transaction by its internal ID.
	GetByID(ctx context.Context, id int64) (*Transaction, error)

	// ListByUserID retrieves a user's transactions, newest first.
	ListByUserID(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, error)

	// ExistsByExternalID checks whether any transaction in the system
	// carries the given external ID.
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
}

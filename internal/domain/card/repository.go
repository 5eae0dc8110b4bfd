package card

import "context"

// Repository defines the interface for card data access.
type Repository interface {
	// ListByUserID retrieves all cards for a specific user.
	ListByUserID(ctx context.Context, userID int64) ([]*Card, error)

	// ListByAccountID retrieves all cards attached to an account.
	ListByAccountID(ctx context.Context, accountID int64) ([]*Card, error)

	// ExistsByExternalID checks whether any card in the system carries
	// the given external ID.
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)
}

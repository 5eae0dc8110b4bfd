package connection

import (
	"context"
	"time"
)

// Repository defines the interface for bank connection data access.
// This interface is defined in the domain layer, but implemented in the
// infrastructure layer.
type Repository interface {
	// Create links a new bank for a user.
	Create(ctx context.Context, params CreateParams) (*BankConnection, error)

	// GetByIDForUser retrieves a connection scoped to its owning user.
	// Returns ErrNotFound when the connection is absent or owned by
	// someone else, so callers cannot tell the two cases apart.
	GetByIDForUser(ctx context.Context, id, userID int64) (*BankConnection, error)

	// ListByUserID retrieves all connections for a user.
	ListByUserID(ctx context.Context, userID int64) ([]*BankConnection, error)

	// ListDue retrieves active connections that have never synced or whose
	// last sync predates staleBefore.
	ListDue(ctx context.Context, staleBefore time.Time) ([]*BankConnection, error)

	// Deactivate soft-disables a connection. Connections are never deleted
	// directly; removal only happens via user deletion cascades.
	Deactivate(ctx context.Context, id, userID int64) error
}

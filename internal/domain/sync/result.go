// Package sync reconciles a bank connection's remote state into local
// storage: one pass runs consent → accounts → balances → transactions,
// staging idempotent inserts that commit as a single database transaction.
package sync

// Sync pass outcome statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Counts tallies entities inserted during a pass. Counts are authoritative:
// they are only reported after the pass's transaction commits, so an
// aborted pass always reports zeros.
type Counts struct {
	Accounts     int `json:"accounts"`
	Cards        int `json:"cards"`
	Transactions int `json:"transactions"`
}

// Result is the outcome of one sync pass for a single connection.
type Result struct {
	Status    string `json:"status"`
	Synced    Counts `json:"synced"`
	ConsentID string `json:"consentId,omitempty"`
	Message   string `json:"message,omitempty"`
}

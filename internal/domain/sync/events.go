package sync

import (
	"context"
	"time"
)

// CompletedEvent is published after a pass commits successfully.
type CompletedEvent struct {
	PassID       string    `json:"pass_id"`
	ConnectionID int64     `json:"connection_id"`
	UserID       int64     `json:"user_id"`
	ConsentID    string    `json:"consent_id"`
	Synced       Counts    `json:"synced"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Publisher delivers sync events to downstream consumers. Publishing is
// best-effort: a failed publish is logged and never fails the pass that
// already committed.
type Publisher interface {
	PublishSyncCompleted(ctx context.Context, event CompletedEvent) error
}

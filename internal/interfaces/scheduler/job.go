package scheduler

import "context"

// Job represents a unit of work that can be executed by the worker pool.
// The current implementation only produces bank sync jobs, but the interface
// leaves room for other periodic work (cleanup, token refresh).
type Job interface {
	// Execute runs the job with the given context.
	// Context should be respected for cancellation and timeouts.
	Execute(ctx context.Context) error

	// ConnectionID returns the bank connection this job operates on.
	// Used for logging and tracing.
	ConnectionID() int64

	// Description returns a human-readable description of the job.
	// Used for logging purposes.
	Description() string
}

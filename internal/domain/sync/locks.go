package sync

import "sync"

// connectionLocks provides in-process mutual exclusion per connection id.
// Two triggers for the same connection (manual refresh racing the
// scheduler) must not both run a pass: the storage layer's unique
// constraints would save us from duplicate rows, but the loser would waste
// a full round of upstream API calls and surface a constraint violation as
// an error. The second caller gets ErrSyncInProgress instead.
type connectionLocks struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

func newConnectionLocks() *connectionLocks {
	return &connectionLocks{held: make(map[int64]struct{})}
}

// TryAcquire takes the lock for a connection without blocking.
// Returns false when another pass already holds it.
func (l *connectionLocks) TryAcquire(connectionID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.held[connectionID]; taken {
		return false
	}
	l.held[connectionID] = struct{}{}
	return true
}

// Release frees the lock for a connection.
func (l *connectionLocks) Release(connectionID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, connectionID)
}

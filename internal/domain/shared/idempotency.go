package shared

import (
	"context"
	"time"
)

// IdempotencyState is the state of an idempotency key
type IdempotencyState int

const (
	// IdempotencyAbsent means the key was never seen or has expired
	IdempotencyAbsent IdempotencyState = iota
	// IdempotencyPending means a request holding the key is still running
	IdempotencyPending
	// IdempotencyCompleted means a response was recorded for the key
	IdempotencyCompleted
)

// IdempotencyStore records client idempotency keys so a repeated create request
// replays the first response instead of creating a second document
type IdempotencyStore interface {
	// Reserve claims the key for ttl.
	// Returns true if the key was newly claimed, false if it is pending or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Complete records the response payload for a reserved key
	Complete(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Lookup returns the state of the key and, when completed, the recorded payload
	Lookup(ctx context.Context, key string) (IdempotencyState, []byte, error)

	// Release drops a reservation so the key can be retried
	Release(ctx context.Context, key string) error

	// Discard drops the key whatever its state, e.g. when the recorded payload is unreadable
	Discard(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a completed response is replayed
	TTL time.Duration
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL: 24 * time.Hour,
	}
}

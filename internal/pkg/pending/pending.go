package pending

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoAction means no record exists for the key: either none was ever
	// stored, or it was already consumed.
	ErrNoAction = errors.New("pending: no pending action for key")

	// ErrExpired means the record existed but its validity window passed.
	// The record is removed as a side effect of the read that detected it.
	ErrExpired = errors.New("pending: action expired")

	// ErrTooManyAttempts means the record was removed after repeated failed
	// match attempts.
	ErrTooManyAttempts = errors.New("pending: too many failed attempts")
)

// DefaultMaxAttempts caps failed Consume matches before the record is dropped.
const DefaultMaxAttempts = 5

// Store holds expiring pending-action records keyed by a caller-chosen
// identifier (an email address or an order id).
//
// Semantics shared by all drivers:
//   - Put unconditionally replaces any record under the key (last write wins,
//     which is what makes "resend OTP" safe without explicit cancellation).
//   - Expiry is evaluated lazily when a record is read; an expired record is
//     treated as absent and deleted by that read.
//   - For a single key, Consume's lookup, match, and delete are serialized
//     against other calls, so at most one concurrent Consume can succeed.
//
// Records live in process memory (or a cache) only. Losing them on restart is
// an accepted failure mode: the user restarts the flow.
type Store[V any] interface {
	// Put stores value under key with the given time-to-live.
	Put(ctx context.Context, key string, value V, ttl time.Duration) error

	// Get returns the live record for key, or ErrNoAction / ErrExpired.
	Get(ctx context.Context, key string) (V, error)

	// Delete removes the record for key. Removing an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Consume looks up the record and runs match against it.
	//
	// On a nil match result the record is deleted and returned: the record is
	// gone for every later caller, which is the one-shot guarantee. A failed
	// match leaves the record in place (counting the attempt) and returns the
	// match error unchanged, except when the attempt budget is exhausted, in
	// which case the record is dropped and ErrTooManyAttempts is returned.
	Consume(ctx context.Context, key string, match func(V) error) (V, error)
}

type envelope[V any] struct {
	Value     V         `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

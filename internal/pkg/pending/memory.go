package pending

import (
	"context"
	"sync"
	"time"

	"github.com/dailyvegies/api/internal/pkg/clock"
)

// Memory is the default in-process Store driver.
//
// A single mutex guards the table; every operation is short and allocation
// free, so contention is not a concern at this service's request rates. The
// mutex is also what serializes Consume's lookup-match-delete sequence.
type Memory[V any] struct {
	mu          sync.Mutex
	items       map[string]envelope[V]
	clock       clock.Clocker
	maxAttempts int
}

// NewMemory creates an empty in-memory store.
func NewMemory[V any](clk clock.Clocker) *Memory[V] {
	return &Memory[V]{
		items:       make(map[string]envelope[V]),
		clock:       clk,
		maxAttempts: DefaultMaxAttempts,
	}
}

// Put stores value under key, replacing any existing record.
func (m *Memory[V]) Put(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items[key] = envelope[V]{
		Value:     value,
		ExpiresAt: m.clock.Now().Add(ttl),
	}

	return nil
}

// Get returns the live record for key.
func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V

	env, ok := m.items[key]
	if !ok {
		return zero, ErrNoAction
	}

	if !m.clock.Now().Before(env.ExpiresAt) {
		delete(m.items, key)
		return zero, ErrExpired
	}

	return env.Value, nil
}

// Delete removes the record for key.
func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.items, key)
	return nil
}

// Consume runs match against the record under the store lock and deletes the
// record iff match succeeds or the record is spent (expired / over budget).
func (m *Memory[V]) Consume(_ context.Context, key string, match func(V) error) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V

	env, ok := m.items[key]
	if !ok {
		return zero, ErrNoAction
	}

	if !m.clock.Now().Before(env.ExpiresAt) {
		delete(m.items, key)
		return zero, ErrExpired
	}

	if err := match(env.Value); err != nil {
		env.Attempts++
		if env.Attempts >= m.maxAttempts {
			delete(m.items, key)
			return zero, ErrTooManyAttempts
		}
		m.items[key] = env
		return zero, err
	}

	delete(m.items, key)
	return env.Value, nil
}

// Len reports the number of records currently held, counting records whose
// expiry has passed but which no read has evicted yet.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.items)
}

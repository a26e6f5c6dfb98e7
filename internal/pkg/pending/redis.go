package pending

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dailyvegies/api/internal/pkg/clock"
	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

// expiryGrace keeps expired records around long enough for the next read to
// observe them and report ErrExpired instead of ErrNoAction.
const expiryGrace = time.Hour

// casAttempts bounds the optimistic compare-and-swap loop in Consume.
const casAttempts = 5

// Scripts delete or replace a key only when its current value is the one the
// caller observed, which is what serializes Consume across processes.
var (
	scriptCompareDelete = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return -1`)

	scriptCompareReplace = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("SET", KEYS[1], ARGV[2], "KEEPTTL") and 1
end
return -1`)
)

var errConcurrentUpdate = errors.New("pending: record changed concurrently")

// Redis is a Store driver backed by a shared Redis instance, for deployments
// running more than one API replica. Records survive a process restart but
// still honor the same expiry and one-shot semantics as the memory driver.
type Redis[V any] struct {
	client      *redis.Client
	clock       clock.Clocker
	prefix      string
	maxAttempts int
}

// NewRedis creates a Redis-backed store. Keys are namespaced by prefix so
// independent workflows (registration, reset, delivery) cannot collide.
func NewRedis[V any](client *redis.Client, clk clock.Clocker, prefix string) *Redis[V] {
	return &Redis[V]{
		client:      client,
		clock:       clk,
		prefix:      "pending:" + prefix + ":",
		maxAttempts: DefaultMaxAttempts,
	}
}

// Put stores value under key, replacing any existing record.
func (r *Redis[V]) Put(ctx context.Context, key string, value V, ttl time.Duration) error {
	env := envelope[V]{
		Value:     value,
		ExpiresAt: r.clock.Now().Add(ttl),
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("pending: encode record: %w", err)
	}

	return r.client.Set(ctx, r.prefix+key, raw, ttl+expiryGrace).Err()
}

// Get returns the live record for key.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	env, _, err := r.load(ctx, key)
	if err != nil {
		return zero, err
	}

	return env.Value, nil
}

// Delete removes the record for key.
func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.prefix+key).Err()
}

// Consume implements the one-shot read. The read-match-delete sequence uses
// compare-and-swap scripts with a bounded retry, so two concurrent calls for
// the same key resolve to exactly one winner.
func (r *Redis[V]) Consume(ctx context.Context, key string, match func(V) error) (V, error) {
	var (
		zero   V
		result V
	)

	b := retry.WithMaxRetries(casAttempts, retry.NewConstant(time.Millisecond))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		env, raw, err := r.load(ctx, key)
		if err != nil {
			return err
		}

		if merr := match(env.Value); merr != nil {
			env.Attempts++
			if env.Attempts >= r.maxAttempts {
				if derr := r.compareDelete(ctx, key, raw); derr != nil {
					return retry.RetryableError(derr)
				}
				return ErrTooManyAttempts
			}

			next, jerr := json.Marshal(env)
			if jerr != nil {
				return fmt.Errorf("pending: encode record: %w", jerr)
			}
			if rerr := r.compareReplace(ctx, key, raw, next); rerr != nil {
				return retry.RetryableError(rerr)
			}
			return merr
		}

		if derr := r.compareDelete(ctx, key, raw); derr != nil {
			return retry.RetryableError(derr)
		}

		result = env.Value
		return nil
	})
	if err != nil {
		return zero, err
	}

	return result, nil
}

func (r *Redis[V]) load(ctx context.Context, key string) (envelope[V], []byte, error) {
	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return envelope[V]{}, nil, ErrNoAction
	}
	if err != nil {
		return envelope[V]{}, nil, fmt.Errorf("pending: read record: %w", err)
	}

	var env envelope[V]
	if err := json.Unmarshal(raw, &env); err != nil {
		return envelope[V]{}, nil, fmt.Errorf("pending: decode record: %w", err)
	}

	if !r.clock.Now().Before(env.ExpiresAt) {
		// Best effort eviction; the grace TTL removes it regardless.
		_ = r.compareDelete(ctx, key, raw)
		return envelope[V]{}, nil, ErrExpired
	}

	return env, raw, nil
}

func (r *Redis[V]) compareDelete(ctx context.Context, key string, observed []byte) error {
	n, err := scriptCompareDelete.Run(ctx, r.client, []string{r.prefix + key}, observed).Int()
	if err != nil {
		return fmt.Errorf("pending: compare-delete: %w", err)
	}
	if n < 0 {
		return errConcurrentUpdate
	}
	return nil
}

func (r *Redis[V]) compareReplace(ctx context.Context, key string, observed, next []byte) error {
	n, err := scriptCompareReplace.Run(ctx, r.client, []string{r.prefix + key}, observed, next).Int()
	if err != nil {
		return fmt.Errorf("pending: compare-replace: %w", err)
	}
	if n < 0 {
		return errConcurrentUpdate
	}
	return nil
}

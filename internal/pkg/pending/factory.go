package pending

import (
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/dailyvegies/api/internal/pkg/clock"
)

const (
	// DriverMemory selects the in-process backend.
	DriverMemory = "memory"
	// DriverRedis selects the Redis backend.
	DriverRedis = "redis"
)

// ErrUnknownDriver indicates an unsupported pending-store driver.
var ErrUnknownDriver = errors.New("pending: unknown driver")

// FactoryOptions groups configuration for pending-store drivers.
type FactoryOptions struct {
	// Clock provides the time source for expiry checks.
	Clock clock.Clocker
	// Redis is the client used by the Redis backend.
	Redis *redis.Client
	// Prefix namespaces keys when the backend is shared.
	Prefix string
}

// NewFromDriver constructs a Store implementation by driver name. An empty
// driver selects the in-process backend.
func NewFromDriver[V any](driver string, opts FactoryOptions) (Store[V], error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMemory, "":
		return NewMemory[V](opts.Clock), nil
	case DriverRedis:
		if opts.Redis == nil {
			return nil, fmt.Errorf("pending: redis driver requires a client")
		}
		return NewRedis[V](opts.Redis, opts.Clock, opts.Prefix), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

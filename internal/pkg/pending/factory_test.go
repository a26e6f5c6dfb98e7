package pending

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewFromDriver(t *testing.T) {
	t.Run("MemoryDriver", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()

		// Act
		store, err := NewFromDriver[string](DriverMemory, FactoryOptions{Clock: clk})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := store.Put(context.Background(), "k", "v", time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}
		if got, err := store.Get(context.Background(), "k"); err != nil || got != "v" {
			t.Fatalf("expected stored value back, got %q err %v", got, err)
		}
	})

	t.Run("EmptyDriverDefaultsToMemory", func(t *testing.T) {
		// Act
		store, err := NewFromDriver[string]("", FactoryOptions{Clock: newFakeClock()})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if _, ok := store.(*Memory[string]); !ok {
			t.Fatalf("expected the in-process backend, got %T", store)
		}
	})

	t.Run("RedisDriverRequiresAClient", func(t *testing.T) {
		// Act
		_, err := NewFromDriver[string](DriverRedis, FactoryOptions{Clock: newFakeClock()})

		// Assert
		if err == nil {
			t.Fatalf("expected an error without a client")
		}
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		// Act
		_, err := NewFromDriver[string]("memcached", FactoryOptions{Clock: newFakeClock()})

		// Assert
		if !errors.Is(err, ErrUnknownDriver) {
			t.Fatalf("expected ErrUnknownDriver, got %v", err)
		}
	})
}

package pending

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func TestMemoryPutGet(t *testing.T) {
	t.Run("GetReturnsStoredValue", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()
		store := NewMemory[string](clk)
		ctx := context.Background()

		// Act
		if err := store.Put(ctx, "user@mail.com", "record-1", 5*time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := store.Get(ctx, "user@mail.com")

		// Assert
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != "record-1" {
			t.Fatalf("expected record-1, got %q", got)
		}
	})

	t.Run("PutOverwritesExistingRecord", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()
		store := NewMemory[string](clk)
		ctx := context.Background()
		if err := store.Put(ctx, "user@mail.com", "first", time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}

		// Act
		if err := store.Put(ctx, "user@mail.com", "second", time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}
		got, err := store.Get(ctx, "user@mail.com")

		// Assert
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got != "second" {
			t.Fatalf("expected the later record to win, got %q", got)
		}
		if store.Len() != 1 {
			t.Fatalf("expected a single record, got %d", store.Len())
		}
	})

	t.Run("GetUnknownKey", func(t *testing.T) {
		// Arrange
		store := NewMemory[string](newFakeClock())

		// Act
		_, err := store.Get(context.Background(), "nobody@mail.com")

		// Assert
		if !errors.Is(err, ErrNoAction) {
			t.Fatalf("expected ErrNoAction, got %v", err)
		}
	})

	t.Run("GetAfterExpiry", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()
		store := NewMemory[string](clk)
		ctx := context.Background()
		if err := store.Put(ctx, "user@mail.com", "record", 5*time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}

		// Act
		clk.Advance(5 * time.Minute)
		_, err := store.Get(ctx, "user@mail.com")

		// Assert
		if !errors.Is(err, ErrExpired) {
			t.Fatalf("expected ErrExpired, got %v", err)
		}
		if _, err := store.Get(ctx, "user@mail.com"); !errors.Is(err, ErrNoAction) {
			t.Fatalf("expected record evicted after expiry read, got %v", err)
		}
	})
}

func TestMemoryConsume(t *testing.T) {
	t.Run("MatchSuccessDeletesRecord", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()
		store := NewMemory[string](clk)
		ctx := context.Background()
		if err := store.Put(ctx, "k", "v", time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}

		// Act
		got, err := store.Consume(ctx, "k", func(string) error { return nil })

		// Assert
		if err != nil {
			t.Fatalf("consume: %v", err)
		}
		if got != "v" {
			t.Fatalf("expected v, got %q", got)
		}
		if _, err := store.Consume(ctx, "k", func(string) error { return nil }); !errors.Is(err, ErrNoAction) {
			t.Fatalf("expected one-shot consume, second call got %v", err)
		}
	})

	t.Run("MatchFailureKeepsRecord", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()
		store := NewMemory[string](clk)
		ctx := context.Background()
		if err := store.Put(ctx, "k", "v", time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}
		wrong := errors.New("wrong code")

		// Act
		_, err := store.Consume(ctx, "k", func(string) error { return wrong })

		// Assert
		if !errors.Is(err, wrong) {
			t.Fatalf("expected the match error unchanged, got %v", err)
		}
		if _, err := store.Get(ctx, "k"); err != nil {
			t.Fatalf("expected record kept after failed match, got %v", err)
		}
	})

	t.Run("AttemptBudgetExhausted", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()
		store := NewMemory[string](clk)
		ctx := context.Background()
		if err := store.Put(ctx, "k", "v", time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}
		wrong := errors.New("wrong code")

		// Act
		var last error
		for i := 0; i < DefaultMaxAttempts; i++ {
			_, last = store.Consume(ctx, "k", func(string) error { return wrong })
		}

		// Assert
		if !errors.Is(last, ErrTooManyAttempts) {
			t.Fatalf("expected ErrTooManyAttempts on final attempt, got %v", last)
		}
		if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNoAction) {
			t.Fatalf("expected record dropped after budget, got %v", err)
		}
	})

	t.Run("ExpiredRecord", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()
		store := NewMemory[string](clk)
		ctx := context.Background()
		if err := store.Put(ctx, "k", "v", time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}

		// Act
		clk.Advance(2 * time.Minute)
		_, err := store.Consume(ctx, "k", func(string) error { return nil })

		// Assert
		if !errors.Is(err, ErrExpired) {
			t.Fatalf("expected ErrExpired, got %v", err)
		}
	})

	t.Run("ConcurrentConsumeSingleWinner", func(t *testing.T) {
		// Arrange
		clk := newFakeClock()
		store := NewMemory[string](clk)
		ctx := context.Background()
		if err := store.Put(ctx, "k", "v", time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}

		const workers = 16
		var wg sync.WaitGroup
		var mu sync.Mutex
		winners := 0

		// Act
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := store.Consume(ctx, "k", func(string) error { return nil }); err == nil {
					mu.Lock()
					winners++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		// Assert
		if winners != 1 {
			t.Fatalf("expected exactly one winner, got %d", winners)
		}
	})
}

func TestMemoryDelete(t *testing.T) {
	// Arrange
	store := NewMemory[int](newFakeClock())
	ctx := context.Background()
	if err := store.Put(ctx, "k", 7, time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	// Act
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Assert
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrNoAction) {
		t.Fatalf("expected ErrNoAction after delete, got %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("expected deleting absent key to be nil, got %v", err)
	}
}

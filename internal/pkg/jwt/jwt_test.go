package jwt

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

var testSecret = []byte(strings.Repeat("s", 64))

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

type fakeUUID struct{}

func (fakeUUID) Generate() string { return "00000000-0000-0000-0000-000000000001" }

func newSymmetric(t *testing.T, clk *fakeClock) *Symmetric {
	t.Helper()

	s, err := NewHS512(Config{
		Secret:    testSecret,
		Issuer:    "test-issuer",
		Audiences: []string{"test-aud"},
		TTL:       time.Hour,
		Clock:     clk,
		UUID:      fakeUUID{},
	})
	if err != nil {
		t.Fatalf("new hs512: %v", err)
	}

	return s
}

func TestSymmetric(t *testing.T) {
	t.Run("GenerateVerifyRoundTrip", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
		s := newSymmetric(t, clk)

		// Act
		token, err := s.Generate(42, "user@mail.com", "farmer")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		claims, err := s.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if claims.UserID != 42 || claims.UserEmail != "user@mail.com" || claims.UserRole != "farmer" {
			t.Fatalf("unexpected claims: %+v", claims)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
		s := newSymmetric(t, clk)
		token, err := s.Generate(42, "user@mail.com", "consumer")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		// Act
		clk.Advance(2 * time.Hour)
		_, err = s.Verify(token)

		// Assert
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("ForeignSecretRejected", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
		s := newSymmetric(t, clk)

		other, err := NewHS512(Config{
			Secret:    []byte(strings.Repeat("x", 64)),
			Issuer:    "test-issuer",
			Audiences: []string{"test-aud"},
			TTL:       time.Hour,
			Clock:     clk,
			UUID:      fakeUUID{},
		})
		if err != nil {
			t.Fatalf("new hs512: %v", err)
		}

		token, err := other.Generate(42, "user@mail.com", "consumer")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		// Act
		_, err = s.Verify(token)

		// Assert
		if err == nil {
			t.Fatalf("expected verification to fail for a foreign signature")
		}
	})

	t.Run("ShortSecretRefused", func(t *testing.T) {
		// Act
		_, err := NewHS512(Config{Secret: []byte("short")})

		// Assert
		if !errors.Is(err, ErrSigningKeyTooShort) {
			t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
		}
	})
}

func TestContinuation(t *testing.T) {
	newContinuer := func(t *testing.T, clk *fakeClock) *Continuation {
		t.Helper()
		c, err := NewContinuation(testSecret, "test-issuer", clk, fakeUUID{})
		if err != nil {
			t.Fatalf("new continuation: %v", err)
		}
		return c
	}

	t.Run("IssueCheckRoundTrip", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
		c := newContinuer(t, clk)

		// Act
		token, err := c.Issue("user@mail.com", PurposeRegistration, 5*time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		subject, err := c.Check(token, PurposeRegistration)

		// Assert
		if err != nil {
			t.Fatalf("check: %v", err)
		}
		if subject != "user@mail.com" {
			t.Fatalf("expected subject user@mail.com, got %q", subject)
		}
	})

	t.Run("PurposeMismatch", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
		c := newContinuer(t, clk)
		token, err := c.Issue("user@mail.com", PurposeRegistration, 5*time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		// Act
		_, err = c.Check(token, PurposePasswordReset)

		// Assert
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for wrong purpose, got %v", err)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
		c := newContinuer(t, clk)
		token, err := c.Issue("user@mail.com", PurposePasswordReset, 5*time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		// Act
		clk.Advance(6 * time.Minute)
		_, err = c.Check(token, PurposePasswordReset)

		// Assert
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("SessionTokenRejected", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
		s := newSymmetric(t, clk)
		c := newContinuer(t, clk)
		token, err := s.Generate(42, "user@mail.com", "consumer")
		if err != nil {
			t.Fatalf("generate: %v", err)
		}

		// Act
		_, err = c.Check(token, PurposeRegistration)

		// Assert
		if err == nil {
			t.Fatalf("expected a session token to fail continuation check")
		}
	})

	t.Run("GarbageInput", func(t *testing.T) {
		// Arrange
		clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
		c := newContinuer(t, clk)

		// Act
		_, err := c.Check("not-a-token", PurposeRegistration)

		// Assert
		if !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken, got %v", err)
		}
	})
}

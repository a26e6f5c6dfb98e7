package hash

import (
	"testing"
)

func TestBcrypt(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		h := NewBcrypt(4, "pepper")

		// Act
		digest, err := h.Hash("s3cret-pass")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Assert
		if !h.Verify(string(digest), "s3cret-pass") {
			t.Fatalf("expected verify to accept the original plaintext")
		}
		if h.Verify(string(digest), "other-pass") {
			t.Fatalf("expected verify to reject a different plaintext")
		}
	})

	t.Run("PepperMismatch", func(t *testing.T) {
		// Arrange
		h1 := NewBcrypt(4, "pepper-a")
		h2 := NewBcrypt(4, "pepper-b")

		// Act
		digest, err := h1.Hash("s3cret-pass")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Assert
		if h2.Verify(string(digest), "s3cret-pass") {
			t.Fatalf("expected verify to fail under a different pepper")
		}
	})
}

func TestHMACSHA256(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		// Arrange
		h := NewHMACSHA256("secret")

		// Act
		a, err := h.Hash("654321")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}
		b, err := h.Hash("654321")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Assert
		if string(a) != string(b) {
			t.Fatalf("expected identical digests for identical input")
		}
		if !h.Verify(string(a), "654321") {
			t.Fatalf("expected verify to accept the original input")
		}
		if h.Verify(string(a), "123456") {
			t.Fatalf("expected verify to reject a different input")
		}
	})

	t.Run("SecretMismatch", func(t *testing.T) {
		// Arrange
		h1 := NewHMACSHA256("secret-a")
		h2 := NewHMACSHA256("secret-b")

		// Act
		digest, err := h1.Hash("654321")
		if err != nil {
			t.Fatalf("hash: %v", err)
		}

		// Assert
		if h2.Verify(string(digest), "654321") {
			t.Fatalf("expected verify to fail under a different secret")
		}
	})
}

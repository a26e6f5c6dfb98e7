package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// Min is the smallest code Generate can return.
	Min = 100000
	// Max is the largest code Generate can return.
	Max = 999999
)

// Generator produces one-time codes for email verification flows.
type Generator interface {
	// Generate returns a new one-time code.
	Generate() (int, error)
}

// Numeric generates uniformly distributed 6-digit codes from crypto/rand.
//
// A time- or seed-based pseudo-random source is not acceptable here: the code
// is the only secret standing between an attacker and a state change, so it
// must be unpredictable.
type Numeric struct{}

// NewNumeric returns a Numeric generator.
func NewNumeric() *Numeric {
	return &Numeric{}
}

// Generate returns a code in [Min, Max], inclusive.
func (*Numeric) Generate() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(Max-Min+1))
	if err != nil {
		return 0, fmt.Errorf("otp: read random source: %w", err)
	}

	return Min + int(n.Int64()), nil
}

// Format renders a code the way it is shown to users (no padding needed,
// codes never start with zero).
func Format(code int) string {
	return fmt.Sprintf("%06d", code)
}

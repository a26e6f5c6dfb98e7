package clock

import "time"

// Clocker is the time source used by expiring state (pending OTP records,
// signed tokens). Injecting it lets tests move time forward without sleeping.
type Clocker interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

// New returns a SystemClock.
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current system time.
func (*SystemClock) Now() time.Time {
	return time.Now()
}

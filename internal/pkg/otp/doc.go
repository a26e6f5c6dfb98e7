// Package otp generates the short-lived numeric codes mailed to users during
// registration, password reset, and delivery confirmation.
//
// Codes are a shared secret proving control of an email inbox for a bounded
// window; they are not an authentication credential on their own.
package otp

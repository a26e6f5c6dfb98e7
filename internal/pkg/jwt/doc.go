// Package jwt is helpers for working with JSON Web Tokens (JWT).
//
// It includes:
//   - A typed Claims wrapper (registered claims + strongly-typed payload).
//   - A symmetric HS512 implementation for generating and verifying session tokens.
//   - A purpose-bound continuation token for short-lived multi-step flows
//     (registration verification, password reset).
//   - Context helpers for storing and retrieving authenticated claims.
package jwt

package jwt

import (
	"errors"
	"time"

	libJWT "github.com/golang-jwt/jwt/v5"
)

// Continuation token purposes. A token minted for one flow never validates in
// another.
const (
	PurposeRegistration  = "registration"
	PurposePasswordReset = "password_reset"
)

// Continuer mints and checks short-lived continuation tokens. A continuation
// token carries the subject of a pending multi-step flow between the step that
// started it and the step that completes it; it grants no session access.
type Continuer interface {
	// Issue creates a signed token binding subject to purpose for ttl.
	Issue(subject, purpose string, ttl time.Duration) (string, error)
	// Check validates the token for the given purpose and returns its subject.
	Check(tokenStr, purpose string) (string, error)
}

type continuationClaims struct {
	libJWT.RegisteredClaims
	Purpose string `json:"purpose"`
}

// Continuation implements Continuer using the same HS512 signing scheme as the
// session tokens, with an independent secret.
type Continuation struct {
	secret []byte
	issuer string
	clock  clocker
	uuid   generator
}

// NewContinuation constructs a Continuation token signer.
func NewContinuation(secret []byte, issuer string, clk clocker, uuid generator) (*Continuation, error) {
	if len(secret) < 64 {
		return nil, ErrSigningKeyTooShort
	}

	return &Continuation{secret: secret, issuer: issuer, clock: clk, uuid: uuid}, nil
}

// Issue creates a signed continuation token.
func (c *Continuation) Issue(subject, purpose string, ttl time.Duration) (string, error) {
	now := c.clock.Now()

	return libJWT.
		NewWithClaims(libJWT.SigningMethodHS512, continuationClaims{
			RegisteredClaims: libJWT.RegisteredClaims{
				ID:        c.uuid.Generate(),
				Subject:   subject,
				Issuer:    c.issuer,
				IssuedAt:  libJWT.NewNumericDate(now),
				NotBefore: libJWT.NewNumericDate(now),
				ExpiresAt: libJWT.NewNumericDate(now.Add(ttl)),
			},
			Purpose: purpose,
		}).
		SignedString(c.secret)
}

// Check validates a continuation token and returns the subject it was issued
// for. A token signed for a different purpose fails with ErrInvalidToken.
func (c *Continuation) Check(tokenStr, purpose string) (string, error) {
	var claims continuationClaims

	token, err := libJWT.ParseWithClaims(tokenStr, &claims,
		func(t *libJWT.Token) (any, error) {
			if t.Method != libJWT.SigningMethodHS512 {
				return nil, ErrInvalidSigningMethod
			}
			return c.secret, nil
		},
		libJWT.WithIssuer(c.issuer),
		libJWT.WithValidMethods([]string{libJWT.SigningMethodHS512.Alg()}),
		libJWT.WithIssuedAt(),
		libJWT.WithExpirationRequired(),
		libJWT.WithTimeFunc(c.clock.Now),
	)

	if err != nil {
		if errors.Is(err, libJWT.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	if !token.Valid || claims.Purpose != purpose {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/oops"
)

// SessionTokenTTL is the validity window of an issued session token.
const SessionTokenTTL = 24 * time.Hour

// Identity is the user identity carried by a session token.
type Identity struct {
	ID       int64
	Username string
}

// SessionStore issues and verifies session credentials. The stateless
// TokenCodec is the default implementation; a server-side session table
// could replace it without changing the Service contract.
type SessionStore interface {
	// Issue creates a session credential for the identity.
	Issue(identity Identity) (string, error)

	// Verify checks a session credential and returns the identity it
	// carries. Malformed, tampered, and expired credentials all fail
	// with ErrInvalidToken.
	Verify(token string) (Identity, error)

	// Revoke invalidates a session credential, where the mechanism
	// supports it.
	Revoke(token string) error
}

// sessionClaims are the JWT claims of a session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
}

// TokenCodec implements SessionStore with signed, self-contained HS256
// tokens. Tokens are not stored server-side; expiry is enforced here,
// not by callers.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a TokenCodec signing with secret and issuing
// tokens valid for SessionTokenTTL.
func NewTokenCodec(secret []byte) *TokenCodec {
	return NewTokenCodecWithClock(secret, time.Now)
}

// NewTokenCodecWithClock creates a TokenCodec with an injected clock.
// Used by tests to issue tokens in the past.
func NewTokenCodecWithClock(secret []byte, now func() time.Time) *TokenCodec {
	return &TokenCodec{
		secret: secret,
		ttl:    SessionTokenTTL,
		now:    now,
	}
}

// Issue creates a signed token carrying the identity, valid for 24 hours
// from issuance.
func (c *TokenCodec) Issue(identity Identity) (string, error) {
	issuedAt := c.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
		},
		UserID:   identity.ID,
		Username: identity.Username,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", oops.Code("AUTH_TOKEN_ISSUE_FAILED").Wrap(err)
	}
	return signed, nil
}

// Verify parses and validates a token. Signature, shape, and expiry
// failures are indistinguishable to the caller.
func (c *TokenCodec) Verify(tokenString string) (Identity, error) {
	claims := &sessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Identity{}, oops.Code("AUTH_TOKEN_INVALID").Wrap(ErrInvalidToken)
	}
	if !token.Valid {
		return Identity{}, oops.Code("AUTH_TOKEN_INVALID").Wrap(ErrInvalidToken)
	}

	return Identity{ID: claims.UserID, Username: claims.Username}, nil
}

// Revoke is a no-op: signed tokens are stateless and remain valid until
// they expire. Clients discard the token (the cookie is cleared) on
// logout.
func (c *TokenCodec) Revoke(string) error {
	return nil
}

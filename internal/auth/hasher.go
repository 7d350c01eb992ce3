// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package auth

import (
	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the bcrypt work factor used for new password hashes.
const BcryptCost = 10

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = oops.Code("AUTH_EMPTY_PASSWORD").Errorf("password cannot be empty")

// PasswordHasher provides password hashing and verification.
type PasswordHasher interface {
	// Hash produces a salted hash of the password.
	Hash(password string) (string, error)

	// Verify reports whether the password matches the hash. Any
	// verification failure, including a malformed hash, is a mismatch;
	// the distinction is never exposed.
	Verify(password, hash string) bool
}

// BcryptHasher implements PasswordHasher using bcrypt. bcrypt generates
// a fresh random salt on every Hash call.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a BcryptHasher with the standard cost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: BcryptCost}
}

// Hash produces a salted bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", oops.Code("AUTH_HASH_FAILED").Wrap(err)
	}
	return string(hash), nil
}

// Verify reports whether the password matches the bcrypt hash. The
// comparison is performed by bcrypt itself; the hash is never re-derived
// and string-compared.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

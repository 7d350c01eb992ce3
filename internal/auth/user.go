// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package auth

import (
	"context"
	"time"
)

// User represents a registered account. The ID is assigned by storage.
// The password hash is opaque to everything but the PasswordHasher.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity returns the token-carried identity for the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username}
}

// UserRepository manages user persistence. Usernames are unique; the
// storage layer enforces this with a unique index, backing up the
// service's existence check.
type UserRepository interface {
	// Create stores a new user and fills in the storage-assigned ID.
	// Returns ErrUsernameTaken if the username is already present.
	Create(ctx context.Context, user *User) error

	// GetByUsername retrieves a user by exact username.
	// Returns ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package auth

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared between the service, repositories, and the HTTP
// layer. Repositories and the service wrap these with oops codes; callers
// match with errors.Is.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken is returned when registering a username that
	// already exists.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidToken is returned for malformed, tampered, or expired
	// session tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports per-field credential validation failures.
// Fields maps a field name ("username", "password") to a user-facing
// message.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

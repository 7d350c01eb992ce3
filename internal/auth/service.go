// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samber/oops"

	"github.com/secureconnect/secureconnect/pkg/errutil"
)

// dummyPasswordHash is used when a user doesn't exist to prevent timing
// attacks: password verification still runs so the response time does
// not reveal whether the username was found. This is NOT a real
// credential - it is a structurally valid bcrypt hash that matches no
// password anyone would be issued.
//
//nolint:gosec // G101: intentionally fake hash for timing attack prevention, not a credential.
const dummyPasswordHash = "$2a$10$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Service orchestrates registration, login, and session lookup.
type Service struct {
	users    UserRepository
	sessions SessionStore
	hasher   PasswordHasher
	logger   *slog.Logger
}

// NewService creates a Service with the default logger.
func NewService(users UserRepository, sessions SessionStore, hasher PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(users, sessions, hasher, slog.Default())
}

// NewServiceWithLogger creates a Service with an explicit logger.
func NewServiceWithLogger(users UserRepository, sessions SessionStore, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("users repository is required")
	}
	if sessions == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("session store is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Code("AUTH_SERVICE_INVALID").Errorf("logger is required")
	}
	return &Service{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger,
	}, nil
}

// validateCredentials runs both field validators and collects failures
// into a ValidationError. Returns nil when both fields pass.
func validateCredentials(username, password string) *ValidationError {
	fields := make(map[string]string, 2)
	if err := ValidateUsername(username); err != nil {
		fields["username"] = err.Error()
	}
	if err := ValidatePassword(password); err != nil {
		fields["password"] = err.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Register creates a new user account.
//
// Field validation failures return a *ValidationError before any
// repository access. A taken username returns ErrUsernameTaken. The
// username existence check runs before the insert; the repository's
// unique index is the backstop for the window between the two.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if verr := validateCredentials(username, password); verr != nil {
		return nil, verr
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, oops.Code("AUTH_USERNAME_TAKEN").
			With("username", username).
			Wrap(ErrUsernameTaken)
	case !errors.Is(err, ErrNotFound):
		return nil, s.internal("register: look up username", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, s.internal("register: hash password", err)
	}

	user := &User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			// Lost the race between existence check and insert.
			return nil, oops.Code("AUTH_USERNAME_TAKEN").
				With("username", username).
				Wrap(ErrUsernameTaken)
		}
		return nil, s.internal("register: insert user", err)
	}

	s.logger.Info("user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}

// Login authenticates a user and issues a session token.
//
// The same field rules as Register apply first; clients validate too,
// but the server never trusts that. Unknown usernames and wrong
// passwords both fail with ErrInvalidCredentials - password
// verification runs against a dummy hash when the user is absent so the
// two cases take comparable time.
func (s *Service) Login(ctx context.Context, username, password string) (*User, string, error) {
	if verr := validateCredentials(username, password); verr != nil {
		return nil, "", verr
	}

	user, err := s.users.GetByUsername(ctx, username)
	userExists := err == nil
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, "", s.internal("login: look up username", err)
	}

	targetHash := dummyPasswordHash
	if userExists {
		targetHash = user.PasswordHash
	}

	if !s.hasher.Verify(password, targetHash) || !userExists {
		return nil, "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	token, err := s.sessions.Issue(user.Identity())
	if err != nil {
		return nil, "", s.internal("login: issue session token", err)
	}

	s.logger.Info("user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)
	return user, token, nil
}

// CurrentUser resolves a session token to the identity it carries. The
// identity comes from the verified token claims; no repository access
// occurs.
func (s *Service) CurrentUser(token string) (Identity, error) {
	identity, err := s.sessions.Verify(token)
	if err != nil {
		return Identity{}, oops.Code("AUTH_TOKEN_INVALID").Wrap(ErrInvalidToken)
	}
	return identity, nil
}

// Logout revokes a session token where the store supports revocation.
// With the stateless TokenCodec this is a no-op; the HTTP layer clears
// the cookie regardless.
func (s *Service) Logout(token string) error {
	if err := s.sessions.Revoke(token); err != nil {
		return s.internal("logout: revoke token", err)
	}
	return nil
}

// internal logs the underlying failure and returns the generic internal
// error. Callers upstream only ever see "Server error".
func (s *Service) internal(op string, err error) error {
	errutil.LogError(s.logger, op, err)
	return oops.Code("AUTH_INTERNAL").With("operation", op).Wrap(err)
}

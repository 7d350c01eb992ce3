// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SecureConnect Contributors

package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secureconnect/secureconnect/internal/auth"
	"github.com/secureconnect/secureconnect/pkg/errutil"
)

// fakeUserRepo is an in-memory UserRepository that records access.
type fakeUserRepo struct {
	users     map[string]*auth.User
	nextID    int64
	getCalls  int
	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*auth.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *auth.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[user.Username]; ok {
		return auth.ErrUsernameTaken
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.Username] = &stored
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	r.getCalls++
	if r.getErr != nil {
		return nil, r.getErr
	}
	user, ok := r.users[username]
	if !ok {
		return nil, auth.ErrNotFound
	}
	userCopy := *user
	return &userCopy, nil
}

// failingSessionStore fails on Issue to exercise the internal-error path.
type failingSessionStore struct{}

func (failingSessionStore) Issue(auth.Identity) (string, error) {
	return "", errors.New("signer exploded")
}
func (failingSessionStore) Verify(string) (auth.Identity, error) {
	return auth.Identity{}, errors.New("signer exploded")
}
func (failingSessionStore) Revoke(string) error { return errors.New("signer exploded") }

func newTestService(t *testing.T, repo auth.UserRepository) *auth.Service {
	t.Helper()
	svc, err := auth.NewService(repo, auth.NewTokenCodec(testSecret), auth.NewBcryptHasher())
	require.NoError(t, err)
	return svc
}

func TestNewService_NilDependencies(t *testing.T) {
	repo := newFakeUserRepo()
	codec := auth.NewTokenCodec(testSecret)
	hasher := auth.NewBcryptHasher()

	tests := []struct {
		name        string
		users       auth.UserRepository
		sessions    auth.SessionStore
		hasher      auth.PasswordHasher
		expectError string
	}{
		{"nil users repository", nil, codec, hasher, "users repository is required"},
		{"nil session store", repo, nil, hasher, "session store is required"},
		{"nil password hasher", repo, codec, nil, "password hasher is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := auth.NewService(tt.users, tt.sessions, tt.hasher)
			require.Error(t, err)
			assert.Nil(t, svc)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration stores a hashed password", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(t, repo)

		user, err := svc.Register(ctx, "alice1234", "Abcdef1!")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "alice1234", user.Username)
		assert.NotEqual(t, "Abcdef1!", user.PasswordHash)
		assert.True(t, auth.NewBcryptHasher().Verify("Abcdef1!", user.PasswordHash))
	})

	t.Run("validation failure touches no repository", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(t, repo)

		_, err := svc.Register(ctx, "short", "nope")
		require.Error(t, err)

		var verr *auth.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Username must be at least 8 characters long", verr.Fields["username"])
		assert.Equal(t, "Password must contain at least one uppercase letter", verr.Fields["password"])
		assert.Zero(t, repo.getCalls)
	})

	t.Run("both fields empty report required", func(t *testing.T) {
		svc := newTestService(t, newFakeUserRepo())

		_, err := svc.Register(ctx, "", "")
		var verr *auth.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Username is required", verr.Fields["username"])
		assert.Equal(t, "Password is required", verr.Fields["password"])
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(t, repo)

		_, err := svc.Register(ctx, "alice1234", "Abcdef1!")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice1234", "Ghijkl2@")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
		errutil.AssertErrorCode(t, err, "AUTH_USERNAME_TAKEN")
	})

	t.Run("insert race still surfaces as conflict", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.createErr = auth.ErrUsernameTaken
		svc := newTestService(t, repo)

		_, err := svc.Register(ctx, "alice1234", "Abcdef1!")
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
	})

	t.Run("repository failure is generic internal", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.getErr = errors.New("connection refused")
		svc := newTestService(t, repo)

		_, err := svc.Register(ctx, "alice1234", "Abcdef1!")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INTERNAL")
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc *auth.Service) {
		t.Helper()
		_, err := svc.Register(ctx, "alice1234", "Abcdef1!")
		require.NoError(t, err)
	}

	t.Run("successful login returns user and token", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(t, repo)
		register(t, svc)

		user, token, err := svc.Login(ctx, "alice1234", "Abcdef1!")
		require.NoError(t, err)
		assert.Equal(t, "alice1234", user.Username)
		require.NotEmpty(t, token)

		identity, err := auth.NewTokenCodec(testSecret).Verify(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, identity.ID)
		assert.Equal(t, "alice1234", identity.Username)
	})

	t.Run("unknown user and wrong password are indistinguishable", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(t, repo)
		register(t, svc)

		_, _, unknownErr := svc.Login(ctx, "nobody123", "Abcdef1!")
		require.Error(t, unknownErr)
		assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)

		_, _, wrongErr := svc.Login(ctx, "alice1234", "Wrong-pass1!")
		require.Error(t, wrongErr)
		assert.ErrorIs(t, wrongErr, auth.ErrInvalidCredentials)

		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("login re-validates fields server-side", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(t, repo)

		_, _, err := svc.Login(ctx, "alice1234", "alllowercase!")
		var verr *auth.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Password must contain at least one uppercase letter", verr.Fields["password"])
		assert.Zero(t, repo.getCalls)
	})

	t.Run("session issue failure is generic internal", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc, err := auth.NewService(repo, failingSessionStore{}, auth.NewBcryptHasher())
		require.NoError(t, err)

		hash, err := auth.NewBcryptHasher().Hash("Abcdef1!")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, &auth.User{Username: "alice1234", PasswordHash: hash}))

		_, _, err = svc.Login(ctx, "alice1234", "Abcdef1!")
		require.Error(t, err)
		errutil.AssertErrorCode(t, err, "AUTH_INTERNAL")
	})
}

func TestService_CurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(t, repo)

	_, err := svc.Register(context.Background(), "alice1234", "Abcdef1!")
	require.NoError(t, err)

	_, token, err := svc.Login(context.Background(), "alice1234", "Abcdef1!")
	require.NoError(t, err)

	t.Run("valid token resolves identity without repository access", func(t *testing.T) {
		reads := repo.getCalls

		identity, err := svc.CurrentUser(token)
		require.NoError(t, err)
		assert.Equal(t, "alice1234", identity.Username)
		assert.Equal(t, reads, repo.getCalls)
	})

	t.Run("invalid token fails", func(t *testing.T) {
		_, err := svc.CurrentUser("bogus")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
		errutil.AssertErrorCode(t, err, "AUTH_TOKEN_INVALID")
	})
}

func TestService_Logout(t *testing.T) {
	svc := newTestService(t, newFakeUserRepo())
	assert.NoError(t, svc.Logout("any-token"))
}

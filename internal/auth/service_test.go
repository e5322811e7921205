// Copyright (c) 2026 CityInfo API. All rights reserved.

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/apperr"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/dberr"
)

// fakeUserStore is an in-memory UserStore for service tests.
type fakeUserStore struct {
	users      map[string]*User
	nextID     int
	createHits int
	getHits    int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*User{}, nextID: 1}
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*User, error) {
	f.getHits++
	user, ok := f.users[username]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *User) error {
	f.createHits++
	if _, taken := f.users[user.Username]; taken {
		return apperr.Conflict("Resource already exists")
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.Username] = &stored
	return nil
}

// outageUserStore simulates a storage layer that cannot reach the database.
type outageUserStore struct{}

func (outageUserStore) GetByUsername(context.Context, string) (*User, error) {
	return nil, apperr.Internal(errors.New("connection refused"))
}

func (outageUserStore) Create(context.Context, *User) error {
	return apperr.Internal(errors.New("connection refused"))
}

// fakeTokenIssuer produces deterministic tokens for assertions.
type fakeTokenIssuer struct{}

func (fakeTokenIssuer) IssueToken(userID int, _, _ string) (string, error) {
	return "token-for-" + strconv.Itoa(userID), nil
}

func newTestService(store UserStore) *Service {
	return NewService(store, fakeTokenIssuer{}, slog.Default())
}

func TestRegisterThenAuthenticate_RoundTrip(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(store)

	session, err := service.Register(context.Background(), Credentials{
		Username:  "ada",
		Password:  "Abc123!",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada", session.Username)
	assert.Equal(t, "token-for-1", session.Token)

	// The freshly registered credentials must work for login immediately.
	loginSession, err := service.Authenticate(context.Background(), "ada", "Abc123!")
	require.NoError(t, err)
	assert.Equal(t, session.Token, loginSession.Token)
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(store)

	_, err := service.Register(context.Background(), Credentials{
		Username: "ada",
		Password: "Abc123!",
	})
	require.NoError(t, err)

	stored := store.users["ada"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Abc123!", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegister_WeakPassword(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(store)

	_, err := service.Register(context.Background(), Credentials{
		Username: "ada",
		Password: "weak",
	})

	assert.ErrorIs(t, err, ErrWeakPassword)
	assert.Zero(t, store.createHits, "weak password must be rejected before the store is touched")
}

func TestRegister_WeakPasswordReportedBeforeDuplicate(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(store)

	_, err := service.Register(context.Background(), Credentials{Username: "ada", Password: "Abc123!"})
	require.NoError(t, err)

	// Both failures apply; the policy failure wins.
	_, err = service.Register(context.Background(), Credentials{Username: "ada", Password: "weak"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(store)

	_, err := service.Register(context.Background(), Credentials{Username: "ada", Password: "Abc123!"})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), Credentials{Username: "ada", Password: "Xyz789!"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegister_EmptyUsernameRejectedWithoutStoreHit(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(store)

	_, err := service.Register(context.Background(), Credentials{Username: "   ", Password: "Abc123!"})

	assert.ErrorIs(t, err, ErrUserExists)
	assert.Zero(t, store.createHits)
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore()
	service := newTestService(store)

	_, err := service.Register(context.Background(), Credentials{Username: "ada", Password: "Abc123!"})
	require.NoError(t, err)

	_, unknownUserErr := service.Authenticate(context.Background(), "nobody", "Abc123!")
	_, wrongPasswordErr := service.Authenticate(context.Background(), "ada", "Wrong12!")

	require.Error(t, unknownUserErr)
	require.Error(t, wrongPasswordErr)

	// Same client-visible message and status for both failure modes.
	unknownApp := apperr.As(unknownUserErr)
	wrongApp := apperr.As(wrongPasswordErr)
	require.NotNil(t, unknownApp)
	require.NotNil(t, wrongApp)
	assert.Equal(t, unknownApp.Message, wrongApp.Message)
	assert.Equal(t, unknownApp.HTTPStatus, wrongApp.HTTPStatus)
}

func TestAuthenticate_StorageOutageIsNotUnauthorized(t *testing.T) {
	service := newTestService(outageUserStore{})

	_, err := service.Authenticate(context.Background(), "ada", "Abc123!")
	require.Error(t, err)

	// A database outage is a server-side failure. Reporting it as a 401
	// would falsely tell the client their credentials are wrong.
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeInternal, appError.Code)
	assert.GreaterOrEqual(t, appError.HTTPStatus, 500)
}

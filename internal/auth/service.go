// Copyright (c) 2026 CityInfo API. All rights reserved.

package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/apperr"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/sec"
)

// Registration failure codes. These numeric values are part of the public
// signup wire contract.
const (
	RegistrationCodeWeakPassword = 1
	RegistrationCodeUserExists   = 2
)

// Registration failure sentinels, mapped to numeric codes by the HTTP layer.
var (
	// ErrWeakPassword indicates the submitted password failed the policy.
	ErrWeakPassword = errors.New(PasswordPolicyMessage)

	// ErrUserExists indicates the username is taken (or unusable).
	ErrUserExists = errors.New("User already exists.")
)

// TokenIssuer abstracts token creation so the service can be tested without
// real signing keys.
type TokenIssuer interface {
	IssueToken(userID int, firstName, lastName string) (string, error)
}

// Service implements the authentication workflows.
type Service struct {
	store  UserStore
	tokens TokenIssuer
	logger *slog.Logger
}

// NewService wires the authentication service.
func NewService(store UserStore, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

/*
Authenticate verifies a username/password pair and issues a bearer token.

Parameters:
  - ctx: Request context.
  - username, password: Submitted credentials.

Returns:
  - *Session: Username plus a signed bearer token on success.
  - error: One generic Unauthorized error for every CREDENTIAL failure —
    unknown username and wrong password are indistinguishable to the
    caller. Storage failures are not credential failures: they propagate
    unchanged so a database outage surfaces as a 5xx, never a 401.
*/
func (service *Service) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	user, err := service.store.GetByUsername(ctx, username)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeNotFound {
			return nil, apperr.Unauthorized("Invalid username or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		service.logger.WarnContext(ctx, "login_failed",
			slog.String("username", username),
		)
		return nil, apperr.Unauthorized("Invalid username or password")
	}

	token, err := service.tokens.IssueToken(user.ID, user.FirstName, user.LastName)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(ctx, "login_succeeded",
		slog.Int("user_id", user.ID),
	)

	return &Session{Username: user.Username, Token: token}, nil
}

/*
Register creates a new account and immediately authenticates it.

Checks run in a fixed order:
 1. Password strength policy (checked FIRST, before touching the store, so
    a weak password is reported even when the username is also taken).
 2. Username usability: a blank username is rejected as "exists" rather than
    revealing a separate failure mode.
 3. Uniqueness: the database unique index is the authoritative guard; any
    pre-existing row surfaces here as [ErrUserExists].

Returns:
  - *Session: The same shape a successful login returns.
  - error: [ErrWeakPassword], [ErrUserExists], or an internal error.
*/
func (service *Service) Register(ctx context.Context, creds Credentials) (*Session, error) {
	if !IsStrongPassword(creds.Password) {
		return nil, ErrWeakPassword
	}

	username := strings.TrimSpace(creds.Username)
	if username == "" {
		return nil, ErrUserExists
	}

	hash, err := sec.HashPassword(creds.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(creds.FirstName),
		LastName:     strings.TrimSpace(creds.LastName),
	}

	if err := service.store.Create(ctx, user); err != nil {
		appError := apperr.As(err)
		if appError != nil && appError.Code == apperr.CodeConflict {
			return nil, ErrUserExists
		}
		return nil, err
	}

	token, err := service.tokens.IssueToken(user.ID, user.FirstName, user.LastName)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.InfoContext(ctx, "user_registered",
		slog.Int("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return &Session{Username: user.Username, Token: token}, nil
}

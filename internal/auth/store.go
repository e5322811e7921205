// Copyright (c) 2026 CityInfo API. All rights reserved.

package auth

import "context"

// UserStore is the persistence port for user accounts.
//
// # Implementations
//   - PostgresUserStore: production adapter backed by pgx.
//   - In-memory fakes in the service tests.
type UserStore interface {
	// GetByUsername fetches a user by their unique username.
	// Returns dberr.ErrNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create inserts a new user and populates its ID.
	// Returns a Conflict error when the username is already taken; the
	// database unique index is the authoritative duplicate guard.
	Create(ctx context.Context, user *User) error
}

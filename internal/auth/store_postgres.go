// Copyright (c) 2026 CityInfo API. All rights reserved.

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/apperr"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/dberr"
)

// PostgresUserStore implements [UserStore] backed by PostgreSQL.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates the production user store.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

// GetByUsername implements [UserStore].
func (store *PostgresUserStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, password_hash, first_name, last_name
		FROM user_account
		WHERE username = $1`

	var user User
	err := store.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
	)
	if err != nil {
		return nil, dberr.Wrap(err)
	}

	return &user, nil
}

// Create implements [UserStore].
//
// The RETURNING clause populates the generated id; a unique-index violation
// on username surfaces as an apperr Conflict via [dberr.Wrap].
func (store *PostgresUserStore) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO user_account (username, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := store.pool.QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
	).Scan(&user.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("User already exists")
		}
		return dberr.Wrap(err)
	}

	return nil
}

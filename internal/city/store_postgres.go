// Copyright (c) 2026 CityInfo API. All rights reserved.

package city

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/dberr"
	"github.com/Dagore-Avanade/cityinfo/pkg/pagination"
)

// PostgresStore implements [Store] backed by PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the production catalog store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// buildCityFilter translates a [Filter] into a WHERE clause and its args.
//
// The same clause feeds both the count query and the page query, so the
// reported total always matches the filtered set.
func buildCityFilter(filter Filter) (string, []any) {
	var conditions []string
	var args []any

	if name := strings.TrimSpace(filter.Name); name != "" {
		args = append(args, name)
		conditions = append(conditions, fmt.Sprintf("name = $%d", len(args)))
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		placeholder := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR description ILIKE $%d)", placeholder, placeholder,
		))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// ListCities implements [Store].
func (store *PostgresStore) ListCities(ctx context.Context, filter Filter, params pagination.Params) ([]City, int, error) {
	whereClause, args := buildCityFilter(filter)

	// 1. Count the full filtered set. A separate count keeps the total
	// correct even when the requested page is past the last row.
	countQuery := "SELECT count(*) FROM city" + whereClause

	var totalCount int
	if err := store.pool.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, dberr.Wrap(err)
	}

	// 2. Fetch the requested page with a stable ordering.
	pageArgs := append(args, params.PageSize, params.Offset())
	pageQuery := fmt.Sprintf(`
		SELECT id, name, description
		FROM city%s
		ORDER BY name ASC, id ASC
		LIMIT $%d OFFSET $%d`,
		whereClause, len(pageArgs)-1, len(pageArgs),
	)

	rows, err := store.pool.Query(ctx, pageQuery, pageArgs...)
	if err != nil {
		return nil, 0, dberr.Wrap(err)
	}
	defer rows.Close()

	cities := make([]City, 0, params.PageSize)
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, 0, dberr.Wrap(err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err)
	}

	return cities, totalCount, nil
}

// GetCity implements [Store].
func (store *PostgresStore) GetCity(ctx context.Context, cityID int, includePOIs bool) (*City, error) {
	query := `
		SELECT id, name, description
		FROM city
		WHERE id = $1`

	var c City
	err := store.pool.QueryRow(ctx, query, cityID).Scan(&c.ID, &c.Name, &c.Description)
	if err != nil {
		return nil, dberr.Wrap(err)
	}

	if includePOIs {
		pois, err := store.ListPointsOfInterest(ctx, cityID)
		if err != nil {
			return nil, err
		}
		c.PointsOfInterest = pois
	}

	return &c, nil
}

// CityExists implements [Store].
func (store *PostgresStore) CityExists(ctx context.Context, cityID int) (bool, error) {
	var exists bool
	err := store.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM city WHERE id = $1)", cityID,
	).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err)
	}
	return exists, nil
}

// ListPointsOfInterest implements [Store].
func (store *PostgresStore) ListPointsOfInterest(ctx context.Context, cityID int) ([]PointOfInterest, error) {
	query := `
		SELECT id, city_id, name, description
		FROM point_of_interest
		WHERE city_id = $1
		ORDER BY name ASC, id ASC`

	rows, err := store.pool.Query(ctx, query, cityID)
	if err != nil {
		return nil, dberr.Wrap(err)
	}
	defer rows.Close()

	pois := make([]PointOfInterest, 0)
	for rows.Next() {
		var poi PointOfInterest
		if err := rows.Scan(&poi.ID, &poi.CityID, &poi.Name, &poi.Description); err != nil {
			return nil, dberr.Wrap(err)
		}
		pois = append(pois, poi)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err)
	}

	return pois, nil
}

// GetPointOfInterest implements [Store].
func (store *PostgresStore) GetPointOfInterest(ctx context.Context, cityID, poiID int) (*PointOfInterest, error) {
	query := `
		SELECT id, city_id, name, description
		FROM point_of_interest
		WHERE city_id = $1 AND id = $2`

	var poi PointOfInterest
	err := store.pool.QueryRow(ctx, query, cityID, poiID).Scan(
		&poi.ID, &poi.CityID, &poi.Name, &poi.Description,
	)
	if err != nil {
		return nil, dberr.Wrap(err)
	}

	return &poi, nil
}

// NewChangeSet implements [Store].
func (store *PostgresStore) NewChangeSet() ChangeSet {
	return &postgresChangeSet{pool: store.pool}
}

// # Staged Unit of Work

// stagedChange is a single deferred mutation executed inside the commit
// transaction.
type stagedChange func(ctx context.Context, tx pgx.Tx) error

// postgresChangeSet implements [ChangeSet] over a pgx transaction.
type postgresChangeSet struct {
	pool    *pgxpool.Pool
	changes []stagedChange
}

// CreateCity implements [ChangeSet].
func (cs *postgresChangeSet) CreateCity(city *City) {
	cs.changes = append(cs.changes, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO city (name, description)
			 VALUES ($1, $2)
			 RETURNING id`,
			city.Name, city.Description,
		).Scan(&city.ID)
	})
}

// CreatePointOfInterest implements [ChangeSet].
func (cs *postgresChangeSet) CreatePointOfInterest(poi *PointOfInterest) {
	cs.changes = append(cs.changes, func(ctx context.Context, tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO point_of_interest (city_id, name, description)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			poi.CityID, poi.Name, poi.Description,
		).Scan(&poi.ID)
	})
}

// UpdatePointOfInterest implements [ChangeSet].
func (cs *postgresChangeSet) UpdatePointOfInterest(poi *PointOfInterest) {
	cs.changes = append(cs.changes, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE point_of_interest
			 SET name = $1, description = $2
			 WHERE city_id = $3 AND id = $4`,
			poi.Name, poi.Description, poi.CityID, poi.ID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

// DeletePointOfInterest implements [ChangeSet].
func (cs *postgresChangeSet) DeletePointOfInterest(cityID, poiID int) {
	cs.changes = append(cs.changes, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`DELETE FROM point_of_interest
			 WHERE city_id = $1 AND id = $2`,
			cityID, poiID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}

// Len implements [ChangeSet].
func (cs *postgresChangeSet) Len() int {
	return len(cs.changes)
}

// SaveChanges implements [ChangeSet].
func (cs *postgresChangeSet) SaveChanges(ctx context.Context) (int, error) {
	if len(cs.changes) == 0 {
		return 0, nil
	}

	tx, err := cs.pool.Begin(ctx)
	if err != nil {
		return 0, dberr.Wrap(err)
	}
	// Rollback is a no-op after a successful commit.
	defer func() { _ = tx.Rollback(ctx) }()

	for _, change := range cs.changes {
		if err := change(ctx, tx); err != nil {
			return 0, dberr.Wrap(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, dberr.Wrap(err)
	}

	applied := len(cs.changes)
	cs.changes = nil
	return applied, nil
}

// Copyright (c) 2026 CityInfo API. All rights reserved.

package city

import (
	"context"

	"github.com/Dagore-Avanade/cityinfo/pkg/pagination"
)

// Filter narrows a city listing. Both fields are optional and combine with
// AND semantics when both are present.
type Filter struct {
	// Name matches the city name exactly (after trimming whitespace).
	Name string
	// Search matches case-insensitively as a substring of the city name or
	// description.
	Search string
}

// Store is the read-side persistence port for the catalog.
//
// Mutations do not live here: they are staged on a [ChangeSet] obtained from
// NewChangeSet and applied atomically by SaveChanges.
type Store interface {
	// ListCities returns one page of cities (without their POIs) plus the
	// total match count for the same filter.
	//
	// Ordering is stable: name ascending, then id ascending. The total count
	// always reflects the full filtered set, even when the requested page
	// lies beyond the last page and the returned slice is empty.
	ListCities(ctx context.Context, filter Filter, params pagination.Params) ([]City, int, error)

	// GetCity fetches a single city. When includePOIs is true its points of
	// interest are loaded too. Returns dberr.ErrNotFound for unknown ids.
	GetCity(ctx context.Context, cityID int, includePOIs bool) (*City, error)

	// CityExists reports whether a city with the given id exists.
	CityExists(ctx context.Context, cityID int) (bool, error)

	// ListPointsOfInterest returns all POIs of one city, name ascending.
	ListPointsOfInterest(ctx context.Context, cityID int) ([]PointOfInterest, error)

	// GetPointOfInterest fetches one POI scoped to its city. Returns
	// dberr.ErrNotFound when either the city or the POI is unknown.
	GetPointOfInterest(ctx context.Context, cityID, poiID int) (*PointOfInterest, error)

	// NewChangeSet starts an empty unit of work for staged mutations.
	NewChangeSet() ChangeSet
}

// ChangeSet accumulates catalog mutations without touching the database,
// then applies them all inside a single transaction.
//
// # Semantics
//
//   - Staging never performs I/O and never fails.
//   - SaveChanges applies every staged change in staging order, atomically:
//     either all staged changes commit or none do.
//   - SaveChanges returns the number of changes applied. Zero with a nil
//     error means there was nothing to save.
//   - A ChangeSet is single-use: after SaveChanges returns it must be
//     discarded.
type ChangeSet interface {
	// CreateCity stages a city insert. The entity's ID is populated once
	// SaveChanges commits.
	CreateCity(city *City)

	// CreatePointOfInterest stages a POI insert for poi.CityID. The entity's
	// ID is populated once SaveChanges commits.
	CreatePointOfInterest(poi *PointOfInterest)

	// UpdatePointOfInterest stages a full overwrite of the POI identified by
	// poi.CityID and poi.ID.
	UpdatePointOfInterest(poi *PointOfInterest)

	// DeletePointOfInterest stages removal of one POI scoped to its city.
	DeletePointOfInterest(cityID, poiID int)

	// Len reports how many changes are currently staged.
	Len() int

	// SaveChanges applies all staged changes in one transaction and returns
	// how many were applied.
	SaveChanges(ctx context.Context) (int, error)
}

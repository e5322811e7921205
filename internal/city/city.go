// Copyright (c) 2026 CityInfo API. All rights reserved.

/*
Package city implements the catalog domain: cities and their points of
interest.

Layers:

  - city.go: Entities and API input shapes.
  - store.go / store_postgres.go: Persistence port, its PostgreSQL adapter,
    and the staged-change unit of work.
  - service.go: Business workflows (listing, lookups, staged mutations,
    deletion notifications).
  - http.go: Transport layer.
*/
package city

// City is a catalog city. PointsOfInterest is only populated when a caller
// explicitly asks for it; list endpoints return cities without their POIs.
type City struct {
	ID               int               `json:"id"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	PointsOfInterest []PointOfInterest `json:"pointsOfInterest,omitempty"`
}

// NumberOfPointsOfInterest returns the count of loaded points of interest.
func (c *City) NumberOfPointsOfInterest() int {
	return len(c.PointsOfInterest)
}

// PointOfInterest is a visitable site belonging to exactly one city.
type PointOfInterest struct {
	ID          int    `json:"id"`
	CityID      int    `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// # Input Shapes

// CityInput is the payload for creating a city.
type CityInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PointOfInterestInput is the payload for creating or fully replacing a
// point of interest.
type PointOfInterestInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PointOfInterestPatch is the payload for a partial update. Nil fields are
// left untouched; non-nil fields overwrite, including overwriting with an
// empty string.
type PointOfInterestPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

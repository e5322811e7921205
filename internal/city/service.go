// Copyright (c) 2026 CityInfo API. All rights reserved.

package city

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dagore-Avanade/cityinfo/internal/notify"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/apperr"
	"github.com/Dagore-Avanade/cityinfo/pkg/pagination"
)

// Service implements the catalog workflows on top of a [Store].
//
// Every mutation goes through a [ChangeSet]: the service stages the change,
// commits it with SaveChanges, and only then performs side effects such as
// deletion notifications.
type Service struct {
	store    Store
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewService wires the catalog service.
func NewService(store Store, notifier notify.Notifier, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

/*
ListCities returns one page of cities plus the pagination metadata for the
filtered set.

Parameters:
  - filter: Optional exact-name and substring-search constraints.
  - params: Already-clamped page number and size.

Returns:
  - []City: The page, never nil, without POIs.
  - pagination.Metadata: Descriptive totals for the same filter.
  - error: Wrapped storage errors.
*/
func (service *Service) ListCities(ctx context.Context, filter Filter, params pagination.Params) ([]City, pagination.Metadata, error) {
	cities, totalCount, err := service.store.ListCities(ctx, filter, params)
	if err != nil {
		return nil, pagination.Metadata{}, err
	}

	metadata := pagination.NewMetadata(totalCount, params.PageSize, params.PageNumber)
	return cities, metadata, nil
}

// GetCity fetches one city, optionally with its points of interest.
func (service *Service) GetCity(ctx context.Context, cityID int, includePOIs bool) (*City, error) {
	return service.store.GetCity(ctx, cityID, includePOIs)
}

// CreateCity stages and commits a new city.
func (service *Service) CreateCity(ctx context.Context, input CityInput) (*City, error) {
	created := &City{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}

	changes := service.store.NewChangeSet()
	changes.CreateCity(created)

	if _, err := changes.SaveChanges(ctx); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "city_created",
		slog.Int("city_id", created.ID),
		slog.String("name", created.Name),
	)

	return created, nil
}

// ListPointsOfInterest returns all POIs of one city.
//
// The city's existence is verified first so that an unknown city yields a
// 404 rather than an empty list.
func (service *Service) ListPointsOfInterest(ctx context.Context, cityID int) ([]PointOfInterest, error) {
	if err := service.requireCity(ctx, cityID); err != nil {
		return nil, err
	}
	return service.store.ListPointsOfInterest(ctx, cityID)
}

// GetPointOfInterest fetches one POI scoped to its city.
func (service *Service) GetPointOfInterest(ctx context.Context, cityID, poiID int) (*PointOfInterest, error) {
	if err := service.requireCity(ctx, cityID); err != nil {
		return nil, err
	}
	return service.store.GetPointOfInterest(ctx, cityID, poiID)
}

// CreatePointOfInterest stages and commits a new POI under an existing city.
func (service *Service) CreatePointOfInterest(ctx context.Context, cityID int, input PointOfInterestInput) (*PointOfInterest, error) {
	if err := service.requireCity(ctx, cityID); err != nil {
		return nil, err
	}

	created := &PointOfInterest{
		CityID:      cityID,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
	}

	changes := service.store.NewChangeSet()
	changes.CreatePointOfInterest(created)

	if _, err := changes.SaveChanges(ctx); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "poi_created",
		slog.Int("city_id", cityID),
		slog.Int("poi_id", created.ID),
	)

	return created, nil
}

// UpdatePointOfInterest fully replaces an existing POI.
func (service *Service) UpdatePointOfInterest(ctx context.Context, cityID, poiID int, input PointOfInterestInput) (*PointOfInterest, error) {
	existing, err := service.GetPointOfInterest(ctx, cityID, poiID)
	if err != nil {
		return nil, err
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Description = strings.TrimSpace(input.Description)

	changes := service.store.NewChangeSet()
	changes.UpdatePointOfInterest(existing)

	if _, err := changes.SaveChanges(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}

// PatchPointOfInterest applies a partial update. Only non-nil patch fields
// are written; a non-nil empty string overwrites with an empty value.
func (service *Service) PatchPointOfInterest(ctx context.Context, cityID, poiID int, patch PointOfInterestPatch) (*PointOfInterest, error) {
	existing, err := service.GetPointOfInterest(ctx, cityID, poiID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		existing.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		existing.Description = strings.TrimSpace(*patch.Description)
	}

	// The resulting entity must still satisfy the creation rules.
	if existing.Name == "" {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   "name",
			Message: "This field is required",
		})
	}

	changes := service.store.NewChangeSet()
	changes.UpdatePointOfInterest(existing)

	if _, err := changes.SaveChanges(ctx); err != nil {
		return nil, err
	}

	return existing, nil
}

// DeletePointOfInterest removes a POI and announces the removal.
//
// The notification fires only after the transaction commits, and its failure
// never fails the request.
func (service *Service) DeletePointOfInterest(ctx context.Context, cityID, poiID int) error {
	existing, err := service.GetPointOfInterest(ctx, cityID, poiID)
	if err != nil {
		return err
	}

	changes := service.store.NewChangeSet()
	changes.DeletePointOfInterest(cityID, poiID)

	if _, err := changes.SaveChanges(ctx); err != nil {
		return err
	}

	service.logger.InfoContext(ctx, "poi_deleted",
		slog.Int("city_id", cityID),
		slog.Int("poi_id", poiID),
	)

	service.notifier.Send(ctx,
		"Point of interest deleted.",
		fmt.Sprintf("Point of interest %s with id %d was deleted.", existing.Name, existing.ID),
	)

	return nil
}

// requireCity returns a 404 AppError when the city does not exist.
func (service *Service) requireCity(ctx context.Context, cityID int) error {
	exists, err := service.store.CityExists(ctx, cityID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("City")
	}
	return nil
}

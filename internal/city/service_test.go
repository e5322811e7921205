// Copyright (c) 2026 CityInfo API. All rights reserved.

package city

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dagore-Avanade/cityinfo/internal/platform/apperr"
	"github.com/Dagore-Avanade/cityinfo/internal/platform/dberr"
	"github.com/Dagore-Avanade/cityinfo/pkg/pagination"
)

// fakeStore is an in-memory Store with the same ordering and filtering
// semantics as the PostgreSQL adapter.
type fakeStore struct {
	cities     map[int]*City
	pois       map[int]*PointOfInterest
	nextCityID int
	nextPOIID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cities:     map[int]*City{},
		pois:       map[int]*PointOfInterest{},
		nextCityID: 1,
		nextPOIID:  1,
	}
}

func (f *fakeStore) seedCity(name, description string) *City {
	c := &City{ID: f.nextCityID, Name: name, Description: description}
	f.cities[c.ID] = c
	f.nextCityID++
	return c
}

func (f *fakeStore) seedPOI(cityID int, name string) *PointOfInterest {
	p := &PointOfInterest{ID: f.nextPOIID, CityID: cityID, Name: name}
	f.pois[p.ID] = p
	f.nextPOIID++
	return p
}

func (f *fakeStore) matches(c *City, filter Filter) bool {
	if name := strings.TrimSpace(filter.Name); name != "" && c.Name != name {
		return false
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		lowered := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(c.Name), lowered) &&
			!strings.Contains(strings.ToLower(c.Description), lowered) {
			return false
		}
	}
	return true
}

func (f *fakeStore) ListCities(_ context.Context, filter Filter, params pagination.Params) ([]City, int, error) {
	var matched []City
	for _, c := range f.cities {
		if f.matches(c, filter) {
			matched = append(matched, *c)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	offset := params.Offset()
	if offset >= total {
		return []City{}, total, nil
	}

	end := offset + params.PageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (f *fakeStore) GetCity(ctx context.Context, cityID int, includePOIs bool) (*City, error) {
	c, ok := f.cities[cityID]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	copied := *c
	if includePOIs {
		pois, _ := f.ListPointsOfInterest(ctx, cityID)
		copied.PointsOfInterest = pois
	}
	return &copied, nil
}

func (f *fakeStore) CityExists(_ context.Context, cityID int) (bool, error) {
	_, ok := f.cities[cityID]
	return ok, nil
}

func (f *fakeStore) ListPointsOfInterest(_ context.Context, cityID int) ([]PointOfInterest, error) {
	pois := []PointOfInterest{}
	for _, p := range f.pois {
		if p.CityID == cityID {
			pois = append(pois, *p)
		}
	}
	sort.Slice(pois, func(i, j int) bool {
		if pois[i].Name != pois[j].Name {
			return pois[i].Name < pois[j].Name
		}
		return pois[i].ID < pois[j].ID
	})
	return pois, nil
}

func (f *fakeStore) GetPointOfInterest(_ context.Context, cityID, poiID int) (*PointOfInterest, error) {
	p, ok := f.pois[poiID]
	if !ok || p.CityID != cityID {
		return nil, dberr.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeStore) NewChangeSet() ChangeSet {
	return &fakeChangeSet{store: f}
}

// fakeChangeSet mirrors the stage-then-commit contract in memory.
type fakeChangeSet struct {
	store   *fakeStore
	changes []func() error
}

func (cs *fakeChangeSet) CreateCity(city *City) {
	cs.changes = append(cs.changes, func() error {
		city.ID = cs.store.nextCityID
		cs.store.nextCityID++
		stored := *city
		cs.store.cities[city.ID] = &stored
		return nil
	})
}

func (cs *fakeChangeSet) CreatePointOfInterest(poi *PointOfInterest) {
	cs.changes = append(cs.changes, func() error {
		poi.ID = cs.store.nextPOIID
		cs.store.nextPOIID++
		stored := *poi
		cs.store.pois[poi.ID] = &stored
		return nil
	})
}

func (cs *fakeChangeSet) UpdatePointOfInterest(poi *PointOfInterest) {
	cs.changes = append(cs.changes, func() error {
		existing, ok := cs.store.pois[poi.ID]
		if !ok || existing.CityID != poi.CityID {
			return dberr.ErrNotFound
		}
		stored := *poi
		cs.store.pois[poi.ID] = &stored
		return nil
	})
}

func (cs *fakeChangeSet) DeletePointOfInterest(cityID, poiID int) {
	cs.changes = append(cs.changes, func() error {
		existing, ok := cs.store.pois[poiID]
		if !ok || existing.CityID != cityID {
			return dberr.ErrNotFound
		}
		delete(cs.store.pois, poiID)
		return nil
	})
}

func (cs *fakeChangeSet) Len() int { return len(cs.changes) }

func (cs *fakeChangeSet) SaveChanges(_ context.Context) (int, error) {
	if len(cs.changes) == 0 {
		return 0, nil
	}
	for _, change := range cs.changes {
		if err := change(); err != nil {
			return 0, err
		}
	}
	applied := len(cs.changes)
	cs.changes = nil
	return applied, nil
}

// recordingNotifier captures outbound notifications.
type recordingNotifier struct {
	subjects []string
	messages []string
}

func (n *recordingNotifier) Send(_ context.Context, subject, message string) {
	n.subjects = append(n.subjects, subject)
	n.messages = append(n.messages, message)
}

func newTestCatalog() (*Service, *fakeStore, *recordingNotifier) {
	store := newFakeStore()
	notifier := &recordingNotifier{}
	return NewService(store, notifier, slog.Default()), store, notifier
}

func TestListCities_SortedAndPaged(t *testing.T) {
	service, store, _ := newTestCatalog()
	store.seedCity("Paris", "The one with that big tower.")
	store.seedCity("Antwerp", "The one with the cathedral that never really finished.")
	store.seedCity("New York City", "The one with that big park.")

	cities, metadata, err := service.ListCities(context.Background(), Filter{}, pagination.Params{PageNumber: 1, PageSize: 2})
	require.NoError(t, err)

	require.Len(t, cities, 2)
	assert.Equal(t, "Antwerp", cities[0].Name)
	assert.Equal(t, "New York City", cities[1].Name)

	assert.Equal(t, 3, metadata.TotalItemCount)
	assert.Equal(t, 2, metadata.TotalPages)
	assert.Equal(t, 1, metadata.CurrentPage)
}

func TestListCities_FiltersCombineWithAnd(t *testing.T) {
	service, store, _ := newTestCatalog()
	store.seedCity("Paris", "The one with that big tower.")
	store.seedCity("New York City", "The one with that big park.")
	store.seedCity("Antwerp", "Cathedral city.")

	// Search alone matches two cities; adding the exact name narrows to one.
	cities, metadata, err := service.ListCities(context.Background(),
		Filter{Name: "Paris", Search: "big"},
		pagination.Params{PageNumber: 1, PageSize: 10},
	)
	require.NoError(t, err)

	require.Len(t, cities, 1)
	assert.Equal(t, "Paris", cities[0].Name)
	assert.Equal(t, 1, metadata.TotalItemCount)
}

func TestListCities_NameFilterTrimsWhitespace(t *testing.T) {
	service, store, _ := newTestCatalog()
	store.seedCity("Paris", "")

	cities, _, err := service.ListCities(context.Background(),
		Filter{Name: "  Paris  "},
		pagination.Params{PageNumber: 1, PageSize: 10},
	)
	require.NoError(t, err)
	require.Len(t, cities, 1)
}

func TestListCities_PageBeyondLastKeepsTotal(t *testing.T) {
	service, store, _ := newTestCatalog()
	for _, name := range []string{"A", "B", "C"} {
		store.seedCity(name, "")
	}

	cities, metadata, err := service.ListCities(context.Background(), Filter{}, pagination.Params{PageNumber: 100, PageSize: 1})
	require.NoError(t, err)

	assert.Empty(t, cities)
	assert.Equal(t, 3, metadata.TotalItemCount)
	assert.Equal(t, 3, metadata.TotalPages)
	assert.Equal(t, 100, metadata.CurrentPage)
}

func TestGetCity_IncludePOIs(t *testing.T) {
	service, store, _ := newTestCatalog()
	paris := store.seedCity("Paris", "")
	store.seedPOI(paris.ID, "Eiffel Tower")
	store.seedPOI(paris.ID, "The Louvre")

	withPOIs, err := service.GetCity(context.Background(), paris.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, withPOIs.NumberOfPointsOfInterest())

	withoutPOIs, err := service.GetCity(context.Background(), paris.ID, false)
	require.NoError(t, err)
	assert.Empty(t, withoutPOIs.PointsOfInterest)
}

func TestGetCity_UnknownID(t *testing.T) {
	service, _, _ := newTestCatalog()

	_, err := service.GetCity(context.Background(), 404, false)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)
}

func TestCreateCity_TrimsInput(t *testing.T) {
	service, _, _ := newTestCatalog()

	created, err := service.CreateCity(context.Background(), CityInput{
		Name:        "  Paris  ",
		Description: " The one with that big tower. ",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "Paris", created.Name)
	assert.Equal(t, "The one with that big tower.", created.Description)
}

func TestCreatePointOfInterest_UnknownCity(t *testing.T) {
	service, _, _ := newTestCatalog()

	_, err := service.CreatePointOfInterest(context.Background(), 404, PointOfInterestInput{Name: "Nowhere"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeNotFound, appError.Code)
}

func TestUpdatePointOfInterest_FullReplace(t *testing.T) {
	service, store, _ := newTestCatalog()
	paris := store.seedCity("Paris", "")
	poi := store.seedPOI(paris.ID, "Eiffel Tower")
	store.pois[poi.ID].Description = "Iron lattice tower."

	updated, err := service.UpdatePointOfInterest(context.Background(), paris.ID, poi.ID, PointOfInterestInput{
		Name: "Updated Tower",
	})
	require.NoError(t, err)

	// PUT replaces every field; an absent description becomes empty.
	assert.Equal(t, "Updated Tower", updated.Name)
	assert.Empty(t, updated.Description)
}

func TestPatchPointOfInterest_NilFieldsPreserved(t *testing.T) {
	service, store, _ := newTestCatalog()
	paris := store.seedCity("Paris", "")
	poi := store.seedPOI(paris.ID, "Eiffel Tower")
	store.pois[poi.ID].Description = "Iron lattice tower."

	newName := "La Tour Eiffel"
	patched, err := service.PatchPointOfInterest(context.Background(), paris.ID, poi.ID, PointOfInterestPatch{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "La Tour Eiffel", patched.Name)
	assert.Equal(t, "Iron lattice tower.", patched.Description)
}

func TestPatchPointOfInterest_CannotBlankName(t *testing.T) {
	service, store, _ := newTestCatalog()
	paris := store.seedCity("Paris", "")
	poi := store.seedPOI(paris.ID, "Eiffel Tower")

	blank := "   "
	_, err := service.PatchPointOfInterest(context.Background(), paris.ID, poi.ID, PointOfInterestPatch{
		Name: &blank,
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeValidationError, appError.Code)
}

func TestDeletePointOfInterest_NotifiesAfterCommit(t *testing.T) {
	service, store, notifier := newTestCatalog()
	paris := store.seedCity("Paris", "")
	poi := store.seedPOI(paris.ID, "Eiffel Tower")

	err := service.DeletePointOfInterest(context.Background(), paris.ID, poi.ID)
	require.NoError(t, err)

	_, err = service.GetPointOfInterest(context.Background(), paris.ID, poi.ID)
	assert.Error(t, err)

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Eiffel Tower")
}

func TestDeletePointOfInterest_WrongCityScope(t *testing.T) {
	service, store, notifier := newTestCatalog()
	paris := store.seedCity("Paris", "")
	antwerp := store.seedCity("Antwerp", "")
	poi := store.seedPOI(paris.ID, "Eiffel Tower")

	err := service.DeletePointOfInterest(context.Background(), antwerp.ID, poi.ID)
	require.Error(t, err)

	// Nothing was removed and nothing was announced.
	_, err = service.GetPointOfInterest(context.Background(), paris.ID, poi.ID)
	assert.NoError(t, err)
	assert.Empty(t, notifier.messages)
}

func TestChangeSet_NothingToSave(t *testing.T) {
	store := newFakeStore()

	changes := store.NewChangeSet()
	applied, err := changes.SaveChanges(context.Background())

	require.NoError(t, err)
	assert.Zero(t, applied)
}

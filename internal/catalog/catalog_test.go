package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// referencedServices wraps a ServiceRepository and reports every service as
// referenced by a booking.
type referencedServices struct {
	ServiceRepository
}

func (referencedServices) ReferencedByBooking(ctx context.Context, id string) (bool, error) {
	return true, nil
}

func seededCatalog() Catalog {
	return New(
		NewMemoryServiceRepository(SampleServices()...),
		NewMemoryProviderRepository(SampleProviders()...),
	)
}

func strPtr(s string) *string { return &s }

func TestProvidersForOrdering(t *testing.T) {
	ctx := context.Background()
	cat := seededCatalog()

	providers, err := cat.ProvidersFor(ctx, "1")
	require.NoError(t, err)
	require.Len(t, providers, 2, "services 1 is offered by Jane Smith and Michael Johnson")

	// Best rated first.
	assert.Equal(t, "Jane Smith", providers[0].DisplayName)
	assert.Equal(t, "Michael Johnson", providers[1].DisplayName)

	_, err = cat.ProvidersFor(ctx, "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProvidersForRatingTieBreak(t *testing.T) {
	ctx := context.Background()
	cat := New(
		NewMemoryServiceRepository(&Service{ID: "1", Title: "Wash", Category: CategoryCarWash, Price: 10, DurationMinutes: 30}),
		NewMemoryProviderRepository(
			&Provider{ID: "10", DisplayName: "Last", ServiceIDs: []string{"1"}, Rating: 4.5},
			&Provider{ID: "9", DisplayName: "Later", ServiceIDs: []string{"1"}, Rating: 4.5},
			&Provider{ID: "2", DisplayName: "Earlier", ServiceIDs: []string{"1"}, Rating: 4.5},
		),
	)

	providers, err := cat.ProvidersFor(ctx, "1")
	require.NoError(t, err)
	require.Len(t, providers, 3)
	// Equal ratings fall back to id order; integer keys compare numerically,
	// so "10" sorts after "9".
	assert.Equal(t, "2", providers[0].ID)
	assert.Equal(t, "9", providers[1].ID)
	assert.Equal(t, "10", providers[2].ID)
}

func TestProvidersForListsAllCandidates(t *testing.T) {
	ctx := context.Background()
	cat := New(
		NewMemoryServiceRepository(&Service{ID: "1", Title: "Wash", Category: CategoryCarWash, Price: 10, DurationMinutes: 30}),
		NewMemoryProviderRepository(),
	)
	const total = 120
	for i := 0; i < total; i++ {
		_, err := cat.CreateProvider(ctx, CreateProviderRequest{
			DisplayName: fmt.Sprintf("Pro %03d", i),
			ServiceIDs:  []string{"1"},
			Rating:      float64(i%5) + 0.5,
		})
		require.NoError(t, err)
	}

	providers, err := cat.ProvidersFor(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, providers, total, "the wizard sees every candidate, not one page")
}

func TestCreateServiceValidation(t *testing.T) {
	ctx := context.Background()
	cat := seededCatalog()

	_, err := cat.CreateService(ctx, CreateServiceRequest{Title: " ", Category: "car-wash", Price: 10, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = cat.CreateService(ctx, CreateServiceRequest{Title: "X", Category: "plumbing", Price: 10, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, err = cat.CreateService(ctx, CreateServiceRequest{Title: "X", Category: "car-wash", Price: -1, DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = cat.CreateService(ctx, CreateServiceRequest{Title: "X", Category: "car-wash", Price: 10, DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidDuration)

	svc, err := cat.CreateService(ctx, CreateServiceRequest{Title: "Engine Bay Detail", Category: "car-wash", Price: 59.99, DurationMinutes: 45})
	require.NoError(t, err)
	assert.NotEmpty(t, svc.ID)
}

func TestServiceImmutableOnceBooked(t *testing.T) {
	ctx := context.Background()
	cat := New(
		referencedServices{NewMemoryServiceRepository(SampleServices()...)},
		NewMemoryProviderRepository(SampleProviders()...),
	)

	_, err := cat.UpdateService(ctx, "1", UpdateServiceRequest{Title: strPtr("Renamed")})
	assert.ErrorIs(t, err, ErrInUse)

	err = cat.DeleteService(ctx, "1")
	assert.ErrorIs(t, err, ErrInUse)

	// Reads are unaffected.
	svc, err := cat.GetService(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Premium Car Wash", svc.Title)
}

func TestCreateProviderValidation(t *testing.T) {
	ctx := context.Background()
	cat := seededCatalog()

	_, err := cat.CreateProvider(ctx, CreateProviderRequest{DisplayName: "", ServiceIDs: []string{"1"}})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = cat.CreateProvider(ctx, CreateProviderRequest{DisplayName: "New Pro", ServiceIDs: nil})
	assert.ErrorIs(t, err, ErrNoServices)

	_, err = cat.CreateProvider(ctx, CreateProviderRequest{DisplayName: "New Pro", ServiceIDs: []string{"999"}})
	assert.ErrorIs(t, err, ErrNotFound, "every supported service must exist")

	_, err = cat.CreateProvider(ctx, CreateProviderRequest{DisplayName: "New Pro", ServiceIDs: []string{"1"}, Rating: 9})
	assert.ErrorIs(t, err, ErrInvalidRating)

	p, err := cat.CreateProvider(ctx, CreateProviderRequest{DisplayName: "New Pro", ServiceIDs: []string{"1", "2"}, Rating: 4.5})
	require.NoError(t, err)
	assert.True(t, p.Supports("1"))
	assert.False(t, p.Supports("4"))
}

func TestUpdateProvider(t *testing.T) {
	ctx := context.Background()
	cat := seededCatalog()

	p, err := cat.UpdateProvider(ctx, "1", UpdateProviderRequest{DisplayName: strPtr("Jane A. Smith")})
	require.NoError(t, err)
	assert.Equal(t, "Jane A. Smith", p.DisplayName)
	assert.Equal(t, []string{"1", "2", "3"}, p.ServiceIDs, "nil service list leaves support unchanged")

	_, err = cat.UpdateProvider(ctx, "1", UpdateProviderRequest{ServiceIDs: []string{"999"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

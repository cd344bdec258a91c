package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makingbetter/serveconnect-backend/internal/catalog"
)

func testService(t *testing.T) *service {
	t.Helper()
	cat := catalog.New(
		catalog.NewMemoryServiceRepository(catalog.SampleServices()...),
		catalog.NewMemoryProviderRepository(catalog.SampleProviders()...),
	)
	return &service{
		repo:    NewMemoryRepository(),
		catalog: cat,
		// Wednesday.
		now: func() time.Time { return time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC) },
	}
}

func validRequest() CreateRequest {
	return CreateRequest{
		ClientID:   "client-1",
		ServiceID:  "1",
		ProviderID: "1",
		Date:       time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		Slot:       "9:00 AM",
	}
}

func TestCreateBooking(t *testing.T) {
	s := testService(t)

	b, err := s.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Premium Car Wash", b.ServiceTitle)
	assert.Equal(t, "Jane Smith", b.ProviderName)
	assert.Equal(t, StatusUpcoming, b.Status)
	assert.Equal(t, "9:00 AM", b.StartTime)
	assert.Equal(t, "10:00 AM", b.EndTime, "end follows the service duration")
}

func TestCreateBookingScheduleRules(t *testing.T) {
	s := testService(t)

	req := validRequest()
	req.Date = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC) // Saturday
	_, err := s.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateNotSelectable)

	req = validRequest()
	req.Date = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC) // today
	_, err = s.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateNotSelectable)

	req = validRequest()
	req.Slot = "7:00 AM"
	_, err = s.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestCreateBookingProviderMismatch(t *testing.T) {
	s := testService(t)

	req := validRequest()
	req.ProviderID = "3" // home-cleaning provider, service 1 is a car wash
	_, err := s.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceMismatch)
}

func TestCreateBookingUnknownReferences(t *testing.T) {
	s := testService(t)

	req := validRequest()
	req.ServiceID = "999"
	_, err := s.Create(context.Background(), req)
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	req = validRequest()
	req.ProviderID = "999"
	_, err = s.Create(context.Background(), req)
	assert.ErrorIs(t, err, catalog.ErrProviderNotFound)
}

func TestCreateBookingSlotConflict(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	_, err := s.Create(ctx, validRequest())
	require.NoError(t, err)

	// Same provider, date and slot.
	req := validRequest()
	req.ClientID = "client-2"
	_, err = s.Create(ctx, req)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// A different slot on the same day is fine.
	req.Slot = "10:00 AM"
	_, err = s.Create(ctx, req)
	assert.NoError(t, err)

	// Same slot with a different provider offering the service is fine too.
	req = validRequest()
	req.ProviderID = "2"
	_, err = s.Create(ctx, req)
	assert.NoError(t, err)
}

func TestCancelledBookingFreesSlot(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	b, err := s.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = s.Cancel(ctx, b.ID, "client-1", false)
	require.NoError(t, err)

	req := validRequest()
	req.ClientID = "client-2"
	_, err = s.Create(ctx, req)
	assert.NoError(t, err, "cancelled bookings do not block the slot")
}

func TestCancelPermissions(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	b, err := s.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = s.Cancel(ctx, b.ID, "someone-else", false)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Admins may cancel any booking.
	got, err := s.Cancel(ctx, b.ID, "someone-else", true)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	// Cancelling twice is idempotent.
	got, err = s.Cancel(ctx, b.ID, "client-1", false)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

func TestSetStatus(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	b, err := s.Create(ctx, validRequest())
	require.NoError(t, err)

	got, err := s.SetStatus(ctx, b.ID, StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)

	_, err = s.SetStatus(ctx, b.ID, Status("bogus"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestBookedServiceBecomesImmutable(t *testing.T) {
	ctx := context.Background()

	// Wire the catalog to the booking store the way demo mode does, so the
	// once-booked immutability rule applies without a database.
	repo := NewMemoryRepository()
	services := catalog.NewMemoryServiceRepositoryWithBookings(
		func(ctx context.Context, serviceID string) (bool, error) {
			_, total, err := repo.List(ctx, Filter{ServiceID: serviceID, PageSize: 1})
			return total > 0, err
		},
		catalog.SampleServices()...,
	)
	cat := catalog.New(services, catalog.NewMemoryProviderRepository(catalog.SampleProviders()...))
	s := &service{
		repo:    repo,
		catalog: cat,
		now:     func() time.Time { return time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC) },
	}

	// Before any booking the catalog is freely editable.
	title := "Premium Car Wash Deluxe"
	_, err := cat.UpdateService(ctx, "1", catalog.UpdateServiceRequest{Title: &title})
	require.NoError(t, err)

	_, err = s.Create(ctx, validRequest())
	require.NoError(t, err)

	_, err = cat.UpdateService(ctx, "1", catalog.UpdateServiceRequest{Title: &title})
	assert.ErrorIs(t, err, catalog.ErrInUse)
	err = cat.DeleteService(ctx, "1")
	assert.ErrorIs(t, err, catalog.ErrInUse)

	// Services without bookings stay editable.
	err = cat.DeleteService(ctx, "2")
	assert.NoError(t, err)
}

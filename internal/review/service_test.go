package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/booking"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
)

type fixture struct {
	reviews   Service
	bookings  booking.Service
	providers catalog.ProviderRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	providerRepo := catalog.NewMemoryProviderRepository(catalog.SampleProviders()...)
	cat := catalog.New(catalog.NewMemoryServiceRepository(catalog.SampleServices()...), providerRepo)
	bookings := booking.NewService(booking.NewMemoryRepository(), cat)

	return &fixture{
		reviews:   NewService(NewMemoryRepository(), bookings, providerRepo, zap.NewNop()),
		bookings:  bookings,
		providers: providerRepo,
	}
}

func nextWeekday() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// completedBooking creates and completes a booking for provider 1 / service 1.
func (f *fixture) completedBooking(t *testing.T, clientID, slot string) *booking.Booking {
	t.Helper()
	ctx := context.Background()

	b, err := f.bookings.Create(ctx, booking.CreateRequest{
		ClientID:   clientID,
		ServiceID:  "1",
		ProviderID: "1",
		Date:       nextWeekday(),
		Slot:       slot,
	})
	require.NoError(t, err)

	b, err = f.bookings.SetStatus(ctx, b.ID, booking.StatusCompleted)
	require.NoError(t, err)
	return b
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.completedBooking(t, "client-1", "9:00 AM")

	rv, err := f.reviews.Create(ctx, "client-1", CreateRequest{
		BookingID: b.ID,
		Rating:    5,
		Comment:   "Spotless.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, rv.ID)
	assert.Equal(t, "1", rv.ProviderID)
	assert.Equal(t, "1", rv.ServiceID)

	// The provider's average rating now reflects the review.
	p, err := f.providers.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.InDelta(t, 5.0, p.Rating, 0.001)
}

func TestCreateReviewRecomputesAverage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b1 := f.completedBooking(t, "client-1", "9:00 AM")
	b2 := f.completedBooking(t, "client-2", "10:00 AM")

	_, err := f.reviews.Create(ctx, "client-1", CreateRequest{BookingID: b1.ID, Rating: 5})
	require.NoError(t, err)
	_, err = f.reviews.Create(ctx, "client-2", CreateRequest{BookingID: b2.ID, Rating: 2})
	require.NoError(t, err)

	p, err := f.providers.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.InDelta(t, 3.5, p.Rating, 0.001)
}

func TestCreateReviewGuards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := f.completedBooking(t, "client-1", "9:00 AM")

	_, err := f.reviews.Create(ctx, "client-1", CreateRequest{BookingID: b.ID, Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = f.reviews.Create(ctx, "client-1", CreateRequest{BookingID: b.ID, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = f.reviews.Create(ctx, "someone-else", CreateRequest{BookingID: b.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = f.reviews.Create(ctx, "client-1", CreateRequest{BookingID: "999", Rating: 4})
	assert.ErrorIs(t, err, booking.ErrNotFound)

	// One review per booking.
	_, err = f.reviews.Create(ctx, "client-1", CreateRequest{BookingID: b.ID, Rating: 4})
	require.NoError(t, err)
	_, err = f.reviews.Create(ctx, "client-1", CreateRequest{BookingID: b.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewRequiresCompletedBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b, err := f.bookings.Create(ctx, booking.CreateRequest{
		ClientID:   "client-1",
		ServiceID:  "1",
		ProviderID: "1",
		Date:       nextWeekday(),
		Slot:       "11:00 AM",
	})
	require.NoError(t, err)

	_, err = f.reviews.Create(ctx, "client-1", CreateRequest{BookingID: b.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrBookingNotCompleted)
}

func TestListReviews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	b := f.completedBooking(t, "client-1", "9:00 AM")
	_, err := f.reviews.Create(ctx, "client-1", CreateRequest{BookingID: b.ID, Rating: 5})
	require.NoError(t, err)

	reviews, total, err := f.reviews.List(ctx, Filter{ProviderID: "1"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)

	reviews, total, err = f.reviews.List(ctx, Filter{ProviderID: "2"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, reviews)
}

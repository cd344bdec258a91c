package submission

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/booking"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
	"github.com/makingbetter/serveconnect-backend/internal/notify"
)

type fakeMailer struct {
	sent []notify.EmailMessage
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, msg notify.EmailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// failingBookingService rejects every creation, simulating an unreachable or
// refusing persistence layer.
type failingBookingService struct {
	booking.Service
	createCalls int
}

func (f *failingBookingService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	f.createCalls++
	return nil, errors.New("database unavailable")
}

func testCatalog() catalog.Catalog {
	return catalog.New(
		catalog.NewMemoryServiceRepository(catalog.SampleServices()...),
		catalog.NewMemoryProviderRepository(catalog.SampleProviders()...),
	)
}

// nextWeekday returns the first weekday strictly after today, keeping the
// tests independent of when they run.
func nextWeekday() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func validDraft() Draft {
	date := nextWeekday()
	return Draft{
		ServiceID:  "1",
		ProviderID: "1",
		Date:       &date,
		TimeSlot:   "9:00 AM",
		Contact: &Contact{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Phone:   "555-0100",
			Address: "12 Main St",
		},
	}
}

func newTestPipeline(mailer notify.EmailSender) (*Pipeline, booking.Service) {
	cat := testCatalog()
	bookings := booking.NewService(booking.NewMemoryRepository(), cat)
	p := NewPipeline(cat, bookings, mailer, zap.NewNop(), "bookings@example.com", 0)
	return p, bookings
}

func TestDraftValidateOrder(t *testing.T) {
	date := nextWeekday()

	tests := []struct {
		name      string
		mutate    func(*Draft)
		wantField string
	}{
		{"missing service", func(d *Draft) { d.ServiceID = "" }, "service"},
		{"missing provider", func(d *Draft) { d.ProviderID = "" }, "provider"},
		{"missing date", func(d *Draft) { d.Date = nil }, "date"},
		{"missing time", func(d *Draft) { d.TimeSlot = "" }, "time"},
		{"missing contact", func(d *Draft) { d.Contact = nil }, "contact"},
		{"blank name", func(d *Draft) { d.Contact.Name = "  " }, "contact name"},
		{"bad email", func(d *Draft) { d.Contact.Email = "not-an-email" }, "contact email"},
		{"missing phone", func(d *Draft) { d.Contact.Phone = "" }, "contact phone"},
		{"missing address", func(d *Draft) { d.Contact.Address = "" }, "contact address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.Date = &date
			tt.mutate(&d)

			err := d.Validate()
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}

	d := validDraft()
	assert.NoError(t, d.Validate())
}

func TestSubmitIncompleteDraftContactsNothing(t *testing.T) {
	mailer := &fakeMailer{}
	bookings := &failingBookingService{}
	p := NewPipeline(testCatalog(), bookings, mailer, zap.NewNop(), "bookings@example.com", 0)

	d := validDraft()
	d.Contact = nil

	_, err := p.Submit(context.Background(), "client-1", d)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Empty(t, mailer.sent, "no email on a locally rejected draft")
	assert.Zero(t, bookings.createCalls, "no persistence call on a locally rejected draft")
}

func TestSubmitSuccess(t *testing.T) {
	mailer := &fakeMailer{}
	p, _ := newTestPipeline(mailer)

	conf, err := p.Submit(context.Background(), "client-1", validDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, conf.BookingID)
	assert.Equal(t, "Premium Car Wash", conf.ServiceTitle)
	assert.Equal(t, "Jane Smith", conf.ProviderName)
	assert.InDelta(t, 49.99, conf.Price, 0.001)
	assert.Equal(t, "9:00 AM", conf.TimeSlot)

	require.Len(t, mailer.sent, 1, "exactly one notification email")
	msg := mailer.sent[0]
	assert.Equal(t, "bookings@example.com", msg.To)
	assert.Contains(t, msg.Subject, "Premium Car Wash")
	assert.Contains(t, msg.Body, "49.99")
	assert.Contains(t, msg.Body, "Jane Smith")
	assert.Contains(t, msg.Body, "Jane Doe")
	assert.Contains(t, msg.Body, "9:00 AM")
	assert.Contains(t, msg.Body, "None provided", "empty notes are spelled out")
}

func TestSubmitSlotConflict(t *testing.T) {
	mailer := &fakeMailer{}
	p, _ := newTestPipeline(mailer)

	_, err := p.Submit(context.Background(), "client-1", validDraft())
	require.NoError(t, err)

	// Same provider, date and slot from another client.
	_, err = p.Submit(context.Background(), "client-2", validDraft())

	var sErr *SubmissionError
	require.ErrorAs(t, err, &sErr)
	assert.ErrorIs(t, err, booking.ErrSlotTaken)
	assert.Len(t, mailer.sent, 1, "no email for the rejected duplicate")
}

func TestSubmitPersistenceFailure(t *testing.T) {
	mailer := &fakeMailer{}
	bookings := &failingBookingService{}
	p := NewPipeline(testCatalog(), bookings, mailer, zap.NewNop(), "bookings@example.com", 0)

	_, err := p.Submit(context.Background(), "client-1", validDraft())

	var sErr *SubmissionError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "could not complete your booking", sErr.Message)
	assert.Empty(t, mailer.sent, "no email when nothing was persisted")
}

func TestSubmitNotificationFailureIsNonFatal(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	p, bookings := newTestPipeline(mailer)

	conf, err := p.Submit(context.Background(), "client-1", validDraft())
	require.NoError(t, err, "persistence is authoritative")
	assert.NotEmpty(t, conf.BookingID)

	// The booking row exists despite the failed email.
	b, err := bookings.GetByID(context.Background(), conf.BookingID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusUpcoming, b.Status)
}

func TestSubmitUnknownService(t *testing.T) {
	mailer := &fakeMailer{}
	p, _ := newTestPipeline(mailer)

	d := validDraft()
	d.ServiceID = "999"

	_, err := p.Submit(context.Background(), "client-1", d)

	var sErr *SubmissionError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "selected service is no longer available", sErr.Message)
	assert.Empty(t, mailer.sent)
}

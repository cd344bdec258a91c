package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/booking"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
	"github.com/makingbetter/serveconnect-backend/internal/notify"
	"go.uber.org/zap"
)

const dateLayout = "January 2, 2006"

// Confirmation is the terminal success result handed back to the wizard.
type Confirmation struct {
	BookingID    string
	ServiceTitle string
	ProviderName string
	Price        float64
	Date         time.Time
	TimeSlot     string
}

// Pipeline turns a completed draft into a booking record and a notification
// email. It performs a single best-effort attempt; retrying is left to the
// user.
type Pipeline struct {
	catalog  catalog.Catalog
	bookings booking.Service
	mailer   notify.EmailSender
	logger   *zap.Logger

	inbox   string // operator address that receives booking notifications
	timeout time.Duration
}

func NewPipeline(
	cat catalog.Catalog,
	bookings booking.Service,
	mailer notify.EmailSender,
	logger *zap.Logger,
	inbox string,
	timeout time.Duration,
) *Pipeline {
	return &Pipeline{
		catalog:  cat,
		bookings: bookings,
		mailer:   mailer,
		logger:   logger,
		inbox:    inbox,
		timeout:  timeout,
	}
}

// Submit validates the draft, writes the booking and sends exactly one
// notification email.
//
// Persistence is authoritative: once the booking row is written the
// submission counts as successful, and a notification failure is logged but
// not surfaced. A persistence failure is returned as *SubmissionError with
// the draft untouched, so the caller can retry.
func (p *Pipeline) Submit(ctx context.Context, clientID string, draft Draft) (*Confirmation, error) {
	// Precondition: full-draft invariant. No external collaborator is
	// contacted when it fails.
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	// Price and titles are read from the catalog at submit time; the booking
	// service re-validates provider/service compatibility and the schedule.
	svc, err := p.catalog.GetService(ctx, draft.ServiceID)
	if err != nil {
		return nil, &SubmissionError{Message: "selected service is no longer available", Err: err}
	}

	b, err := p.bookings.Create(ctx, booking.CreateRequest{
		ClientID:   clientID,
		ServiceID:  draft.ServiceID,
		ProviderID: draft.ProviderID,
		Date:       *draft.Date,
		Slot:       draft.TimeSlot,
	})
	if err != nil {
		return nil, &SubmissionError{Message: "could not complete your booking", Err: err}
	}

	msg := buildNotification(p.inbox, svc, b, draft.Contact)
	if err := p.mailer.Send(ctx, msg); err != nil {
		// Non-fatal: the booking row exists, which is what counts.
		p.logger.Warn("booking notification failed",
			zap.String("booking_id", b.ID), zap.Error(err))
	}

	return &Confirmation{
		BookingID:    b.ID,
		ServiceTitle: svc.Title,
		ProviderName: b.ProviderName,
		Price:        svc.Price,
		Date:         b.Date,
		TimeSlot:     b.StartTime,
	}, nil
}

func buildNotification(inbox string, svc *catalog.Service, b *booking.Booking, contact *Contact) notify.EmailMessage {
	notes := contact.Notes
	if notes == "" {
		notes = "None provided"
	}

	dateStr := b.Date.Format(dateLayout)

	body := fmt.Sprintf(`New Booking Details:

Service: %s ($%.2f)
Provider: %s
Date: %s
Time: %s

Customer Information:
Name: %s
Email: %s
Phone: %s
Address: %s
Notes: %s
`,
		svc.Title, svc.Price,
		b.ProviderName,
		dateStr,
		b.StartTime,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Address,
		notes,
	)

	return notify.EmailMessage{
		To:      inbox,
		ToName:  "Bookings",
		Subject: fmt.Sprintf("New booking request for %s on %s", svc.Title, dateStr),
		Body:    body,
	}
}

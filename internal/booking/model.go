package booking

import (
	"net/http"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotTaken         = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidSlot       = apperror.New(http.StatusBadRequest, "time must be one of the business-hour slots")
	ErrDateNotSelectable = apperror.New(http.StatusBadRequest, "date must be an upcoming weekday")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrServiceMismatch   = apperror.New(http.StatusBadRequest, "provider does not offer the selected service")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
)

// Status is the open string enumeration of booking states.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Booking is a confirmed reservation of a provider's time slot for a service.
type Booking struct {
	ID           string
	ServiceID    string
	ServiceTitle string
	ProviderID   string
	ProviderName string
	ClientID     string
	ClientName   string
	Date         time.Time // date only, time-of-day ignored
	StartTime    string    // display slot, e.g. "9:00 AM"
	EndTime      string    // derived from slot + service duration
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Filter defines parameters for listing bookings.
type Filter struct {
	ClientID   string
	ProviderID string
	ServiceID  string
	Status     string
	DateFrom   *time.Time
	DateTo     *time.Time
	Page       int
	PageSize   int
}

package review

import (
	"net/http"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "review not found")
	ErrAlreadyReviewed     = apperror.New(http.StatusConflict, "booking already reviewed")
	ErrBookingNotCompleted = apperror.New(http.StatusBadRequest, "only completed bookings can be reviewed")
	ErrPermissionDenied    = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidRating       = apperror.New(http.StatusBadRequest, "rating must be between 1 and 5")
)

// Review is a client's rating of a provider after a completed booking. One
// review per booking.
type Review struct {
	ID         string
	BookingID  string
	ClientID   string
	ClientName string
	ProviderID string
	ServiceID  string
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

// Filter defines filter options for listing reviews.
type Filter struct {
	ProviderID string
	ServiceID  string
	ClientID   string

	Page     int
	PageSize int
}

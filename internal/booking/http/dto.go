package http

import (
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/booking"
	catHttp "github.com/makingbetter/serveconnect-backend/internal/catalog/http"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/request"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	ProviderID string     `form:"provider_id"`
	ServiceID  string     `form:"service_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=upcoming confirmed completed cancelled"`
	ClientID   string     `form:"client_id"`
	DateFrom   *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"date_to" time_format:"2006-01-02"`
}

type BookingResponse struct {
	ID        string              `json:"id"`
	Service   catHttp.ServiceTag  `json:"service"`
	Provider  catHttp.ProviderTag `json:"provider"`
	ClientID  string              `json:"client_id"`
	Date      string              `json:"date"`
	StartTime string              `json:"start_time"`
	EndTime   string              `json:"end_time"`
	Status    string              `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Service:   catHttp.ServiceTag{ID: b.ServiceID, Title: b.ServiceTitle},
		Provider:  catHttp.ProviderTag{ID: b.ProviderID, Name: b.ProviderName},
		ClientID:  b.ClientID,
		Date:      b.Date.Format("2006-01-02"),
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type UpdateBookingBody struct {
	Status string `json:"status" binding:"required,oneof=upcoming confirmed completed cancelled"`
}

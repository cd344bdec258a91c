package http

import (
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/pkg/request"
	"github.com/makingbetter/serveconnect-backend/internal/review"
)

// ListReviewsRequest defines query parameters for listing reviews.
type ListReviewsRequest struct {
	request.ListParams
	ProviderID string `form:"provider"`
	ServiceID  string `form:"service"`
}

type ReviewResponse struct {
	ID         string    `json:"id"`
	BookingID  string    `json:"booking_id"`
	ClientName string    `json:"client_name"`
	ProviderID string    `json:"provider_id"`
	ServiceID  string    `json:"service_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReviewResponse(rv *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         rv.ID,
		BookingID:  rv.BookingID,
		ClientName: rv.ClientName,
		ProviderID: rv.ProviderID,
		ServiceID:  rv.ServiceID,
		Rating:     rv.Rating,
		Comment:    rv.Comment,
		CreatedAt:  rv.CreatedAt,
	}
}

type CreateReviewBody struct {
	BookingID string `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

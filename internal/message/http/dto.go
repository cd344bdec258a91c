package http

import (
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/message"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/request"
)

type SendMessageBody struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required"`
}

// ListMessagesRequest defines query parameters for the inbox and
// conversation listings.
type ListMessagesRequest struct {
	request.ListParams
	With       string `form:"with"`
	UnreadOnly bool   `form:"unread"`
}

type MessageResponse struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	SenderName  string     `json:"sender_name,omitempty"`
	RecipientID string     `json:"recipient_id"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewMessageResponse(m *message.Message) MessageResponse {
	var readAt *time.Time
	if m.ReadAt != nil {
		r := *m.ReadAt
		readAt = &r
	}
	return MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		SenderName:  m.SenderName,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		ReadAt:      readAt,
		CreatedAt:   m.CreatedAt,
	}
}

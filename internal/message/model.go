package message

import (
	"net/http"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "message not found")
	ErrBodyRequired     = apperror.New(http.StatusBadRequest, "message body is required")
	ErrSelfMessage      = apperror.New(http.StatusBadRequest, "cannot message yourself")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Message is a direct message between a client and a provider.
type Message struct {
	ID          string
	SenderID    string
	SenderName  string
	RecipientID string
	Body        string
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// Filter defines parameters for listing messages.
type Filter struct {
	// UserID scopes the listing to messages the user sent or received.
	UserID string
	// WithUserID narrows to the conversation with one counterpart.
	WithUserID string
	// UnreadOnly keeps only unread messages received by UserID.
	UnreadOnly bool

	Page     int
	PageSize int
}

package message

import (
	"context"
	"strings"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/user"
)

// Service defines business logic for direct messages.
type Service interface {
	Send(ctx context.Context, senderID, recipientID, body string) (*Message, error)
	Conversation(ctx context.Context, userID, withUserID string, page, pageSize int) ([]*Message, int, error)
	Inbox(ctx context.Context, userID string, unreadOnly bool, page, pageSize int) ([]*Message, int, error)
	MarkRead(ctx context.Context, userID, messageID string) error
}

type service struct {
	repo  Repository
	users user.Service
	now   func() time.Time
}

// NewService creates a new message Service.
func NewService(repo Repository, users user.Service) Service {
	return &service{
		repo:  repo,
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Send(ctx context.Context, senderID, recipientID, body string) (*Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrBodyRequired
	}
	if senderID == recipientID {
		return nil, ErrSelfMessage
	}

	// The recipient must be a real account.
	if _, err := s.users.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}

	m := &Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        strings.TrimSpace(body),
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Conversation(ctx context.Context, userID, withUserID string, page, pageSize int) ([]*Message, int, error) {
	return s.repo.List(ctx, Filter{
		UserID:     userID,
		WithUserID: withUserID,
		Page:       page,
		PageSize:   pageSize,
	})
}

func (s *service) Inbox(ctx context.Context, userID string, unreadOnly bool, page, pageSize int) ([]*Message, int, error) {
	return s.repo.List(ctx, Filter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Page:       page,
		PageSize:   pageSize,
	})
}

// MarkRead records a read receipt. Only the recipient may mark a message.
func (s *service) MarkRead(ctx context.Context, userID, messageID string) error {
	m, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if m.RecipientID != userID {
		return ErrPermissionDenied
	}
	return s.repo.MarkRead(ctx, messageID, s.now())
}

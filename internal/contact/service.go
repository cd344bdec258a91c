package contact

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/notify"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

var ErrDeliveryFailed = apperror.New(http.StatusBadGateway, "could not deliver your message, please try again later")

// Form is a general inquiry from the public contact page.
type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Service forwards contact-form inquiries to the operator inbox and sends
// the visitor a confirmation copy.
type Service interface {
	Send(ctx context.Context, form Form) error
}

type service struct {
	mailer notify.EmailSender
	logger *zap.Logger
	inbox  string
}

// NewService creates a new contact Service. inbox is the operator address
// that receives the inquiries.
func NewService(mailer notify.EmailSender, logger *zap.Logger, inbox string) Service {
	return &service{
		mailer: mailer,
		logger: logger,
		inbox:  inbox,
	}
}

func (s *service) Send(ctx context.Context, form Form) error {
	subject := strings.TrimSpace(form.Subject)
	if subject == "" {
		subject = "General inquiry"
	}

	// The inquiry must reach the operator; this send is authoritative.
	inquiry := notify.EmailMessage{
		To:      s.inbox,
		ToName:  "Support",
		Subject: fmt.Sprintf("Contact form: %s", subject),
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s", form.Name, form.Email, form.Message),
	}
	if err := s.mailer.Send(ctx, inquiry); err != nil {
		s.logger.Error("failed to deliver contact inquiry",
			zap.String("email", form.Email), zap.Error(err))
		return ErrDeliveryFailed
	}

	// The visitor confirmation is best effort.
	confirmation := notify.EmailMessage{
		To:      form.Email,
		ToName:  form.Name,
		Subject: "We received your message",
		Body: fmt.Sprintf(
			"Hi %s,\n\nThanks for reaching out. We received your message and will get back to you soon.\n\nYour message:\n%s\n",
			form.Name, form.Message),
	}
	if err := s.mailer.Send(ctx, confirmation); err != nil {
		s.logger.Warn("failed to send contact confirmation",
			zap.String("email", form.Email), zap.Error(err))
	}

	return nil
}

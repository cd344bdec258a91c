package review

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/booking"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
)

// Service defines business logic for reviews.
type Service interface {
	Create(ctx context.Context, clientID string, req CreateRequest) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
}

// CreateRequest carries a new review for a completed booking.
type CreateRequest struct {
	BookingID string
	Rating    int
	Comment   string
}

type service struct {
	repo      Repository
	bookings  booking.Service
	providers catalog.ProviderRepository
	logger    *zap.Logger
}

// NewService creates a new review Service.
func NewService(repo Repository, bookings booking.Service, providers catalog.ProviderRepository, logger *zap.Logger) Service {
	return &service{
		repo:      repo,
		bookings:  bookings,
		providers: providers,
		logger:    logger,
	}
}

func (s *service) Create(ctx context.Context, clientID string, req CreateRequest) (*Review, error) {
	// 1. Validate the rating.
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	// 2. The booking must exist, belong to the reviewer, and be completed.
	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b.ClientID != clientID {
		return nil, ErrPermissionDenied
	}
	if b.Status != booking.StatusCompleted {
		return nil, ErrBookingNotCompleted
	}

	rv := &Review{
		BookingID:  req.BookingID,
		ClientID:   clientID,
		ClientName: b.ClientName,
		ProviderID: b.ProviderID,
		ServiceID:  b.ServiceID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	// 3. Refresh the provider's average rating. Best effort: the review is
	// already stored, a stale average self-corrects on the next review.
	if err := s.refreshProviderRating(ctx, b.ProviderID); err != nil {
		s.logger.Warn("failed to refresh provider rating",
			zap.String("provider_id", b.ProviderID), zap.Error(err))
	}

	return rv, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Review, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) refreshProviderRating(ctx context.Context, providerID string) error {
	avg, count, err := s.repo.AverageForProvider(ctx, providerID)
	if err != nil {
		return fmt.Errorf("failed to compute average rating: %w", err)
	}
	if count == 0 {
		return nil
	}
	return s.providers.UpdateRating(ctx, providerID, avg)
}

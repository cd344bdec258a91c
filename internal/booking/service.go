package booking

import (
	"context"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/availability"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
)

type CreateRequest struct {
	ClientID   string
	ServiceID  string
	ProviderID string
	Date       time.Time
	Slot       string // business-hour start slot, e.g. "9:00 AM"
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// Cancel cancels a booking. Only the booking's client or an admin may
	// cancel.
	Cancel(ctx context.Context, id, callerID string, isAdmin bool) (*Booking, error)

	// SetStatus moves a booking between statuses (admin only).
	SetStatus(ctx context.Context, id string, status Status) (*Booking, error)
}

type service struct {
	repo    Repository
	catalog catalog.Catalog
	now     func() time.Time
}

func NewService(repo Repository, cat catalog.Catalog) Service {
	return &service{
		repo:    repo,
		catalog: cat,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	// 1. Schedule rules: upcoming weekday, enumerated slot.
	if !availability.IsDateSelectable(req.Date, s.now()) {
		return nil, ErrDateNotSelectable
	}
	if !availability.ValidSlot(req.Slot) {
		return nil, ErrInvalidSlot
	}

	// 2. Referential consistency between service and provider.
	svc, err := s.catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	provider, err := s.catalog.GetProvider(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}
	if !provider.Supports(svc.ID) {
		return nil, ErrServiceMismatch
	}

	// 3. Double-booking check.
	taken, err := s.repo.SlotTaken(ctx, req.ProviderID, req.Date, req.Slot)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	endTime, err := availability.SlotEnd(req.Slot, svc.DurationMinutes)
	if err != nil {
		return nil, ErrInvalidSlot
	}

	b := &Booking{
		ServiceID:    svc.ID,
		ServiceTitle: svc.Title,
		ProviderID:   provider.ID,
		ProviderName: provider.DisplayName,
		ClientID:     req.ClientID,
		Date:         req.Date,
		StartTime:    req.Slot,
		EndTime:      endTime,
		Status:       StatusUpcoming,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, id, callerID string, isAdmin bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !isAdmin && b.ClientID != callerID {
		return nil, ErrPermissionDenied
	}

	if b.Status == StatusCancelled {
		return b, nil
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled
	return b, nil
}

func (s *service) SetStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	switch status {
	case StatusUpcoming, StatusConfirmed, StatusCompleted, StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	b.Status = status
	return b, nil
}

package catalog

import (
	"context"
	"strings"
)

type CreateServiceRequest struct {
	Title           string
	Category        string
	Price           float64
	DurationMinutes int
	Description     string
	Location        string
}

type UpdateServiceRequest struct {
	Title           *string
	Category        *string
	Price           *float64
	DurationMinutes *int
	Description     *string
	Location        *string
}

type CreateProviderRequest struct {
	DisplayName string
	ServiceIDs  []string
	Rating      float64
	Location    string
}

type UpdateProviderRequest struct {
	DisplayName *string
	ServiceIDs  []string // nil means unchanged
	Location    *string
}

// Catalog is the read/write interface over the marketplace's services and
// providers. The booking wizard consumes the read side; the admin API uses
// the write side.
type Catalog interface {
	CreateService(ctx context.Context, req CreateServiceRequest) (*Service, error)
	GetService(ctx context.Context, id string) (*Service, error)
	ListServices(ctx context.Context, filter ServiceFilter) ([]*Service, int, error)
	UpdateService(ctx context.Context, id string, req UpdateServiceRequest) (*Service, error)
	DeleteService(ctx context.Context, id string) error

	CreateProvider(ctx context.Context, req CreateProviderRequest) (*Provider, error)
	GetProvider(ctx context.Context, id string) (*Provider, error)
	ListProviders(ctx context.Context, filter ProviderFilter) ([]*Provider, int, error)
	UpdateProvider(ctx context.Context, id string, req UpdateProviderRequest) (*Provider, error)
	DeleteProvider(ctx context.Context, id string) error

	// ProvidersFor returns providers supporting the service, best rated first.
	ProvidersFor(ctx context.Context, serviceID string) ([]*Provider, error)
}

type catalog struct {
	services  ServiceRepository
	providers ProviderRepository
}

func New(services ServiceRepository, providers ProviderRepository) Catalog {
	return &catalog{
		services:  services,
		providers: providers,
	}
}

func validCategory(c string) bool {
	for _, v := range ValidCategories {
		if Category(c) == v {
			return true
		}
	}
	return false
}

func (s *catalog) CreateService(ctx context.Context, req CreateServiceRequest) (*Service, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if !validCategory(req.Category) {
		return nil, ErrInvalidCategory
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	svc := &Service{
		Title:           strings.TrimSpace(req.Title),
		Category:        Category(req.Category),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		Location:        req.Location,
	}

	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalog) GetService(ctx context.Context, id string) (*Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *catalog) ListServices(ctx context.Context, filter ServiceFilter) ([]*Service, int, error) {
	return s.services.List(ctx, filter)
}

func (s *catalog) UpdateService(ctx context.Context, id string, req UpdateServiceRequest) (*Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A service already referenced by bookings is immutable.
	referenced, err := s.services.ReferencedByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if referenced {
		return nil, ErrInUse
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		svc.Title = strings.TrimSpace(*req.Title)
	}
	if req.Category != nil {
		if !validCategory(*req.Category) {
			return nil, ErrInvalidCategory
		}
		svc.Category = Category(*req.Category)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, ErrInvalidPrice
		}
		svc.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.Location != nil {
		svc.Location = *req.Location
	}

	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *catalog) DeleteService(ctx context.Context, id string) error {
	if _, err := s.services.GetByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.services.ReferencedByBooking(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return ErrInUse
	}

	return s.services.Delete(ctx, id)
}

func (s *catalog) CreateProvider(ctx context.Context, req CreateProviderRequest) (*Provider, error) {
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, ErrNameRequired
	}
	if len(req.ServiceIDs) == 0 {
		return nil, ErrNoServices
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	// Every supported service must exist.
	for _, serviceID := range req.ServiceIDs {
		if _, err := s.services.GetByID(ctx, serviceID); err != nil {
			return nil, err
		}
	}

	p := &Provider{
		DisplayName: strings.TrimSpace(req.DisplayName),
		ServiceIDs:  req.ServiceIDs,
		Rating:      req.Rating,
		Location:    req.Location,
	}

	if err := s.providers.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalog) GetProvider(ctx context.Context, id string) (*Provider, error) {
	return s.providers.GetByID(ctx, id)
}

func (s *catalog) ListProviders(ctx context.Context, filter ProviderFilter) ([]*Provider, int, error) {
	return s.providers.List(ctx, filter)
}

func (s *catalog) UpdateProvider(ctx context.Context, id string, req UpdateProviderRequest) (*Provider, error) {
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if strings.TrimSpace(*req.DisplayName) == "" {
			return nil, ErrNameRequired
		}
		p.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.ServiceIDs != nil {
		if len(req.ServiceIDs) == 0 {
			return nil, ErrNoServices
		}
		for _, serviceID := range req.ServiceIDs {
			if _, err := s.services.GetByID(ctx, serviceID); err != nil {
				return nil, err
			}
		}
		p.ServiceIDs = req.ServiceIDs
	}
	if req.Location != nil {
		p.Location = *req.Location
	}

	if err := s.providers.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalog) DeleteProvider(ctx context.Context, id string) error {
	if _, err := s.providers.GetByID(ctx, id); err != nil {
		return err
	}
	return s.providers.Delete(ctx, id)
}

func (s *catalog) ProvidersFor(ctx context.Context, serviceID string) ([]*Provider, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}
	return s.providers.ListForService(ctx, serviceID)
}

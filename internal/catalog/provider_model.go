package catalog

import (
	"net/http"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

var (
	ErrProviderNotFound = apperror.New(http.StatusNotFound, "provider not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "display name is required")
	ErrInvalidRating    = apperror.New(http.StatusBadRequest, "rating must be between 0 and 5")
	ErrNoServices       = apperror.New(http.StatusBadRequest, "provider must support at least one service")
)

// Provider is an entity that performs one or more services.
// Services and providers are many-to-many: a provider supports a set of
// services and a service may be offered by several providers.
type Provider struct {
	ID          string
	DisplayName string
	ServiceIDs  []string
	Rating      float64 // average rating in [0, 5]
	Location    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Supports reports whether the provider offers the given service.
func (p *Provider) Supports(serviceID string) bool {
	for _, id := range p.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// ProviderFilter defines parameters for listing providers.
type ProviderFilter struct {
	ServiceID string // restrict to providers supporting this service
	Page      int
	PageSize  int
}

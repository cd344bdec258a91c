package http

import (
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/catalog"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/request"
)

// ListServicesRequest defines query parameters for listing services.
type ListServicesRequest struct {
	request.ListParams
	Category string `form:"category" binding:"omitempty,oneof=car-wash home-cleaning personal-care"`
	Keyword  string `form:"q"`
}

type ServiceResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration"`
	Description     string    `json:"description"`
	Location        string    `json:"location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Title:           s.Title,
		Category:        string(s.Category),
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		Description:     s.Description,
		Location:        s.Location,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// ServiceTag is the minimal service reference embedded in other responses.
type ServiceTag struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type CreateServiceBody struct {
	Title           string  `json:"title" binding:"required"`
	Category        string  `json:"category" binding:"required,oneof=car-wash home-cleaning personal-care"`
	Price           float64 `json:"price" binding:"min=0"`
	DurationMinutes int     `json:"duration" binding:"required,min=1"`
	Description     string  `json:"description"`
	Location        string  `json:"location"`
}

type UpdateServiceBody struct {
	Title           *string  `json:"title"`
	Category        *string  `json:"category" binding:"omitempty,oneof=car-wash home-cleaning personal-care"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	DurationMinutes *int     `json:"duration" binding:"omitempty,min=1"`
	Description     *string  `json:"description"`
	Location        *string  `json:"location"`
}

// ListProvidersRequest defines query parameters for listing providers.
type ListProvidersRequest struct {
	request.ListParams
	ServiceID string `form:"service"`
}

type ProviderResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	ServiceIDs  []string  `json:"service_ids"`
	Rating      float64   `json:"rating"`
	Location    string    `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProviderResponse(p *catalog.Provider) ProviderResponse {
	ids := p.ServiceIDs
	if ids == nil {
		ids = []string{}
	}
	return ProviderResponse{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		ServiceIDs:  ids,
		Rating:      p.Rating,
		Location:    p.Location,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProviderTag is the minimal provider reference embedded in other responses.
type ProviderTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateProviderBody struct {
	DisplayName string   `json:"display_name" binding:"required"`
	ServiceIDs  []string `json:"service_ids" binding:"required,min=1"`
	Rating      float64  `json:"rating" binding:"min=0,max=5"`
	Location    string   `json:"location"`
}

type UpdateProviderBody struct {
	DisplayName *string  `json:"display_name"`
	ServiceIDs  []string `json:"service_ids"`
	Location    *string  `json:"location"`
}

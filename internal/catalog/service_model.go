package catalog

import (
	"net/http"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "service not found")
	ErrTitleRequired   = apperror.New(http.StatusBadRequest, "title is required")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "invalid service category")
	ErrInvalidPrice    = apperror.New(http.StatusBadRequest, "price must not be negative")
	ErrInvalidDuration = apperror.New(http.StatusBadRequest, "duration must be positive")
	ErrInUse           = apperror.New(http.StatusConflict, "service is referenced by existing bookings")
)

// Category enumerates the kinds of services the marketplace offers.
type Category string

const (
	CategoryCarWash      Category = "car-wash"
	CategoryHomeCleaning Category = "home-cleaning"
	CategoryPersonalCare Category = "personal-care"
)

// ValidCategories lists every accepted category value.
var ValidCategories = []Category{CategoryCarWash, CategoryHomeCleaning, CategoryPersonalCare}

// Service represents a bookable offering (e.g., "Premium Car Wash").
// A service is immutable once a booking references it: price and duration are
// read at booking time and deleting it is rejected while bookings exist.
type Service struct {
	ID              string
	Title           string
	Category        Category
	Price           float64 // currency-agnostic
	DurationMinutes int
	Description     string
	Location        string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ServiceFilter defines parameters for listing services.
type ServiceFilter struct {
	Category Category
	Keyword  string
	Page     int
	PageSize int
}

package user

import (
	"net/http"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
	ErrInvalidRole        = apperror.New(http.StatusBadRequest, "invalid role")
	ErrNotAnImage         = apperror.New(http.StatusBadRequest, "uploaded file is not a supported image")
)

// Role partitions accounts by what they can do. Providers additionally have a
// catalog provider profile; admins manage the catalog and all bookings.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

// User is an account plus its public profile.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Address      string
	Bio          string
	Role         Role
	ProfileImage string // storage path, empty when never uploaded
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email string
	Name  string
	Role  Role

	Page     int
	PageSize int
}

// ProfileUpdate carries the fields a user may change on their own profile.
// Pointers distinguish "not sent" from "sent as empty".
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *string
	Bio     *string
}

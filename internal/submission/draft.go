package submission

import (
	"strings"
	"time"
)

// Contact is the customer contact block collected at the review stage.
// Notes is the only optional field.
type Contact struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Notes   string
}

// Draft is the transient accumulation of a user's in-progress reservation.
// Every field is optional until the corresponding wizard stage completes; the
// draft is submittable only when Validate returns nil.
type Draft struct {
	ServiceID  string
	ProviderID string
	Date       *time.Time
	TimeSlot   string
	Contact    *Contact
}

// Validate checks the full-draft invariant. It returns a *ValidationError
// naming the first missing component, or nil when the draft is complete.
func (d *Draft) Validate() error {
	if d.ServiceID == "" {
		return &ValidationError{Field: "service"}
	}
	if d.ProviderID == "" {
		return &ValidationError{Field: "provider"}
	}
	if d.Date == nil {
		return &ValidationError{Field: "date"}
	}
	if d.TimeSlot == "" {
		return &ValidationError{Field: "time"}
	}
	if d.Contact == nil {
		return &ValidationError{Field: "contact"}
	}
	if strings.TrimSpace(d.Contact.Name) == "" {
		return &ValidationError{Field: "contact name"}
	}
	if strings.TrimSpace(d.Contact.Email) == "" || !strings.Contains(d.Contact.Email, "@") {
		return &ValidationError{Field: "contact email"}
	}
	if strings.TrimSpace(d.Contact.Phone) == "" {
		return &ValidationError{Field: "contact phone"}
	}
	if strings.TrimSpace(d.Contact.Address) == "" {
		return &ValidationError{Field: "contact address"}
	}
	return nil
}

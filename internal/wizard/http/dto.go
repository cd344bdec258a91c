package http

import (
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/submission"
	"github.com/makingbetter/serveconnect-backend/internal/wizard"
)

const dateLayout = "2006-01-02"

// CreateWizardRequest carries the optional deep-link pre-selections.
type CreateWizardRequest struct {
	ServiceID  string `form:"service"`
	ProviderID string `form:"provider"`
}

type ContactBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
	Notes   string `json:"notes"`
}

func (b ContactBody) toContact() submission.Contact {
	return submission.Contact{
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Address: b.Address,
		Notes:   b.Notes,
	}
}

type SelectServiceBody struct {
	ServiceID string `json:"service_id" binding:"required"`
}

type SelectProviderBody struct {
	ProviderID string `json:"provider_id" binding:"required"`
}

type SelectScheduleBody struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type SubmitBody struct {
	Contact ContactBody `json:"contact" binding:"required"`
}

type ListSlotsRequest struct {
	Date string `form:"date" binding:"required"`
}

type DraftResponse struct {
	ServiceID  string       `json:"service_id,omitempty"`
	ProviderID string       `json:"provider_id,omitempty"`
	Date       string       `json:"date,omitempty"`
	Time       string       `json:"time,omitempty"`
	Contact    *ContactBody `json:"contact,omitempty"`
}

type ConfirmationResponse struct {
	BookingID    string  `json:"booking_id"`
	ServiceTitle string  `json:"service_title"`
	ProviderName string  `json:"provider_name"`
	Price        float64 `json:"price"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
}

type WizardResponse struct {
	ID           string                `json:"id"`
	Stage        string                `json:"stage"`
	Draft        DraftResponse         `json:"draft"`
	Confirmation *ConfirmationResponse `json:"confirmation,omitempty"`
	LastError    string                `json:"last_error,omitempty"`
}

func NewWizardResponse(id string, w *wizard.Wizard) WizardResponse {
	d := w.Draft()

	resp := WizardResponse{
		ID:    id,
		Stage: string(w.Stage()),
		Draft: DraftResponse{
			ServiceID:  d.ServiceID,
			ProviderID: d.ProviderID,
			Time:       d.TimeSlot,
		},
		LastError: w.LastError(),
	}
	if d.Date != nil {
		resp.Draft.Date = d.Date.Format(dateLayout)
	}
	if d.Contact != nil {
		resp.Draft.Contact = &ContactBody{
			Name:    d.Contact.Name,
			Email:   d.Contact.Email,
			Phone:   d.Contact.Phone,
			Address: d.Contact.Address,
			Notes:   d.Contact.Notes,
		}
	}
	if conf := w.Confirmation(); conf != nil {
		resp.Confirmation = newConfirmationResponse(conf)
	}
	return resp
}

func newConfirmationResponse(conf *submission.Confirmation) *ConfirmationResponse {
	return &ConfirmationResponse{
		BookingID:    conf.BookingID,
		ServiceTitle: conf.ServiceTitle,
		ProviderName: conf.ProviderName,
		Price:        conf.Price,
		Date:         conf.Date.Format(dateLayout),
		Time:         conf.TimeSlot,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

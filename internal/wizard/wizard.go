package wizard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/makingbetter/serveconnect-backend/internal/availability"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
	"github.com/makingbetter/serveconnect-backend/internal/submission"
)

var (
	ErrNoServiceSelected    = apperror.New(http.StatusBadRequest, "select a service first")
	ErrNoProviderSelected   = apperror.New(http.StatusBadRequest, "select a provider first")
	ErrScheduleIncomplete   = apperror.New(http.StatusBadRequest, "select a date and a time slot first")
	ErrIncompatibleProvider = apperror.New(http.StatusBadRequest, "provider does not offer the selected service")
	ErrDateNotSelectable    = apperror.New(http.StatusBadRequest, "date must be an upcoming weekday")
	ErrInvalidSlot          = apperror.New(http.StatusBadRequest, "time must be one of the business-hour slots")
	ErrNotReadyToSubmit     = apperror.New(http.StatusBadRequest, "booking details are incomplete")
	ErrSubmitInFlight       = apperror.New(http.StatusConflict, "a submission is already in progress")
	ErrAlreadySubmitted     = apperror.New(http.StatusConflict, "booking already submitted")
)

// Stage is one of the four sequential steps of the booking flow, plus the
// terminal submitted outcome. A failed submission is not a stage: the wizard
// stays at StageReviewing with the draft intact so the user can retry.
type Stage string

const (
	StageSelectingService  Stage = "selecting_service"
	StageSelectingProvider Stage = "selecting_provider"
	StageSelectingSchedule Stage = "selecting_schedule"
	StageReviewing         Stage = "reviewing_and_confirming"
	StageSubmitted         Stage = "submitted"
)

// order maps each stage to its position for backward navigation.
var order = map[Stage]int{
	StageSelectingService:  0,
	StageSelectingProvider: 1,
	StageSelectingSchedule: 2,
	StageReviewing:         3,
	StageSubmitted:         4,
}

var byOrder = []Stage{
	StageSelectingService,
	StageSelectingProvider,
	StageSelectingSchedule,
	StageReviewing,
	StageSubmitted,
}

// Submitter is the submission pipeline as seen by the wizard.
type Submitter interface {
	Submit(ctx context.Context, clientID string, draft submission.Draft) (*submission.Confirmation, error)
}

// Wizard is the booking flow state machine. Each instance belongs to exactly
// one client session; the mutex only guards against double submission from
// duplicate confirm events.
type Wizard struct {
	mu sync.Mutex

	catalog   catalog.Catalog
	submitter Submitter
	now       func() time.Time

	clientID     string
	stage        Stage
	draft        submission.Draft
	submitting   bool
	confirmation *submission.Confirmation
	lastError    string
}

// New creates a wizard at the service-selection stage for the given client.
func New(cat catalog.Catalog, submitter Submitter, clientID string) *Wizard {
	return &Wizard{
		catalog:   cat,
		submitter: submitter,
		now:       func() time.Time { return time.Now().UTC() },
		clientID:  clientID,
		stage:     StageSelectingService,
	}
}

// Seed applies deep-link pre-selections (the ?service= and ?provider= query
// parameters). A valid service advances the wizard to provider selection; a
// provider compatible with that service advances it further to scheduling. An
// unknown service, or a provider that does not support the seeded service, is
// ignored.
func (w *Wizard) Seed(ctx context.Context, serviceID, providerID string) {
	if serviceID == "" {
		return
	}
	if _, err := w.catalog.GetService(ctx, serviceID); err != nil {
		return
	}
	w.draft.ServiceID = serviceID
	w.stage = StageSelectingProvider

	if providerID == "" {
		return
	}
	p, err := w.catalog.GetProvider(ctx, providerID)
	if err != nil || !p.Supports(serviceID) {
		// Incompatible pre-selection: fall back to provider selection.
		return
	}
	w.draft.ProviderID = providerID
	w.stage = StageSelectingSchedule
}

// ClientID returns the session owner.
func (w *Wizard) ClientID() string {
	return w.clientID
}

// Stage returns the current stage.
func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

// Draft returns a copy of the accumulated draft.
func (w *Wizard) Draft() submission.Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// Confirmation returns the terminal result, or nil before successful submit.
func (w *Wizard) Confirmation() *submission.Confirmation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.confirmation
}

// LastError returns the user-facing message of the most recent failed
// submission, cleared on the next successful operation.
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastError
}

// SelectService picks a service. Allowed at any non-terminal stage; changing
// the service while a provider is selected re-validates the provider and
// clears it when it does not support the new service, moving the wizard back
// to provider selection. Date and time selections survive a service change.
func (w *Wizard) SelectService(ctx context.Context, serviceID string) error {
	if _, err := w.catalog.GetService(ctx, serviceID); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}

	w.draft.ServiceID = serviceID

	if w.draft.ProviderID != "" {
		p, err := w.catalog.GetProvider(ctx, w.draft.ProviderID)
		if err != nil || !p.Supports(serviceID) {
			// Corrective de-selection, not a failure: the provider is cleared
			// and the wizard cannot sit past provider selection.
			w.draft.ProviderID = ""
			if order[w.stage] > order[StageSelectingProvider] {
				w.stage = StageSelectingProvider
			}
		}
	}
	return nil
}

// SelectProvider picks a provider for the already selected service. An
// incompatible provider is rejected outright.
func (w *Wizard) SelectProvider(ctx context.Context, providerID string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}
	if w.draft.ServiceID == "" {
		return ErrNoServiceSelected
	}

	p, err := w.catalog.GetProvider(ctx, providerID)
	if err != nil {
		return err
	}
	if !p.Supports(w.draft.ServiceID) {
		return ErrIncompatibleProvider
	}

	w.draft.ProviderID = providerID
	return nil
}

// SelectSchedule picks the appointment date and/or time slot.
func (w *Wizard) SelectSchedule(date *time.Time, slot string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}

	if date != nil {
		if !availability.IsDateSelectable(*date, w.now()) {
			return ErrDateNotSelectable
		}
		d := *date
		w.draft.Date = &d
	}
	if slot != "" {
		if !availability.ValidSlot(slot) {
			return ErrInvalidSlot
		}
		w.draft.TimeSlot = slot
	}
	return nil
}

// SetContact stores the contact block collected at the review stage. Field
// validation happens at submit time.
func (w *Wizard) SetContact(c submission.Contact) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}

	w.draft.Contact = &c
	return nil
}

// Next advances to the following stage if the current stage's guard holds.
func (w *Wizard) Next() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case StageSelectingService:
		if w.draft.ServiceID == "" {
			return ErrNoServiceSelected
		}
		w.stage = StageSelectingProvider
	case StageSelectingProvider:
		if w.draft.ProviderID == "" {
			return ErrNoProviderSelected
		}
		w.stage = StageSelectingSchedule
	case StageSelectingSchedule:
		if w.draft.Date == nil || w.draft.TimeSlot == "" {
			return ErrScheduleIncomplete
		}
		w.stage = StageReviewing
	case StageReviewing:
		return ErrNotReadyToSubmit // confirm via Submit, not Next
	case StageSubmitted:
		return ErrAlreadySubmitted
	}
	return nil
}

// Back returns to the immediate predecessor stage. There is no guard:
// backward navigation is always allowed for correction, and later-stage
// selections are kept.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stage == StageSubmitted {
		return ErrAlreadySubmitted
	}
	if idx := order[w.stage]; idx > 0 {
		w.stage = byOrder[idx-1]
	}
	return nil
}

// Submit hands the completed draft to the submission pipeline. While a
// submission is in flight any further submit is rejected, so duplicate
// confirm events cause exactly one pipeline invocation. On success the wizard
// reaches its terminal stage; on failure it stays at the review stage with
// the draft retained for retry.
func (w *Wizard) Submit(ctx context.Context) (*submission.Confirmation, error) {
	w.mu.Lock()
	if w.stage == StageSubmitted {
		w.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	if w.stage != StageReviewing {
		w.mu.Unlock()
		return nil, ErrNotReadyToSubmit
	}
	if w.submitting {
		w.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	w.submitting = true
	clientID := w.clientID
	draft := w.draft
	w.mu.Unlock()

	conf, err := w.submitter.Submit(ctx, clientID, draft)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		// Draft and stage are left untouched for retry.
		w.lastError = err.Error()
		return nil, err
	}

	w.stage = StageSubmitted
	w.confirmation = conf
	w.lastError = ""
	return conf, nil
}

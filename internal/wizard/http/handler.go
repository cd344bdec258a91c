package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/makingbetter/serveconnect-backend/internal/auth"
	"github.com/makingbetter/serveconnect-backend/internal/availability"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
	catHttp "github.com/makingbetter/serveconnect-backend/internal/catalog/http"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/response"
	"github.com/makingbetter/serveconnect-backend/internal/submission"
	"github.com/makingbetter/serveconnect-backend/internal/wizard"
)

type Handler struct {
	store     *wizard.Store
	catalog   catalog.Catalog
	submitter wizard.Submitter
	filter    *availability.Filter
}

func NewHandler(store *wizard.Store, cat catalog.Catalog, submitter wizard.Submitter, filter *availability.Filter) *Handler {
	return &Handler{store: store, catalog: cat, submitter: submitter, filter: filter}
}

// Create opens a new wizard session for the authenticated client. Deep-link
// pre-selections are applied before the initial state is returned.
func (h *Handler) Create(c *gin.Context) {
	var req CreateWizardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	w := wizard.New(h.catalog, h.submitter, auth.GetUserID(c))
	w.Seed(c.Request.Context(), req.ServiceID, req.ProviderID)

	id := h.store.Put(w)
	c.JSON(http.StatusCreated, NewWizardResponse(id, w))
}

func (h *Handler) Get(c *gin.Context) {
	id, w, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewWizardResponse(id, w))
}

func (h *Handler) SelectService(c *gin.Context) {
	id, w, ok := h.session(c)
	if !ok {
		return
	}

	var body SelectServiceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := w.SelectService(c.Request.Context(), body.ServiceID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewWizardResponse(id, w))
}

func (h *Handler) SelectProvider(c *gin.Context) {
	id, w, ok := h.session(c)
	if !ok {
		return
	}

	var body SelectProviderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := w.SelectProvider(c.Request.Context(), body.ProviderID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewWizardResponse(id, w))
}

func (h *Handler) SelectSchedule(c *gin.Context) {
	id, w, ok := h.session(c)
	if !ok {
		return
	}

	var body SelectScheduleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var date *time.Time
	if body.Date != "" {
		d, err := parseDate(body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
			return
		}
		date = &d
	}

	if err := w.SelectSchedule(date, body.Time); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewWizardResponse(id, w))
}

func (h *Handler) Next(c *gin.Context) {
	id, w, ok := h.session(c)
	if !ok {
		return
	}

	if err := w.Next(); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewWizardResponse(id, w))
}

func (h *Handler) Back(c *gin.Context) {
	id, w, ok := h.session(c)
	if !ok {
		return
	}

	if err := w.Back(); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewWizardResponse(id, w))
}

// Providers lists the providers offering the session's selected service,
// best-rated first.
func (h *Handler) Providers(c *gin.Context) {
	_, w, ok := h.session(c)
	if !ok {
		return
	}

	serviceID := w.Draft().ServiceID
	if serviceID == "" {
		response.Error(c, wizard.ErrNoServiceSelected)
		return
	}

	providers, err := h.catalog.ProvidersFor(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]catHttp.ProviderResponse, len(providers))
	for i, p := range providers {
		items[i] = catHttp.NewProviderResponse(p)
	}
	c.JSON(http.StatusOK, gin.H{"providers": items})
}

// Slots lists the open time slots for the session's selected provider on the
// requested date.
func (h *Handler) Slots(c *gin.Context) {
	_, w, ok := h.session(c)
	if !ok {
		return
	}

	var req ListSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be formatted as YYYY-MM-DD"})
		return
	}

	providerID := w.Draft().ProviderID
	if providerID == "" {
		response.Error(c, wizard.ErrNoProviderSelected)
		return
	}

	slots, err := h.filter.SlotsFor(c.Request.Context(), providerID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// Submit attaches the contact details and pushes the draft through the
// submission pipeline.
func (h *Handler) Submit(c *gin.Context) {
	id, w, ok := h.session(c)
	if !ok {
		return
	}

	var body SubmitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := w.SetContact(body.Contact.toContact()); err != nil {
		response.Error(c, err)
		return
	}

	if _, err := w.Submit(c.Request.Context()); err != nil {
		var vErr *submission.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
			return
		}
		var sErr *submission.SubmissionError
		if errors.As(err, &sErr) {
			// A wrapped AppError (e.g. a slot conflict) keeps its own status.
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				c.JSON(appErr.Code, gin.H{"error": sErr.Message})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": sErr.Message})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewWizardResponse(id, w))
}

// session resolves the :id session and enforces ownership. On failure it
// writes the error response and returns ok=false.
func (h *Handler) session(c *gin.Context) (string, *wizard.Wizard, bool) {
	id := c.Param("id")
	w, err := h.store.Get(id)
	if err != nil {
		response.Error(c, err)
		return "", nil, false
	}
	if w.ClientID() != auth.GetUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return "", nil, false
	}
	return id, w, true
}

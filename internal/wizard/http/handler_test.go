package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/makingbetter/serveconnect-backend/internal/auth"
	"github.com/makingbetter/serveconnect-backend/internal/availability"
	"github.com/makingbetter/serveconnect-backend/internal/booking"
	"github.com/makingbetter/serveconnect-backend/internal/catalog"
	"github.com/makingbetter/serveconnect-backend/internal/notify"
	"github.com/makingbetter/serveconnect-backend/internal/submission"
	"github.com/makingbetter/serveconnect-backend/internal/wizard"
)

func newTestServer(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	cat := catalog.New(
		catalog.NewMemoryServiceRepository(catalog.SampleServices()...),
		catalog.NewMemoryProviderRepository(catalog.SampleProviders()...),
	)
	bookingRepo := booking.NewMemoryRepository()
	bookings := booking.NewService(bookingRepo, cat)
	pipeline := submission.NewPipeline(
		cat, bookings, notify.NewLogSender(logger), logger,
		"bookings@example.com", 5*time.Second,
	)

	jm := auth.NewJWTManager("test-secret", time.Hour)
	h := NewHandler(wizard.NewStore(0), cat, pipeline, availability.NewFilter(bookingRepo))

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), h, auth.AuthRequired(jm))
	return r, jm
}

func bearerToken(t *testing.T, jm *auth.JWTManager, userID string) string {
	t.Helper()
	token, err := jm.GenerateAccessToken(userID, userID+"@example.com", "client")
	require.NoError(t, err)
	return "Bearer " + token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeWizard(t *testing.T, w *httptest.ResponseRecorder) WizardResponse {
	t.Helper()
	var resp WizardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// nextWeekday returns the first weekday strictly after today, formatted for
// the API.
func nextWeekday() string {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format(dateLayout)
}

func TestWizardFlow(t *testing.T) {
	r, jm := newTestServer(t)
	token := bearerToken(t, jm, "client-1")
	date := nextWeekday()

	// Deep link with a service and a compatible provider lands on scheduling.
	w := doRequest(t, r, http.MethodPost, "/v1/wizard?service=1&provider=1", token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeWizard(t, w)
	require.NotEmpty(t, resp.ID)
	assert.Equal(t, "selecting_schedule", resp.Stage)
	assert.Equal(t, "1", resp.Draft.ServiceID)
	assert.Equal(t, "1", resp.Draft.ProviderID)
	id := resp.ID

	// All business-hour slots are open on a fresh day.
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/v1/wizard/%s/slots?date=%s", id, date), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var slots struct {
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	assert.Len(t, slots.Slots, 9)

	w = doRequest(t, r, http.MethodPost, "/v1/wizard/"+id+"/schedule", token,
		SelectScheduleBody{Date: date, Time: "9:00 AM"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, r, http.MethodPost, "/v1/wizard/"+id+"/next", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "reviewing_and_confirming", decodeWizard(t, w).Stage)

	w = doRequest(t, r, http.MethodPost, "/v1/wizard/"+id+"/submit", token, SubmitBody{
		Contact: ContactBody{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Phone:   "555-0100",
			Address: "1 Main St",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decodeWizard(t, w)
	assert.Equal(t, "submitted", resp.Stage)
	require.NotNil(t, resp.Confirmation)
	assert.NotEmpty(t, resp.Confirmation.BookingID)
	assert.Equal(t, "Premium Car Wash", resp.Confirmation.ServiceTitle)
	assert.Equal(t, "9:00 AM", resp.Confirmation.Time)

	// Re-confirming a submitted wizard is rejected.
	w = doRequest(t, r, http.MethodPost, "/v1/wizard/"+id+"/submit", token, SubmitBody{
		Contact: ContactBody{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Phone:   "555-0100",
			Address: "1 Main St",
		},
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// The booked slot is gone from the availability listing.
	w = doRequest(t, r, http.MethodGet, fmt.Sprintf("/v1/wizard/%s/slots?date=%s", id, date), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &slots))
	assert.Len(t, slots.Slots, 8)
	assert.NotContains(t, slots.Slots, "9:00 AM")
}

func TestWizardSubmitIncompleteDraft(t *testing.T) {
	r, jm := newTestServer(t)
	token := bearerToken(t, jm, "client-1")

	w := doRequest(t, r, http.MethodPost, "/v1/wizard?service=1", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeWizard(t, w).ID

	// Not at the review stage yet.
	w = doRequest(t, r, http.MethodPost, "/v1/wizard/"+id+"/submit", token, SubmitBody{
		Contact: ContactBody{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			Phone:   "555-0100",
			Address: "1 Main St",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
}

func TestWizardSessionAccess(t *testing.T) {
	r, jm := newTestServer(t)
	owner := bearerToken(t, jm, "client-1")

	w := doRequest(t, r, http.MethodPost, "/v1/wizard", owner, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeWizard(t, w).ID

	t.Run("no token", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/v1/wizard/"+id, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("other user", func(t *testing.T) {
		other := bearerToken(t, jm, "client-2")
		w := doRequest(t, r, http.MethodGet, "/v1/wizard/"+id, other, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/v1/wizard/"+id, owner, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		w := doRequest(t, r, http.MethodGet, "/v1/wizard/does-not-exist", owner, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

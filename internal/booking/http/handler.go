package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makingbetter/serveconnect-backend/internal/auth"
	"github.com/makingbetter/serveconnect-backend/internal/booking"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	// Access control: regular users only ever see their own bookings; admins
	// may filter by any client or see all.
	clientID := auth.GetUserID(c)
	if auth.GetUserRole(c) == "admin" {
		clientID = req.ClientID // may be empty to show all
	}

	filter := booking.Filter{
		ClientID:   clientID,
		ProviderID: req.ProviderID,
		ServiceID:  req.ServiceID,
		Status:     req.Status,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, filter.Page, filter.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	// Owner or admin only.
	if b.ClientID != auth.GetUserID(c) && auth.GetUserRole(c) != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Update(c *gin.Context) {
	var body UpdateBookingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	callerID := auth.GetUserID(c)
	isAdmin := auth.GetUserRole(c) == "admin"

	var (
		b   *booking.Booking
		err error
	)
	if booking.Status(body.Status) == booking.StatusCancelled {
		// Clients may cancel their own bookings.
		b, err = h.service.Cancel(c.Request.Context(), c.Param("id"), callerID, isAdmin)
	} else {
		// Any other transition is an admin operation.
		if !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
		b, err = h.service.SetStatus(c.Request.Context(), c.Param("id"), booking.Status(body.Status))
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

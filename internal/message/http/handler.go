package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/makingbetter/serveconnect-backend/internal/auth"
	"github.com/makingbetter/serveconnect-backend/internal/message"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/response"
)

type Handler struct {
	service message.Service
}

func NewHandler(service message.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Send(c *gin.Context) {
	var body SendMessageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	m, err := h.service.Send(c.Request.Context(), auth.GetUserID(c), body.RecipientID, body.Body)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewMessageResponse(m))
}

// List returns the caller's inbox, or a single conversation when the "with"
// query parameter names the counterpart.
func (h *Handler) List(c *gin.Context) {
	var req ListMessagesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)

	var (
		messages []*message.Message
		total    int
		err      error
	)
	if req.With != "" {
		messages, total, err = h.service.Conversation(c.Request.Context(), userID, req.With, req.Page, req.PageSize)
	} else {
		messages, total, err = h.service.Inbox(c.Request.Context(), userID, req.UnreadOnly, req.Page, req.PageSize)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MessageResponse, len(messages))
	for i, m := range messages {
		items[i] = NewMessageResponse(m)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), auth.GetUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

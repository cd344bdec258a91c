package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/makingbetter/serveconnect-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON body sent for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error response. An AppError in the chain
// supplies the status code and the user-facing message; anything else is
// reported as an opaque 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

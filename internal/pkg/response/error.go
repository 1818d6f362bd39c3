package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hoteldesk/hotel-booking-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON envelope for all error replies.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes a JSON error reply. AppErrors carry their own status code;
// anything else is treated as an internal failure and hidden from the client.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

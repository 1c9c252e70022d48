package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unavailable(c *gin.Context, code, message string) {
	Write(c, http.StatusServiceUnavailable, code, message)
}

// FromError maps the error taxonomy onto HTTP statuses.
func FromError(c *gin.Context, err error) {
	if code, ok := BusinessCode(err); ok {
		switch code {
		case CodeSlotConflict, CodeSlotUnavailable:
			Conflict(c, code, "Slot is no longer available.")
		case CodeAppointmentNotFound, CodeClientNotFound:
			NotFound(c, code, "Not found.")
		default:
			BadRequest(c, code, err.Error())
		}
		return
	}

	if IsPersistence(err) {
		Unavailable(c, "persistence_error", "Storage is unavailable, try again later.")
		return
	}

	Internal(c, "internal_error", "Unexpected error.")
}

package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/funkypants5/wedding-backend/models"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// OK writes a success envelope.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// Fail writes a failure envelope.
func Fail(c *gin.Context, status int, message string, errs ...string) {
	c.JSON(status, Response{Success: false, Message: message, Errors: errs})
}

// FailErr maps a domain error onto the envelope. Not-found and not-a-member
// answer identically so responses never reveal whether a document exists.
// Anything outside the domain taxonomy is treated as internal and surfaces
// without detail.
func FailErr(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		fields := make([]string, len(verr.Fields))
		for i, f := range verr.Fields {
			fields[i] = f.String()
		}
		Fail(c, http.StatusBadRequest, "validation failed", fields...)
	case errors.Is(err, models.ErrIndexOutOfRange):
		Fail(c, http.StatusBadRequest, models.ErrIndexOutOfRange.Error())
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrNotMember):
		Fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, models.ErrForbidden):
		Fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, models.ErrDuplicateEmail):
		Fail(c, http.StatusConflict, models.ErrDuplicateEmail.Error())
	case errors.Is(err, models.ErrStaleIndex):
		Fail(c, http.StatusConflict, models.ErrStaleIndex.Error())
	case errors.Is(err, models.ErrCodeSpaceExhausted), errors.Is(err, models.ErrConflict):
		Fail(c, http.StatusConflict, "conflict")
	case errors.Is(err, models.ErrConcurrency):
		Fail(c, http.StatusConflict, models.ErrConcurrency.Error())
	default:
		Fail(c, http.StatusInternalServerError, "something went wrong")
	}
}

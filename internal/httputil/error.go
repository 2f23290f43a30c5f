package httputil

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// CodeValidation marks errors caused by invalid field values.
const CodeValidation = "validation_error"

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"the title must not be empty"` // The error message
	Code  string `json:"code,omitempty" example:"validation_error"`   // Machine readable reason
	Field string `json:"field,omitempty" example:"title"`             // The field that failed validation
}

// NewError writes an error response with the message of err.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// Status returns the HTTP status for an error returned by the models package.
func Status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// ErrorHandler writes the response for an error returned by the models package.
func ErrorHandler(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, HTTPError{
			Error: validationErr.Message,
			Code:  CodeValidation,
			Field: validationErr.Field,
		})
		return
	}

	status := Status(err)
	if status == http.StatusInternalServerError {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		err = fmt.Errorf("%w. The request id is '%v', send this to your server administrator to help them finding the problem", models.ErrGeneral, requestid.Get(c))
	}

	NewError(c, status, err)
}

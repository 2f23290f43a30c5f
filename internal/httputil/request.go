package httputil

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ContextURL is the gin context key holding the configured API base URL.
const ContextURL = "pennywise-api-url"

// BaseURL returns the configured API base URL for link construction. Without
// a configured URL, it is derived from the request.
func BaseURL(c *gin.Context) string {
	if url := c.GetString(ContextURL); url != "" {
		return url
	}

	return RequestHost(c)
}

// RequestHost returns the scheme and host the request was sent to.
//
// The scheme defaults to http and only switches to https
// if the x-forwarded-proto header is set to "https".
func RequestHost(c *gin.Context) string {
	scheme := "http"
	if c.Request.Header.Get("x-forwarded-proto") == "https" {
		scheme = "https"
	}

	// We can reasonably expect a reverse proxy to set x-forwarded-host
	// as it is a de-facto standard.
	//
	// If it is set, we use it to construct the links and use the
	// x-forwarded-prefix header as prefix. If that is unset,
	// fall back to "/api"
	host := c.Request.Host
	var forwardedPrefix string

	xForwardedHost := c.Request.Header.Get("x-forwarded-host")
	if xForwardedHost != "" {
		host = xForwardedHost

		forwardedPrefix = c.Request.Header.Get("x-forwarded-prefix")

		if forwardedPrefix == "" {
			forwardedPrefix = "/api"
		}
	}

	return scheme + "://" + host + forwardedPrefix
}

// UUIDFromString parses a resource ID. If it is not a valid UUID, the error
// response is written and ok is false.
func UUIDFromString(c *gin.Context, s string) (id uuid.UUID, ok bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		NewError(c, http.StatusBadRequest, ErrInvalidUUID)
		return uuid.Nil, false
	}

	return id, true
}

// BindData binds the data from the request to the struct passed in the interface.
func BindData(c *gin.Context, data interface{}) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			NewError(c, http.StatusBadRequest, ErrRequestBodyEmpty)
			return ErrRequestBodyEmpty
		}

		log.Debug().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		NewError(c, http.StatusBadRequest, ErrInvalidBody)
		return ErrInvalidBody
	}

	return nil
}

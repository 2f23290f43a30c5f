package v1

import (
	"github.com/pennywise-app/backend/internal/httputil"
)

type httpError = httputil.HTTPError

// URIID is used to bind the ID of a resource from the path.
type URIID struct {
	ID string `uri:"id" binding:"required"`
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of resources returned for this request
	Total  int64 `json:"total" example:"827"` // The total amount of resources matching the query
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources returned for this request
}

type ResponseMessage struct {
	Message string `json:"message" example:"your password has been reset"`
}

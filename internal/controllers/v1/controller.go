// Package v1 implements the handlers of the v1 API.
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/auth"
	"github.com/pennywise-app/backend/internal/budget"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/ledger"
	"github.com/pennywise-app/backend/internal/notify"
)

var ErrRegistrationClosed = errors.New("registration is not open for this email address")

// Controller holds the dependencies of the v1 handlers.
type Controller struct {
	Ledger      *ledger.Service
	Tokens      *auth.Manager
	Queue       notify.Queue
	Allowlist   auth.Allowlist
	FrontendURL string
}

type Response struct {
	Links Links `json:"links"`
}

type Links struct {
	Auth     string `json:"auth" example:"https://example.com/api/v1/auth"`         // URL of the authentication endpoints
	Expenses string `json:"expenses" example:"https://example.com/api/v1/expenses"` // URL of expense list endpoint
	Budget   string `json:"budget" example:"https://example.com/api/v1/budget"`     // URL of the monthly budget endpoint
}

// RegisterRoutes registers all v1 routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	co.RegisterAuthRoutes(r.Group("/auth"))
	co.RegisterExpenseRoutes(r.Group("/expenses"))
	co.RegisterBudgetRoutes(r.Group("/budget"))
}

// @Summary		v1 API
// @Description	Returns general information about the v1 API
// @Tags			v1
// @Success		200	{object}	Response
// @Router			/v1 [get]
func Get(c *gin.Context) {
	url := httputil.BaseURL(c) + "/v1"

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Auth:     url + "/auth",
			Expenses: url + "/expenses",
			Budget:   url + "/budget",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// authenticated returns the middleware that requires a valid access token.
func (co Controller) authenticated() gin.HandlerFunc {
	return auth.Middleware(co.Tokens)
}

// status returns the HTTP status for errors of the v1 handlers.
func status(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrRegistrationClosed):
		return http.StatusForbidden
	case errors.Is(err, ledger.ErrConcurrentUpdate):
		return http.StatusConflict
	default:
		return httputil.Status(err)
	}
}

// handleError writes the error response for err.
func handleError(c *gin.Context, err error) {
	var ceiling *budget.CeilingError
	if errors.As(err, &ceiling) {
		c.JSON(http.StatusBadRequest, newBudgetLimitError(ceiling))
		return
	}

	s := status(err)
	if s == http.StatusUnauthorized || s == http.StatusForbidden || s == http.StatusConflict {
		httputil.NewError(c, s, err)
		return
	}

	httputil.ErrorHandler(c, err)
}

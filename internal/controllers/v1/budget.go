package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/auth"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/types"
)

// RegisterBudgetRoutes registers the routes for the monthly budget with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBudget)
	r.GET("", co.authenticated(), GetBudget)
	r.POST("", co.authenticated(), co.SetBudget)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budget
// @Success		204
// @Router			/v1/budget [options]
func OptionsBudget(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get budget
// @Description	Returns the budget and the spending for a month. If no budget is set, data is null.
// @Tags			Budget
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	BudgetMonthResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			month	query		string	false	"The month, YYYY-MM-DD or YYYY-MM. Defaults to the current month."
// @Router			/v1/budget [get]
func GetBudget(c *gin.Context) {
	month := types.CurrentMonth()
	if s := c.Query("month"); s != "" {
		m, err := types.ParseMonthLenient(s)
		if err != nil {
			httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
			return
		}
		month = m
	}

	owner := auth.Owner(c)

	b, err := models.FindBudget(models.DB, owner, month)
	if err != nil {
		handleError(c, err)
		return
	}

	spent, err := models.TotalSpent(models.DB, owner, month)
	if err != nil {
		handleError(c, err)
		return
	}

	r := BudgetMonthResponse{
		Month: month,
		Spent: spent,
	}

	if b != nil {
		data := newBudget(*b)
		remaining := b.Remaining(spent)
		r.Data = &data
		r.Remaining = &remaining
	}

	c.JSON(http.StatusOK, r)
}

// @Summary		Set budget
// @Description	Creates or replaces the budget for a month. This re-arms the spending alert of the month.
// @Tags			Budget
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budget [post]
func (co Controller) SetBudget(c *gin.Context) {
	var editable BudgetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if editable.Month.IsZero() {
		handleError(c, &models.ValidationError{Field: "month", Message: "the month must be set"})
		return
	}

	b, err := co.Ledger.SetBudget(c, models.DB, auth.Owner(c), editable.Month, editable.TotalBalance, editable.AlertLimit)
	if err != nil {
		handleError(c, err)
		return
	}

	data := newBudget(b)
	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/pennywise-app/backend/internal/auth"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
)

// defaultLimit is the number of expenses returned when no limit is requested.
const defaultLimit = 50

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsExpenseList)
		r.GET("", co.authenticated(), GetExpenses)
		r.POST("", co.authenticated(), co.CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:id", OptionsExpenseDetail)
		r.GET("/:id", co.authenticated(), GetExpense)
		r.PATCH("/:id", co.authenticated(), co.UpdateExpense)
		r.DELETE("/:id", co.authenticated(), co.DeleteExpense)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Router			/v1/expenses [options]
func OptionsExpenseList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [options]
func OptionsExpenseDetail(c *gin.Context) {
	if _, ok := httputil.UUIDFromString(c, c.Param("id")); !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		List expenses
// @Description	Returns the expenses of the authenticated user, newest first
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ExpenseListResponse
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		500	{object}	httpError
// @Router			/v1/expenses [get]
// @Param			category	query	string	false	"Filter by category"
// @Param			fromDate	query	string	false	"Expenses on or after this date, YYYY-MM-DD"
// @Param			untilDate	query	string	false	"Expenses on or before this date, YYYY-MM-DD"
// @Param			month		query	string	false	"Expenses in this month, YYYY-MM"
// @Param			search		query	string	false	"Search for this text in the title"
// @Param			offset		query	uint	false	"The offset of the first expense returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of expenses to return. Defaults to 50."
func GetExpenses(c *gin.Context) {
	var query ExpenseQueryFilter
	if err := c.BindQuery(&query); err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return
	}

	filter, err := query.model()
	if err != nil {
		handleError(c, err)
		return
	}

	if !c.Request.URL.Query().Has("limit") {
		filter.Limit = defaultLimit
	}

	expenses, total, err := models.ListExpenses(models.DB, auth.Owner(c), filter)
	if err != nil {
		handleError(c, err)
		return
	}

	// When there are no resources, we want an empty list, not null
	data := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		data = append(data, newExpense(c, e))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: query.Offset,
			Limit:  filter.Limit,
		},
	})
}

// @Summary		Create expense
// @Description	Creates a new expense. If a budget is set for the month of the expense and the expense
// @Description	would push the spending of the month above its total balance, the expense is rejected
// @Description	with the code "budget_limit_exceeded".
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		201		{object}	ExpenseResponse
// @Failure		400		{object}	BudgetLimitError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			expense	body		ExpenseEditable	true	"Expense"
// @Router			/v1/expenses [post]
func (co Controller) CreateExpense(c *gin.Context) {
	var editable ExpenseEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	expense, err := editable.model(auth.Owner(c))
	if err != nil {
		handleError(c, err)
		return
	}

	if err := co.Ledger.CreateExpense(c, models.DB, &expense); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: newExpense(c, expense)})
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	ExpenseResponse
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	id, ok := httputil.UUIDFromString(c, c.Param("id"))
	if !ok {
		return
	}

	expense, err := models.FindExpense(models.DB, auth.Owner(c), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: newExpense(c, expense)})
}

// @Summary		Update expense
// @Description	Updates an expense. Only values to be updated need to be specified.
// @Description	The budget of the target month is checked like for new expenses.
// @Tags			Expenses
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	ExpenseResponse
// @Failure		400		{object}	BudgetLimitError
// @Failure		401		{object}	httpError
// @Failure		404		{object}	httpError
// @Failure		409		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			id		path		string					true	"ID formatted as string"
// @Param			expense	body		ExpensePatchEditable	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func (co Controller) UpdateExpense(c *gin.Context) {
	id, ok := httputil.UUIDFromString(c, c.Param("id"))
	if !ok {
		return
	}

	var editable ExpensePatchEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	patch, err := editable.patch()
	if err != nil {
		handleError(c, err)
		return
	}

	expense, err := co.Ledger.UpdateExpense(c, models.DB, auth.Owner(c), id, patch)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: newExpense(c, expense)})
}

// @Summary		Delete expense
// @Description	Deletes an expense
// @Tags			Expenses
// @Security		BearerAuth
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func (co Controller) DeleteExpense(c *gin.Context) {
	id, ok := httputil.UUIDFromString(c, c.Param("id"))
	if !ok {
		return
	}

	if err := co.Ledger.DeleteExpense(c, models.DB, auth.Owner(c), id); err != nil {
		handleError(c, err)
		return
	}

	c.Render(http.StatusNoContent, render.JSON{})
}

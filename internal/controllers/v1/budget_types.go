package v1

import (
	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/budget"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

type Budget struct {
	ID           uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Month        types.Month     `json:"month" swaggertype:"string" example:"2025-03-01"`
	TotalBalance decimal.Decimal `json:"total_balance" swaggertype:"string" example:"1000.00"` // The most that can be spent in the month
	AlertLimit   decimal.Decimal `json:"alert_limit" swaggertype:"string" example:"800.00"`    // Spending above this sends the alert
	AlertSent    bool            `json:"alert_sent" example:"false"`                           // Whether the alert for the month has been sent
}

func newBudget(b models.Budget) Budget {
	return Budget{
		ID:           b.ID,
		Month:        b.Month,
		TotalBalance: b.TotalBalance,
		AlertLimit:   b.AlertLimit,
		AlertSent:    b.AlertSent,
	}
}

type BudgetEditable struct {
	Month        types.Month     `json:"month" swaggertype:"string" example:"2025-03-01"`
	TotalBalance decimal.Decimal `json:"total_balance" swaggertype:"string" example:"1000.00"`
	AlertLimit   decimal.Decimal `json:"alert_limit" swaggertype:"string" example:"800.00"`
}

type BudgetResponse struct {
	Data *Budget `json:"data"` // Data for the budget, null if no budget is set for the month
}

type BudgetMonthResponse struct {
	Data      *Budget          `json:"data"`                                            // Data for the budget, null if no budget is set for the month
	Month     types.Month      `json:"month" swaggertype:"string" example:"2025-03-01"` // The month
	Spent     decimal.Decimal  `json:"spent" swaggertype:"string" example:"512.40"`     // Sum of all expenses in the month
	Remaining *decimal.Decimal `json:"remaining" swaggertype:"string" example:"487.60"` // Amount left to spend, null if no budget is set
}

// BudgetLimitError is the response for expenses rejected because they
// exceed the budget of their month.
type BudgetLimitError struct {
	Error        string          `json:"error" example:"this expense exceeds your budget for March 2025"`
	Code         string          `json:"code" example:"budget_limit_exceeded"` // Machine readable reason
	Redirect     string          `json:"redirect" example:"/budget"`           // Where the budget can be adjusted
	Month        types.Month     `json:"month" swaggertype:"string" example:"2025-03-01"`
	TotalBalance decimal.Decimal `json:"total_balance" swaggertype:"string" example:"1000.00"`
	Spent        decimal.Decimal `json:"spent" swaggertype:"string" example:"980.00"` // Spent in the month before this expense
	Remaining    decimal.Decimal `json:"remaining" swaggertype:"string" example:"20.00"`
	Amount       decimal.Decimal `json:"amount" swaggertype:"string" example:"42.17"` // Amount of the rejected expense
}

func newBudgetLimitError(e *budget.CeilingError) BudgetLimitError {
	return BudgetLimitError{
		Error:        e.Error(),
		Code:         e.Code(),
		Redirect:     e.Redirect(),
		Month:        e.Month,
		TotalBalance: e.TotalBalance,
		Spent:        e.Spent,
		Remaining:    e.Remaining(),
		Amount:       e.Amount,
	}
}

package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/ledger"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
)

type Expense struct {
	ID        uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Title     string          `json:"title" example:"Groceries"`
	Amount    decimal.Decimal `json:"amount" swaggertype:"string" example:"42.17"`
	Category  models.Category `json:"category" example:"Food"`
	Date      types.Date      `json:"date" swaggertype:"string" example:"2025-03-14"`
	CreatedAt time.Time       `json:"created_at" example:"2025-03-14T18:02:11Z"`
	UpdatedAt time.Time       `json:"updated_at" example:"2025-03-14T18:02:11Z"`
	Links     ExpenseLinks    `json:"links"`
}

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/expenses/65392deb-5e92-4268-b114-297faad6cdce"` // The expense itself
}

func newExpense(c *gin.Context, e models.Expense) Expense {
	return Expense{
		ID:        e.ID,
		Title:     e.Title,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		Links: ExpenseLinks{
			Self: httputil.BaseURL(c) + "/v1/expenses/" + e.ID.String(),
		},
	}
}

type ExpenseEditable struct {
	Title    string          `json:"title" example:"Groceries"`
	Amount   decimal.Decimal `json:"amount" swaggertype:"string" example:"42.17"`
	Category string          `json:"category" example:"Food"`
	Date     types.Date      `json:"date" swaggertype:"string" example:"2025-03-14"`
}

func (e ExpenseEditable) model(owner uuid.UUID) (models.Expense, error) {
	category, err := parseCategory(e.Category)
	if err != nil {
		return models.Expense{}, err
	}

	return models.Expense{
		OwnerID:  owner,
		Title:    e.Title,
		Amount:   e.Amount,
		Category: category,
		Date:     e.Date,
	}, nil
}

// ExpensePatchEditable contains the fields of an expense that can be
// updated. Fields that are omitted are not changed.
type ExpensePatchEditable struct {
	Title    *string          `json:"title" example:"Groceries"`
	Amount   *decimal.Decimal `json:"amount" swaggertype:"string" example:"42.17"`
	Category *string          `json:"category" example:"Food"`
	Date     *types.Date      `json:"date" swaggertype:"string" example:"2025-03-14"`
}

func (e ExpensePatchEditable) patch() (ledger.ExpensePatch, error) {
	patch := ledger.ExpensePatch{
		Title:  e.Title,
		Amount: e.Amount,
		Date:   e.Date,
	}

	if e.Category != nil {
		category, err := parseCategory(*e.Category)
		if err != nil {
			return ledger.ExpensePatch{}, err
		}
		patch.Category = &category
	}

	return patch, nil
}

func parseCategory(s string) (models.Category, error) {
	category, err := models.ParseCategory(s)
	if err != nil {
		return "", &models.ValidationError{Field: "category", Message: err.Error()}
	}

	return category, nil
}

type ExpenseResponse struct {
	Data Expense `json:"data"` // Data for the expense
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`       // List of expenses
	Pagination *Pagination `json:"pagination"` // Pagination information
}

type ExpenseQueryFilter struct {
	Category  string `form:"category"`  // Exact match for the category, case insensitive
	FromDate  string `form:"fromDate"`  // Expenses on or after this date
	UntilDate string `form:"untilDate"` // Expenses on or before this date
	Month     string `form:"month"`     // Expenses in this month, YYYY-MM
	Search    string `form:"search"`    // Search for this text in the title
	Offset    uint   `form:"offset"`    // The offset of the first expense returned
	Limit     int    `form:"limit"`     // Maximum number of expenses to return
}

func (f ExpenseQueryFilter) model() (models.ExpenseFilter, error) {
	filter := models.ExpenseFilter{
		Search: f.Search,
		Offset: int(f.Offset),
		Limit:  f.Limit,
	}

	if f.Category != "" {
		category, err := parseCategory(f.Category)
		if err != nil {
			return models.ExpenseFilter{}, err
		}
		filter.Category = category
	}

	if f.FromDate != "" {
		date, err := types.ParseDate(f.FromDate)
		if err != nil {
			return models.ExpenseFilter{}, httputil.ErrInvalidQueryString
		}
		filter.FromDate = date
	}

	if f.UntilDate != "" {
		date, err := types.ParseDate(f.UntilDate)
		if err != nil {
			return models.ExpenseFilter{}, httputil.ErrInvalidQueryString
		}
		filter.UntilDate = date
	}

	if f.Month != "" {
		month, err := types.ParseMonth(f.Month)
		if err != nil {
			return models.ExpenseFilter{}, httputil.ErrInvalidQueryString
		}
		filter.Month = month
	}

	return filter, nil
}

package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxAmount is the exclusive upper bound for expense amounts.
var MaxAmount = decimal.New(1, 8)

// Expense is a single spending record of a user.
type Expense struct {
	DefaultModel
	OwnerID  uuid.UUID       `gorm:"type:uuid;index"`
	Owner    User            `gorm:"constraint:OnDelete:CASCADE"`
	Title    string          `gorm:"size:255"`
	Amount   decimal.Decimal `gorm:"type:DECIMAL(10,2)"`
	Category Category        `gorm:"size:32"`
	Date     types.Date      `gorm:"index"`
}

// Validate checks all fields of the expense.
func (e *Expense) Validate() error {
	e.Title = strings.TrimSpace(e.Title)

	if e.OwnerID == uuid.Nil {
		return invalid("owner", "the expense has no owner")
	}

	if e.Title == "" {
		return invalid("title", "the title must not be empty")
	}

	if len(e.Title) > 255 {
		return invalid("title", "the title must be at most 255 characters long")
	}

	if err := validateAmount("amount", e.Amount, false); err != nil {
		return err
	}

	if !e.Category.Valid() {
		return invalid("category", "the category is not valid")
	}

	if e.Date.IsZero() {
		return invalid("date", "the date must be set")
	}

	if e.Date.After(types.Today()) {
		return invalid("date", "the date must not be in the future")
	}

	return nil
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	return e.Validate()
}

// Month returns the month the expense counts against.
func (e Expense) Month() types.Month {
	return e.Date.Month()
}

// validateAmount checks that an amount has at most two fractional digits and fits
// into the stored precision. Zero is only allowed when allowZero is set.
func validateAmount(field string, amount decimal.Decimal, allowZero bool) error {
	if amount.IsNegative() {
		return invalid(field, "the "+field+" must not be negative")
	}

	if !allowZero && amount.IsZero() {
		return invalid(field, "the "+field+" must be greater than zero")
	}

	if !amount.Equal(amount.Round(2)) {
		return invalid(field, "the "+field+" must have at most two decimal places")
	}

	if amount.GreaterThanOrEqual(MaxAmount) {
		return invalid(field, "the "+field+" must be less than "+MaxAmount.String())
	}

	return nil
}

// ExpenseFilter restricts the expenses returned by ListExpenses.
type ExpenseFilter struct {
	Category  Category
	FromDate  types.Date
	UntilDate types.Date
	Month     types.Month
	Search    string
	Offset    int
	Limit     int
}

// ListExpenses returns the expenses of owner matching the filter, newest first,
// together with the number of matches without offset and limit.
func ListExpenses(db *gorm.DB, owner uuid.UUID, filter ExpenseFilter) ([]Expense, int64, error) {
	query := db.Model(&Expense{}).Where("owner_id = ?", owner)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if !filter.FromDate.IsZero() {
		query = query.Where("date(expenses.date) >= date(?)", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		query = query.Where("date(expenses.date) <= date(?)", filter.UntilDate)
	}

	if !filter.Month.IsZero() {
		query = query.Where("date(expenses.date) >= date(?) AND date(expenses.date) < date(?)", filter.Month, filter.Month.AddDate(0, 1))
	}

	if filter.Search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var expenses []Expense
	err := query.Order("date(expenses.date) DESC, created_at DESC").Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}

	return expenses, count, nil
}

// FindExpense returns the expense with the given ID if it belongs to owner.
func FindExpense(db *gorm.DB, owner, id uuid.UUID) (Expense, error) {
	var expense Expense
	err := db.Where("owner_id = ?", owner).First(&expense, "id = ?", id).Error
	return expense, err
}

package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the spending plan of a user for one month.
//
// AlertSent latches once the alert for the month has been handed to the
// notifier. Only UpsertBudget clears it.
type Budget struct {
	DefaultModel
	OwnerID      uuid.UUID       `gorm:"type:uuid;uniqueIndex:budget_owner_month"`
	Owner        User            `gorm:"constraint:OnDelete:CASCADE"`
	Month        types.Month     `gorm:"uniqueIndex:budget_owner_month"`
	TotalBalance decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
	AlertLimit   decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
	AlertSent    bool            `gorm:"default:false"`
}

// Validate checks the budget limits.
func (b *Budget) Validate() error {
	if b.OwnerID == uuid.Nil {
		return invalid("owner", "the budget has no owner")
	}

	if b.Month.IsZero() {
		return invalid("month", "the month must be set")
	}

	if err := validateAmount("total_balance", b.TotalBalance, true); err != nil {
		return err
	}

	if err := validateAmount("alert_limit", b.AlertLimit, true); err != nil {
		return err
	}

	if b.AlertLimit.GreaterThan(b.TotalBalance) {
		return invalid("alert_limit", "the alert_limit must not be greater than the total_balance")
	}

	return nil
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Month = types.MonthOf(b.Month.Time())
	return b.Validate()
}

// Remaining returns the part of the total balance not yet spent.
func (b Budget) Remaining(spent decimal.Decimal) decimal.Decimal {
	return b.TotalBalance.Sub(spent)
}

// FindBudget returns the budget of owner for month. If there is none, both
// the budget and the error are nil.
func FindBudget(db *gorm.DB, owner uuid.UUID, month types.Month) (*Budget, error) {
	var budget Budget
	err := db.Where("owner_id = ? AND date(month) = date(?)", owner, month).First(&budget).Error
	if errors.Is(err, ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &budget, nil
}

// UpsertBudget creates or updates the budget of owner for month. Setting the
// limits always clears the alert latch.
//
// Callers must hold the lock for (owner, month).
func UpsertBudget(db *gorm.DB, owner uuid.UUID, month types.Month, total, alert decimal.Decimal) (Budget, error) {
	existing, err := FindBudget(db, owner, month)
	if err != nil {
		return Budget{}, err
	}

	budget := Budget{OwnerID: owner, Month: types.MonthOf(month.Time())}
	if existing != nil {
		budget = *existing
	}

	budget.TotalBalance = total
	budget.AlertLimit = alert
	budget.AlertSent = false

	if existing == nil {
		err = db.Create(&budget).Error
	} else {
		err = db.Save(&budget).Error
	}

	if err != nil {
		return Budget{}, err
	}

	return budget, nil
}

// MarkAlertSent sets the alert latch of the budget.
func MarkAlertSent(db *gorm.DB, id uuid.UUID) error {
	return db.Model(&Budget{}).Where("id = ?", id).UpdateColumn("alert_sent", true).Error
}

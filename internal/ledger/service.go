// Package ledger writes expenses and budgets under the budget rules.
//
// Every write that changes the spend of a month holds the lock for the
// owner and month while the ceiling check, the write and the alert check run.
package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/budget"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// maxUpdateAttempts bounds the retries of an update whose expense keeps
// moving between months.
const maxUpdateAttempts = 5

// ErrConcurrentUpdate is returned when an expense changed its month during
// every update attempt.
var ErrConcurrentUpdate = errors.New("the expense was changed by another request, please try again")

var errMonthsChanged = errors.New("expense moved to a month that is not locked")

type Service struct {
	Evaluator *budget.Evaluator
	Locker    budget.Locker
}

func NewService(evaluator *budget.Evaluator, locker budget.Locker) *Service {
	return &Service{
		Evaluator: evaluator,
		Locker:    locker,
	}
}

// ExpensePatch holds the fields of an expense update. Nil fields are kept.
type ExpensePatch struct {
	Title    *string
	Amount   *decimal.Decimal
	Category *models.Category
	Date     *types.Date
}

func (p ExpensePatch) apply(e *models.Expense) {
	if p.Title != nil {
		e.Title = *p.Title
	}

	if p.Amount != nil {
		e.Amount = *p.Amount
	}

	if p.Category != nil {
		e.Category = *p.Category
	}

	if p.Date != nil {
		e.Date = *p.Date
	}
}

// CreateExpense stores a new expense if it fits into the budget of its month.
// A rejected expense is not stored and a *budget.CeilingError is returned.
func (s *Service) CreateExpense(ctx context.Context, db *gorm.DB, expense *models.Expense) error {
	if err := expense.Validate(); err != nil {
		return err
	}

	unlock := budget.LockMonths(ctx, s.Locker, expense.OwnerID, expense.Month())
	defer unlock()

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.Evaluator.CheckCeiling(ctx, tx, expense.OwnerID, expense.Date, expense.Amount); err != nil {
			return err
		}

		return tx.Create(expense).Error
	})
	if err != nil {
		return err
	}

	s.Evaluator.CheckAlert(ctx, db, expense.OwnerID, expense.Date)
	return nil
}

// UpdateExpense applies patch to the expense of owner identified by id.
//
// The ceiling check runs when the update raises the spend of the target
// month, that is when the amount grows or the expense moves to another
// month. The expense's own stored amount is not counted against it.
//
// The months to lock are only known after reading the expense. When a
// concurrent update moved the expense before the locks were taken, the
// update is retried with the locks of the new months.
func (s *Service) UpdateExpense(ctx context.Context, db *gorm.DB, owner, id uuid.UUID, patch ExpensePatch) (models.Expense, error) {
	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		current, err := models.FindExpense(db.WithContext(ctx), owner, id)
		if err != nil {
			return models.Expense{}, err
		}

		updated := current
		patch.apply(&updated)
		if err := updated.Validate(); err != nil {
			return models.Expense{}, err
		}

		updated, err = s.updateLocked(ctx, db, owner, id, patch, current.Month(), updated.Month())
		if errors.Is(err, errMonthsChanged) {
			continue
		}

		return updated, err
	}

	return models.Expense{}, ErrConcurrentUpdate
}

// updateLocked runs the update while holding the locks for the given months.
// It returns errMonthsChanged if the stored or the updated expense falls
// into a month that is not locked.
func (s *Service) updateLocked(ctx context.Context, db *gorm.DB, owner, id uuid.UUID, patch ExpensePatch, months ...types.Month) (models.Expense, error) {
	unlock := budget.LockMonths(ctx, s.Locker, owner, months...)
	defer unlock()

	locked := func(m types.Month) bool {
		return slices.ContainsFunc(months, m.Equal)
	}

	var stored, updated models.Expense
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		stored, err = models.FindExpense(tx, owner, id)
		if err != nil {
			return err
		}

		updated = stored
		patch.apply(&updated)

		if !locked(stored.Month()) || !locked(updated.Month()) {
			return errMonthsChanged
		}

		raises := !updated.Month().Equal(stored.Month()) || updated.Amount.GreaterThan(stored.Amount)
		if raises {
			if err := s.Evaluator.CheckCeilingReplacing(ctx, tx, owner, updated.Date, updated.Amount, id); err != nil {
				return err
			}
		}

		return tx.Save(&updated).Error
	})
	if err != nil {
		return models.Expense{}, err
	}

	s.Evaluator.CheckAlert(ctx, db, owner, updated.Date)
	if !stored.Month().Equal(updated.Month()) {
		s.Evaluator.CheckAlert(ctx, db, owner, stored.Date)
	}

	return updated, nil
}

// DeleteExpense deletes the expense of owner identified by id.
//
// Deleting never clears the alert latch of the month.
func (s *Service) DeleteExpense(ctx context.Context, db *gorm.DB, owner, id uuid.UUID) error {
	expense, err := models.FindExpense(db.WithContext(ctx), owner, id)
	if err != nil {
		return err
	}

	unlock := budget.LockMonths(ctx, s.Locker, owner, expense.Month())
	defer unlock()

	err = db.WithContext(ctx).Where("owner_id = ?", owner).Delete(&models.Expense{}, "id = ?", id).Error
	if err != nil {
		return err
	}

	// Spend only falls on delete, this never alerts
	s.Evaluator.CheckAlert(ctx, db, owner, expense.Date)
	return nil
}

// SetBudget creates or replaces the budget of owner for month. The alert
// latch of the month is cleared.
func (s *Service) SetBudget(ctx context.Context, db *gorm.DB, owner uuid.UUID, month types.Month, total, alert decimal.Decimal) (models.Budget, error) {
	unlock := budget.LockMonths(ctx, s.Locker, owner, month)
	defer unlock()

	var result models.Budget
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := models.UpsertBudget(tx, owner, month, total, alert)
		result = b
		return err
	})

	return result, err
}

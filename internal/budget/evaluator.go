// Package budget decides whether an expense write fits into the monthly
// budget of its owner and when the monthly spending alert fires.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/notify"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	// CodeLimitExceeded is the reason code of a ceiling rejection.
	CodeLimitExceeded = "budget_limit_exceeded"

	// RedirectTarget is where clients send users to adjust their budget.
	RedirectTarget = "/budget"
)

// CeilingError is returned when an expense would push the spending of a
// month above its total balance.
type CeilingError struct {
	Month        types.Month
	TotalBalance decimal.Decimal
	Spent        decimal.Decimal
	Amount       decimal.Decimal
}

func (e *CeilingError) Error() string {
	return fmt.Sprintf("this expense exceeds your budget for %s: %s of %s already spent, %s remaining",
		e.Month.Label(),
		e.Spent.StringFixed(2),
		e.TotalBalance.StringFixed(2),
		e.Remaining().StringFixed(2),
	)
}

// Remaining is the amount that can still be spent in the month.
func (e *CeilingError) Remaining() decimal.Decimal {
	return e.TotalBalance.Sub(e.Spent)
}

func (e *CeilingError) Code() string {
	return CodeLimitExceeded
}

func (e *CeilingError) Redirect() string {
	return RedirectTarget
}

// Evaluator runs the ceiling and alert checks.
//
// All checks read through the database handle passed to them, which is
// expected to be the transaction of the write being evaluated. Callers hold
// the lock for (owner, month) while the checks and the write run.
type Evaluator struct {
	queue notify.Queue
}

func NewEvaluator(queue notify.Queue) *Evaluator {
	return &Evaluator{queue: queue}
}

// CheckCeiling returns a *CeilingError if adding amount on date would exceed
// the budget of owner for that month. Without a budget, everything is allowed.
//
// Errors reading the budget or the spend are logged and the write is allowed.
func (e *Evaluator) CheckCeiling(ctx context.Context, db *gorm.DB, owner uuid.UUID, date types.Date, amount decimal.Decimal) error {
	return e.checkCeiling(ctx, db, owner, date, amount, uuid.Nil)
}

// CheckCeilingReplacing is CheckCeiling for an update of an existing expense.
// The stored amount of the replaced expense is not counted as spent.
func (e *Evaluator) CheckCeilingReplacing(ctx context.Context, db *gorm.DB, owner uuid.UUID, date types.Date, amount decimal.Decimal, replaced uuid.UUID) error {
	return e.checkCeiling(ctx, db, owner, date, amount, replaced)
}

func (e *Evaluator) checkCeiling(ctx context.Context, db *gorm.DB, owner uuid.UUID, date types.Date, amount decimal.Decimal, replaced uuid.UUID) error {
	month := date.Month()
	db = db.WithContext(ctx)

	budget, err := models.FindBudget(db, owner, month)
	if err != nil {
		evaluationErrors.WithLabelValues("ceiling").Inc()
		log.Error().Err(err).Str("owner", owner.String()).Str("month", month.String()).Msg("budget lookup failed, allowing expense")
		return nil
	}

	if budget == nil {
		return nil
	}

	spent, err := models.TotalSpentExcluding(db, owner, month, replaced)
	if err != nil {
		evaluationErrors.WithLabelValues("ceiling").Inc()
		log.Error().Err(err).Str("owner", owner.String()).Str("month", month.String()).Msg("spend aggregation failed, allowing expense")
		return nil
	}

	if spent.Add(amount).GreaterThan(budget.TotalBalance) {
		ceilingRejections.Inc()
		return &CeilingError{
			Month:        month,
			TotalBalance: budget.TotalBalance,
			Spent:        spent,
			Amount:       amount,
		}
	}

	return nil
}

// CheckAlert sends the spending alert for the month of date if the spend of
// owner exceeds the alert limit and no alert has been sent yet this month.
//
// The alert is latched only once the notification queue accepted the
// message. If enqueueing fails, the latch stays open and the next write
// retries. It reports whether an alert was enqueued.
func (e *Evaluator) CheckAlert(ctx context.Context, db *gorm.DB, owner uuid.UUID, date types.Date) bool {
	month := date.Month()
	db = db.WithContext(ctx)
	logger := log.With().Str("owner", owner.String()).Str("month", month.String()).Logger()

	budget, err := models.FindBudget(db, owner, month)
	if err != nil {
		evaluationErrors.WithLabelValues("alert").Inc()
		logger.Error().Err(err).Msg("budget lookup failed, skipping alert check")
		return false
	}

	if budget == nil || budget.AlertSent {
		return false
	}

	spent, err := models.TotalSpent(db, owner, month)
	if err != nil {
		evaluationErrors.WithLabelValues("alert").Inc()
		logger.Error().Err(err).Msg("spend aggregation failed, skipping alert check")
		return false
	}

	if !spent.GreaterThan(budget.AlertLimit) {
		return false
	}

	user, err := models.FindUser(db, owner)
	if err != nil {
		evaluationErrors.WithLabelValues("alert").Inc()
		logger.Error().Err(err).Msg("could not load budget owner, skipping alert")
		return false
	}

	msg := notify.BudgetAlert(user.Name, user.Email, month.Label(), budget.AlertLimit, spent, budget.Remaining(spent))
	if err := e.queue.Enqueue(ctx, msg); err != nil {
		alerts.WithLabelValues("enqueue_failed").Inc()
		logger.Error().Err(err).Msg("could not enqueue budget alert, will retry on the next write")
		return false
	}

	if err := models.MarkAlertSent(db, budget.ID); err != nil {
		evaluationErrors.WithLabelValues("alert").Inc()
		logger.Error().Err(err).Msg("budget alert enqueued, but the alert could not be latched")
		return true
	}

	alerts.WithLabelValues("enqueued").Inc()
	logger.Info().Str("spent", spent.StringFixed(2)).Str("alert_limit", budget.AlertLimit.StringFixed(2)).Msg("budget alert enqueued")
	return true
}

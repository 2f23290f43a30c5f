package budget_test

import (
	"context"
	"errors"
	"time"

	"github.com/pennywise-app/backend/internal/budget"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/notify"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	march = types.NewMonth(2024, time.March)
	april = types.NewMonth(2024, time.April)
)

func marchDay(day int) types.Date {
	return types.NewDate(2024, time.March, day)
}

// create runs ceiling check, insert and alert check the way an expense write does.
func (suite *TestSuiteStandard) create(date types.Date, amount string) (bool, error) {
	ctx := context.Background()
	owner := suite.owner.ID

	err := suite.evaluator.CheckCeiling(ctx, models.DB, owner, date, dec(amount))
	if err != nil {
		return false, err
	}

	_ = suite.createTestExpense(owner, date, amount)
	return suite.evaluator.CheckAlert(ctx, models.DB, owner, date), nil
}

func (suite *TestSuiteStandard) TestScenarioAlertTriggers() {
	_ = suite.createTestBudget(suite.owner.ID, march, "1000", "800")
	_ = suite.createTestExpense(suite.owner.ID, marchDay(2), "700")

	alerted, err := suite.create(marchDay(10), "150")
	suite.Require().Nil(err)
	assert.True(suite.T(), alerted)
	assert.True(suite.T(), suite.findBudget(suite.owner.ID, march).AlertSent)

	messages := suite.outbox.Kind(notify.KindBudgetAlert)
	suite.Require().Len(messages, 1)
	assert.Equal(suite.T(), "ada@example.com", messages[0].Recipient)
	assert.Equal(suite.T(), "Spending Alert: Limit Exceeded for March 2024", messages[0].Subject)
	assert.Contains(suite.T(), messages[0].Body, "Total Spent So Far: 850.00")
	assert.Contains(suite.T(), messages[0].Body, "Remaining Balance: 150.00")
}

func (suite *TestSuiteStandard) TestScenarioNoSecondAlert() {
	_ = suite.createTestBudget(suite.owner.ID, march, "1000", "800")
	_ = suite.createTestExpense(suite.owner.ID, marchDay(2), "700")

	alerted, _ := suite.create(marchDay(10), "150")
	suite.Require().True(alerted)

	alerted, err := suite.create(marchDay(11), "50")
	suite.Require().Nil(err)
	assert.False(suite.T(), alerted)

	alerted, err = suite.create(marchDay(12), "99.99")
	suite.Require().Nil(err)
	assert.False(suite.T(), alerted)

	assert.Len(suite.T(), suite.outbox.Kind(notify.KindBudgetAlert), 1)
}

func (suite *TestSuiteStandard) TestScenarioCeilingRejects() {
	_ = suite.createTestBudget(suite.owner.ID, march, "500", "400")
	_ = suite.createTestExpense(suite.owner.ID, marchDay(2), "480")

	err := suite.evaluator.CheckCeiling(context.Background(), models.DB, suite.owner.ID, marchDay(20), dec("50"))

	var ceilingErr *budget.CeilingError
	suite.Require().ErrorAs(err, &ceilingErr)
	assert.Equal(suite.T(), budget.CodeLimitExceeded, ceilingErr.Code())
	assert.Equal(suite.T(), "/budget", ceilingErr.Redirect())
	assert.True(suite.T(), dec("480").Equal(ceilingErr.Spent))
	assert.True(suite.T(), dec("500").Equal(ceilingErr.TotalBalance))
	assert.True(suite.T(), dec("50").Equal(ceilingErr.Amount))
	assert.True(suite.T(), dec("20").Equal(ceilingErr.Remaining()))
	assert.True(suite.T(), march.Equal(ceilingErr.Month))

	assert.False(suite.T(), suite.findBudget(suite.owner.ID, march).AlertSent)
	assert.Empty(suite.T(), suite.outbox.Messages())
}

func (suite *TestSuiteStandard) TestScenarioNoBudget() {
	_ = suite.createTestBudget(suite.owner.ID, march, "10", "5")

	alerted, err := suite.create(types.NewDate(2024, time.April, 3), "9999")
	assert.Nil(suite.T(), err)
	assert.False(suite.T(), alerted)
	assert.Empty(suite.T(), suite.outbox.Messages())

	b, err := models.FindBudget(models.DB, suite.owner.ID, april)
	suite.Require().Nil(err)
	assert.Nil(suite.T(), b)
}

func (suite *TestSuiteStandard) TestScenarioUpsertResetsLatch() {
	_ = suite.createTestBudget(suite.owner.ID, march, "1000", "800")
	_ = suite.createTestExpense(suite.owner.ID, marchDay(2), "850")
	suite.Require().True(suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(2)))

	_ = suite.createTestBudget(suite.owner.ID, march, "1000", "900")
	assert.False(suite.T(), suite.findBudget(suite.owner.ID, march).AlertSent)

	// Spend is below the new limit, the next write does not alert
	alerted, err := suite.create(marchDay(3), "10")
	suite.Require().Nil(err)
	assert.False(suite.T(), alerted)

	// Crossing the new limit alerts again
	alerted, err = suite.create(marchDay(4), "50")
	suite.Require().Nil(err)
	assert.True(suite.T(), alerted)
	assert.Len(suite.T(), suite.outbox.Kind(notify.KindBudgetAlert), 2)
}

func (suite *TestSuiteStandard) TestNoBudgetNeverRejectsNorAlerts() {
	for _, amount := range []string{"0.01", "500", "99999999.99"} {
		alerted, err := suite.create(marchDay(1), amount)
		assert.Nil(suite.T(), err, amount)
		assert.False(suite.T(), alerted, amount)
	}

	assert.Empty(suite.T(), suite.outbox.Messages())
}

func (suite *TestSuiteStandard) TestCeilingBoundary() {
	_ = suite.createTestBudget(suite.owner.ID, march, "100", "100")
	_ = suite.createTestExpense(suite.owner.ID, marchDay(2), "60")

	tests := []struct {
		amount string
		reject bool
	}{
		{"39.99", false},
		{"40", false},
		{"40.01", true},
	}

	for _, tt := range tests {
		err := suite.evaluator.CheckCeiling(context.Background(), models.DB, suite.owner.ID, marchDay(5), dec(tt.amount))
		if tt.reject {
			assert.NotNil(suite.T(), err, tt.amount)
		} else {
			assert.Nil(suite.T(), err, tt.amount)
		}
	}
}

func (suite *TestSuiteStandard) TestAlertNeedsStrictlyGreaterSpend() {
	_ = suite.createTestBudget(suite.owner.ID, march, "1000", "800")
	_ = suite.createTestExpense(suite.owner.ID, marchDay(2), "800")

	assert.False(suite.T(), suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(2)))

	_ = suite.createTestExpense(suite.owner.ID, marchDay(3), "0.01")
	assert.True(suite.T(), suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(3)))
}

func (suite *TestSuiteStandard) TestCeilingReplacingIgnoresOwnAmount() {
	_ = suite.createTestBudget(suite.owner.ID, march, "100", "100")
	expense := suite.createTestExpense(suite.owner.ID, marchDay(2), "90")

	// Raising 90 to 100 fits, counting the old amount twice would not
	err := suite.evaluator.CheckCeilingReplacing(context.Background(), models.DB, suite.owner.ID, marchDay(2), dec("100"), expense.ID)
	assert.Nil(suite.T(), err)

	err = suite.evaluator.CheckCeilingReplacing(context.Background(), models.DB, suite.owner.ID, marchDay(2), dec("100.01"), expense.ID)
	assert.NotNil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestDeleteKeepsLatch() {
	_ = suite.createTestBudget(suite.owner.ID, march, "1000", "800")
	expense := suite.createTestExpense(suite.owner.ID, marchDay(2), "900")
	suite.Require().True(suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(2)))

	suite.Require().Nil(models.DB.Delete(&expense).Error)
	assert.False(suite.T(), suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(2)))
	assert.True(suite.T(), suite.findBudget(suite.owner.ID, march).AlertSent)

	// Spend rises above the limit again, no second alert
	_ = suite.createTestExpense(suite.owner.ID, marchDay(4), "850")
	assert.False(suite.T(), suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(4)))
	assert.Len(suite.T(), suite.outbox.Kind(notify.KindBudgetAlert), 1)
}

func (suite *TestSuiteStandard) TestEnqueueFailureLeavesLatchOpen() {
	_ = suite.createTestBudget(suite.owner.ID, march, "1000", "800")
	_ = suite.createTestExpense(suite.owner.ID, marchDay(2), "900")

	suite.outbox.Fail(notify.ErrQueueFull)
	assert.False(suite.T(), suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(2)))
	assert.False(suite.T(), suite.findBudget(suite.owner.ID, march).AlertSent)

	suite.outbox.Fail(nil)
	assert.True(suite.T(), suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(2)))
	assert.True(suite.T(), suite.findBudget(suite.owner.ID, march).AlertSent)
	assert.Len(suite.T(), suite.outbox.Kind(notify.KindBudgetAlert), 1)
}

func (suite *TestSuiteStandard) TestOtherOwnersAreIndependent() {
	other := suite.createTestUser(models.User{})
	_ = suite.createTestBudget(suite.owner.ID, march, "100", "50")
	_ = suite.createTestExpense(other.ID, marchDay(2), "1000")

	err := suite.evaluator.CheckCeiling(context.Background(), models.DB, suite.owner.ID, marchDay(2), dec("100"))
	assert.Nil(suite.T(), err)
	assert.False(suite.T(), suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(2)))
}

func (suite *TestSuiteStandard) TestFailOpenOnDatabaseError() {
	_ = suite.createTestBudget(suite.owner.ID, march, "10", "5")
	_ = suite.createTestExpense(suite.owner.ID, marchDay(2), "10")
	suite.CloseDB()

	err := suite.evaluator.CheckCeiling(context.Background(), models.DB, suite.owner.ID, marchDay(2), dec("100"))
	assert.Nil(suite.T(), err)
	assert.False(suite.T(), suite.evaluator.CheckAlert(context.Background(), models.DB, suite.owner.ID, marchDay(2)))
}

func (suite *TestSuiteStandard) TestCeilingErrorMessage() {
	err := &budget.CeilingError{
		Month:        march,
		TotalBalance: dec("500"),
		Spent:        dec("480"),
		Amount:       dec("50"),
	}

	require.NotNil(suite.T(), err)
	assert.Equal(suite.T(), "this expense exceeds your budget for March 2024: 480.00 of 500.00 already spent, 20.00 remaining", err.Error())
	assert.False(suite.T(), errors.Is(err, models.ErrGeneral))
}

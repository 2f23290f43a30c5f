package v1_test

import (
	"errors"
	"net/http"
	"testing"

	v1 "github.com/pennywise-app/backend/internal/controllers/v1"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/notify"
	"github.com/pennywise-app/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) expenseCount(headers map[string]string, month string) int64 {
	r := suite.request(http.MethodGet, "http://example.com/v1/expenses?month="+month, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	return list.Pagination.Total
}

func (suite *TestSuiteStandard) TestBudgetSet() {
	_, headers := suite.createTestUser("")

	b := suite.setTestBudget(headers, "2025-03", "1000", "800")
	suite.Assert().Equal("2025-03", b.Month.String())
	suite.Assert().True(decimal.NewFromInt(1000).Equal(b.TotalBalance))
	suite.Assert().True(decimal.NewFromInt(800).Equal(b.AlertLimit))
	suite.Assert().False(b.AlertSent)

	// Setting the budget again replaces it
	updated := suite.setTestBudget(headers, "2025-03-17", "1200", "900")
	suite.Assert().Equal(b.ID, updated.ID)
	suite.Assert().True(decimal.NewFromInt(1200).Equal(updated.TotalBalance))
}

func (suite *TestSuiteStandard) TestBudgetSetFails() {
	_, headers := suite.createTestUser("")

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"No month", map[string]any{"total_balance": "100", "alert_limit": "50"}, "month"},
		{"Negative total", map[string]any{"month": "2025-03", "total_balance": "-100", "alert_limit": "0"}, "total_balance"},
		{"Alert above total", map[string]any{"month": "2025-03", "total_balance": "100", "alert_limit": "150"}, "alert_limit"},
		{"Too many decimals", map[string]any{"month": "2025-03", "total_balance": "100.001", "alert_limit": "50"}, "total_balance"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/budget", tt.body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var e struct {
				Code  string `json:"code"`
				Field string `json:"field"`
			}
			test.DecodeResponse(t, &r, &e)
			assert.Equal(t, "validation_error", e.Code)
			assert.Equal(t, tt.field, e.Field)
		})
	}

	r := suite.request(http.MethodPost, "http://example.com/v1/budget", `{"month": "March"}`, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetGet() {
	_, headers := suite.createTestUser("")

	r := suite.request(http.MethodGet, "http://example.com/v1/budget?month=2025-03", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var empty v1.BudgetMonthResponse
	test.DecodeResponse(suite.T(), &r, &empty)
	suite.Assert().Nil(empty.Data)
	suite.Assert().Nil(empty.Remaining)
	suite.Assert().True(empty.Spent.IsZero())

	suite.setTestBudget(headers, "2025-03", "1000", "800")
	suite.createTestExpense(headers, map[string]any{"amount": "120.50", "date": "2025-03-04"})
	suite.createTestExpense(headers, map[string]any{"amount": "30", "date": "2025-03-31"})
	suite.createTestExpense(headers, map[string]any{"amount": "99", "date": "2025-04-01"})

	r = suite.request(http.MethodGet, "http://example.com/v1/budget?month=2025-03-12", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var month v1.BudgetMonthResponse
	test.DecodeResponse(suite.T(), &r, &month)
	suite.Require().NotNil(month.Data)
	suite.Assert().Equal("2025-03", month.Month.String())
	suite.Assert().True(decimal.RequireFromString("150.50").Equal(month.Spent), month.Spent.String())
	suite.Require().NotNil(month.Remaining)
	suite.Assert().True(decimal.RequireFromString("849.50").Equal(*month.Remaining), month.Remaining.String())

	r = suite.request(http.MethodGet, "http://example.com/v1/budget?month=last-month", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestBudgetScopedToOwner() {
	_, ada := suite.createTestUser("")
	_, bob := suite.createTestUser("")

	suite.setTestBudget(ada, "2025-03", "100", "50")

	// Bob has no budget, so his spending is not limited by Ada's
	suite.createTestExpense(bob, map[string]any{"amount": "500", "date": "2025-03-04"})

	r := suite.request(http.MethodGet, "http://example.com/v1/budget?month=2025-03", "", bob)
	var month v1.BudgetMonthResponse
	test.DecodeResponse(suite.T(), &r, &month)
	suite.Assert().Nil(month.Data)
}

// Spending above the alert limit sends one alert.
func (suite *TestSuiteStandard) TestBudgetAlert() {
	user, headers := suite.createTestUser("")

	suite.setTestBudget(headers, "2025-03", "1000", "800")
	suite.createTestExpense(headers, map[string]any{"amount": "700", "date": "2025-03-02"})
	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 0)

	suite.createTestExpense(headers, map[string]any{"amount": "150", "date": "2025-03-09"})

	alerts := suite.outbox.Kind(notify.KindBudgetAlert)
	suite.Require().Len(alerts, 1)
	suite.Assert().Equal(user.Email, alerts[0].Recipient)

	r := suite.request(http.MethodGet, "http://example.com/v1/budget?month=2025-03", "", headers)
	var month v1.BudgetMonthResponse
	test.DecodeResponse(suite.T(), &r, &month)
	suite.Require().NotNil(month.Data)
	suite.Assert().True(month.Data.AlertSent)
}

// Once the alert of a month is sent, further spending does not send another one.
func (suite *TestSuiteStandard) TestBudgetAlertOncePerMonth() {
	_, headers := suite.createTestUser("")

	suite.setTestBudget(headers, "2025-03", "1000", "800")
	suite.createTestExpense(headers, map[string]any{"amount": "850", "date": "2025-03-02"})
	suite.createTestExpense(headers, map[string]any{"amount": "50", "date": "2025-03-03"})
	suite.createTestExpense(headers, map[string]any{"amount": "10", "date": "2025-03-04"})

	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 1)
}

// Spending exactly at the alert limit does not alert.
func (suite *TestSuiteStandard) TestBudgetAlertAtLimit() {
	_, headers := suite.createTestUser("")

	suite.setTestBudget(headers, "2025-03", "1000", "800")
	suite.createTestExpense(headers, map[string]any{"amount": "800", "date": "2025-03-02"})

	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 0)
}

// A failed enqueue leaves the alert armed, the next write sends it.
func (suite *TestSuiteStandard) TestBudgetAlertRetriedAfterQueueFailure() {
	_, headers := suite.createTestUser("")

	suite.setTestBudget(headers, "2025-03", "1000", "800")

	suite.outbox.Fail(errors.New("queue is down"))
	suite.createTestExpense(headers, map[string]any{"amount": "850", "date": "2025-03-02"})
	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 0)

	suite.outbox.Fail(nil)
	suite.createTestExpense(headers, map[string]any{"amount": "1", "date": "2025-03-03"})
	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 1)
}

// Expenses that would push the month above its total balance are rejected.
func (suite *TestSuiteStandard) TestBudgetCeiling() {
	_, headers := suite.createTestUser("")

	suite.setTestBudget(headers, "2025-03", "500", "400")
	suite.createTestExpense(headers, map[string]any{"amount": "480", "date": "2025-03-02"})

	r := suite.createTestExpense(headers, map[string]any{"amount": "50", "date": "2025-03-20"}, http.StatusBadRequest)

	var e v1.BudgetLimitError
	test.DecodeResponse(suite.T(), &r, &e)
	suite.Assert().Equal("budget_limit_exceeded", e.Code)
	suite.Assert().Equal("/budget", e.Redirect)
	suite.Assert().Equal("2025-03", e.Month.String())
	suite.Assert().True(decimal.NewFromInt(500).Equal(e.TotalBalance))
	suite.Assert().True(decimal.NewFromInt(480).Equal(e.Spent))
	suite.Assert().True(decimal.NewFromInt(20).Equal(e.Remaining))
	suite.Assert().True(decimal.NewFromInt(50).Equal(e.Amount))
	suite.Assert().Contains(e.Error, "March 2025")

	suite.Assert().Equal(int64(1), suite.expenseCount(headers, "2025-03"), "the rejected expense must not be stored")

	// Filling the budget exactly is allowed
	suite.createTestExpense(headers, map[string]any{"amount": "20", "date": "2025-03-20"})

	// Other months are not affected
	suite.createTestExpense(headers, map[string]any{"amount": "5000", "date": "2025-04-01"})
}

// Without a budget, expenses are never limited and never alert.
func (suite *TestSuiteStandard) TestBudgetNone() {
	_, headers := suite.createTestUser("")

	suite.createTestExpense(headers, map[string]any{"amount": "9999", "date": "2025-03-02"})
	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 0)
}

// Setting the budget again re-arms the alert of the month.
func (suite *TestSuiteStandard) TestBudgetUpsertRearmsAlert() {
	_, headers := suite.createTestUser("")

	suite.setTestBudget(headers, "2025-03", "1000", "800")
	suite.createTestExpense(headers, map[string]any{"amount": "850", "date": "2025-03-02"})
	suite.Require().Len(suite.outbox.Kind(notify.KindBudgetAlert), 1)

	b := suite.setTestBudget(headers, "2025-03", "2000", "900")
	suite.Assert().False(b.AlertSent)

	suite.createTestExpense(headers, map[string]any{"amount": "60", "date": "2025-03-03"})
	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 2)
}

// Raising the amount of an expense is checked against the ceiling, the
// expense's own previous amount does not count.
func (suite *TestSuiteStandard) TestBudgetCeilingOnUpdate() {
	_, headers := suite.createTestUser("")

	suite.setTestBudget(headers, "2025-03", "500", "400")
	r := suite.createTestExpense(headers, map[string]any{"amount": "300", "date": "2025-03-02"})

	var e v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &e)

	r = suite.request(http.MethodPatch, e.Data.Links.Self, map[string]any{"amount": "500"}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodPatch, e.Data.Links.Self, map[string]any{"amount": "500.01"}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var limit v1.BudgetLimitError
	test.DecodeResponse(suite.T(), &r, &limit)
	suite.Assert().Equal("budget_limit_exceeded", limit.Code)
	suite.Assert().True(limit.Spent.IsZero())

	r = suite.request(http.MethodGet, e.Data.Links.Self, "", headers)
	var stored v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &stored)
	suite.Assert().True(decimal.NewFromInt(500).Equal(stored.Data.Amount))
	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 1)
}

// Deleting expenses does not re-arm the alert.
func (suite *TestSuiteStandard) TestBudgetDeleteKeepsLatch() {
	_, headers := suite.createTestUser("")

	suite.setTestBudget(headers, "2025-03", "1000", "800")
	r := suite.createTestExpense(headers, map[string]any{"amount": "850", "date": "2025-03-02"})

	var e v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &e)

	r = suite.request(http.MethodDelete, e.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	suite.createTestExpense(headers, map[string]any{"amount": "850", "date": "2025-03-03"})
	suite.Assert().Len(suite.outbox.Kind(notify.KindBudgetAlert), 1)
}

func (suite *TestSuiteStandard) TestBudgetDatabaseError() {
	_, headers := suite.createTestUser("")
	suite.CloseDB()

	r := suite.request(http.MethodGet, "http://example.com/v1/budget", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), models.ErrGeneral.Error())
}

package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	v1 "github.com/pennywise-app/backend/internal/controllers/v1"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/types"
	"github.com/pennywise-app/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExpenseCreate() {
	_, headers := suite.createTestUser("")

	r := suite.createTestExpense(headers, map[string]any{
		"title":    "  Groceries ",
		"amount":   "42.17",
		"category": "food",
		"date":     "2025-03-14",
	})

	var e v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &e)
	suite.Assert().Equal("Groceries", e.Data.Title)
	suite.Assert().True(decimal.RequireFromString("42.17").Equal(e.Data.Amount))
	suite.Assert().Equal(models.CategoryFood, e.Data.Category)
	suite.Assert().Equal("2025-03-14", e.Data.Date.String())
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/expenses/%s", e.Data.ID), e.Data.Links.Self)
}

func (suite *TestSuiteStandard) TestExpenseCreateNumericAmount() {
	_, headers := suite.createTestUser("")

	r := suite.createTestExpense(headers, map[string]any{
		"amount": 12.5,
		"date":   "2025-03-14",
	})

	var e v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &e)
	suite.Assert().True(decimal.RequireFromString("12.5").Equal(e.Data.Amount))
}

func (suite *TestSuiteStandard) TestExpenseCreateFails() {
	_, headers := suite.createTestUser("")
	tomorrow := types.Today().AddDays(1).String()

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"Negative amount", map[string]any{"title": "x", "amount": "-1", "category": "Food", "date": "2025-03-14"}, "amount"},
		{"Zero amount", map[string]any{"title": "x", "amount": "0", "category": "Food", "date": "2025-03-14"}, "amount"},
		{"Too many decimals", map[string]any{"title": "x", "amount": "1.234", "category": "Food", "date": "2025-03-14"}, "amount"},
		{"Too large", map[string]any{"title": "x", "amount": "100000000", "category": "Food", "date": "2025-03-14"}, "amount"},
		{"No title", map[string]any{"title": "  ", "amount": "1", "category": "Food", "date": "2025-03-14"}, "title"},
		{"Unknown category", map[string]any{"title": "x", "amount": "1", "category": "Yachts", "date": "2025-03-14"}, "category"},
		{"No date", map[string]any{"title": "x", "amount": "1", "category": "Food"}, "date"},
		{"Future date", map[string]any{"title": "x", "amount": "1", "category": "Food", "date": tomorrow}, "date"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/expenses", tt.body, headers)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var e struct {
				Error string `json:"error"`
				Code  string `json:"code"`
				Field string `json:"field"`
			}
			test.DecodeResponse(t, &r, &e)
			assert.Equal(t, "validation_error", e.Code)
			assert.Equal(t, tt.field, e.Field)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseUnauthenticated() {
	r := suite.request(http.MethodGet, "http://example.com/v1/expenses", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)

	r = suite.request(http.MethodPost, "http://example.com/v1/expenses", map[string]any{"title": "x", "amount": "1", "category": "Food", "date": "2025-03-14"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestExpenseGetOwnerScoped() {
	_, ada := suite.createTestUser("")
	_, bob := suite.createTestUser("")

	r := suite.createTestExpense(ada, map[string]any{"amount": "10", "date": "2025-03-14"})
	var e v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &e)

	r = suite.request(http.MethodGet, e.Data.Links.Self, "", ada)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		r = suite.request(method, e.Data.Links.Self, map[string]any{"title": "mine now"}, bob)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	}

	r = suite.request(http.MethodGet, "http://example.com/v1/expenses", "", bob)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 0)
}

func (suite *TestSuiteStandard) TestExpenseInvalidID() {
	_, headers := suite.createTestUser("")

	r := suite.request(http.MethodGet, "http://example.com/v1/expenses/not-a-uuid", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodOptions, "http://example.com/v1/expenses/not-a-uuid", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExpenseList() {
	_, headers := suite.createTestUser("")

	suite.createTestExpense(headers, map[string]any{"title": "Rent", "amount": "700", "category": "Housing", "date": "2025-03-01"})
	suite.createTestExpense(headers, map[string]any{"title": "Train ticket", "amount": "25", "category": "Transportation", "date": "2025-03-20"})
	suite.createTestExpense(headers, map[string]any{"title": "Streaming", "amount": "9.99", "category": "Subscription", "date": "2025-04-02"})
	suite.createTestExpense(headers, map[string]any{"title": "Weekly groceries", "amount": "80", "category": "Food", "date": "2025-04-05"})

	tests := []struct {
		name   string
		query  string
		titles []string
		total  int64
	}{
		{"All, newest first", "", []string{"Weekly groceries", "Streaming", "Train ticket", "Rent"}, 4},
		{"Category", "category=food", []string{"Weekly groceries"}, 1},
		{"Month", "month=2025-03", []string{"Train ticket", "Rent"}, 2},
		{"Date range", "fromDate=2025-03-15&untilDate=2025-04-02", []string{"Streaming", "Train ticket"}, 2},
		{"Search", "search=TICKET", []string{"Train ticket"}, 1},
		{"Limit", "limit=2", []string{"Weekly groceries", "Streaming"}, 4},
		{"Offset", "offset=3", []string{"Rent"}, 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/expenses?"+tt.query, "", headers)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var list v1.ExpenseListResponse
			test.DecodeResponse(t, &r, &list)

			var titles []string
			for _, e := range list.Data {
				titles = append(titles, e.Title)
			}

			assert.Equal(t, tt.titles, titles)
			assert.Equal(t, tt.total, list.Pagination.Total)
			assert.Equal(t, len(tt.titles), list.Pagination.Count)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseListDefaultLimit() {
	_, headers := suite.createTestUser("")

	r := suite.request(http.MethodGet, "http://example.com/v1/expenses", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.ExpenseListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().NotNil(list.Data, "an empty list must be returned as [], not null")
	suite.Assert().Equal(50, list.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestExpenseListInvalidQuery() {
	_, headers := suite.createTestUser("")

	for _, query := range []string{"month=March", "fromDate=yesterday", "untilDate=2025-13-01", "offset=-1"} {
		r := suite.request(http.MethodGet, "http://example.com/v1/expenses?"+query, "", headers)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestExpenseUpdate() {
	_, headers := suite.createTestUser("")

	r := suite.createTestExpense(headers, map[string]any{"title": "Coffee", "amount": "3.50", "category": "Food", "date": "2025-03-14"})
	var e v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &e)

	r = suite.request(http.MethodPatch, e.Data.Links.Self, map[string]any{"amount": "4.20", "category": "entertainment"}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var updated v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &updated)
	suite.Assert().Equal("Coffee", updated.Data.Title, "omitted fields must not change")
	suite.Assert().True(decimal.RequireFromString("4.20").Equal(updated.Data.Amount))
	suite.Assert().Equal(models.CategoryEntertainment, updated.Data.Category)

	r = suite.request(http.MethodPatch, e.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(http.MethodPatch, e.Data.Links.Self, map[string]any{"amount": "-3"}, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestExpenseDelete() {
	_, headers := suite.createTestUser("")

	r := suite.createTestExpense(headers, map[string]any{"amount": "10", "date": "2025-03-14"})
	var e v1.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &e)

	r = suite.request(http.MethodDelete, e.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(http.MethodGet, e.Data.Links.Self, "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().True(strings.HasPrefix(test.DecodeError(suite.T(), r.Body.Bytes()), "there is no expense"))
}

func (suite *TestSuiteStandard) TestExpenseDatabaseError() {
	_, headers := suite.createTestUser("")
	suite.CloseDB()

	r := suite.request(http.MethodGet, "http://example.com/v1/expenses", "", headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), models.ErrGeneral.Error())
}

func (suite *TestSuiteStandard) TestExpenseOptions() {
	tests := []struct {
		path  string
		allow string
	}{
		{"http://example.com/v1/expenses", "OPTIONS, GET, POST"},
		{"http://example.com/v1/expenses/65392deb-5e92-4268-b114-297faad6cdce", "OPTIONS, GET, PATCH, DELETE"},
		{"http://example.com/v1/budget", "OPTIONS, GET, POST"},
		{"http://example.com/v1/auth/login", "OPTIONS, POST"},
		{"http://example.com/v1/auth/password-reset-confirm", "OPTIONS, PATCH"},
		{"http://example.com/v1/auth/profile", "OPTIONS, GET, PATCH"},
		{"http://example.com/v1", "OPTIONS, GET"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.path, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodOptions, tt.path, "")
			test.AssertHTTPStatus(t, &r, http.StatusNoContent)
			assert.Equal(t, tt.allow, r.Header().Get("allow"))
		})
	}
}
